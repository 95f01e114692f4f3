package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/ValentinKolb/storagemap/lib/common"
	"github.com/ValentinKolb/storagemap/lib/storage"
	"github.com/lni/dragonboat/v4/logger"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"
)

var plog = logger.GetLogger(common.LoggerStorage)

// DefaultTable is the table used when none is given.
const DefaultTable = "storagemap"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Storage keeps all items in one SQLite table with a text primary key.
type Storage struct {
	sqlDB *sql.DB

	setStmt    string
	getStmt    string
	removeStmt string
	clearStmt  string
}

// Open opens (or creates) the SQLite database at path and creates the item table.
// The table name must be a plain SQL identifier; DefaultTable is used if it is empty.
func Open(path, table string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// one connection serializes all writers inside this process
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
		   item_key   TEXT PRIMARY KEY,
		   item_value TEXT NOT NULL
		 )`, table)); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}

	plog.Infof("opened sqlite storage %s (table %s)", path, table)
	return &Storage{
		sqlDB:      sqlDB,
		setStmt:    fmt.Sprintf(`INSERT INTO %s (item_key, item_value) VALUES (?, ?) ON CONFLICT(item_key) DO UPDATE SET item_value = excluded.item_value`, table),
		getStmt:    fmt.Sprintf(`SELECT item_value FROM %s WHERE item_key = ?`, table),
		removeStmt: fmt.Sprintf(`DELETE FROM %s WHERE item_key = ?`, table),
		clearStmt:  fmt.Sprintf(`DELETE FROM %s`, table),
	}, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see storage/interface.go)
// --------------------------------------------------------------------------

func (s *Storage) SetItem(key, value string) error {
	if _, err := s.sqlDB.Exec(s.setStmt, key, value); err != nil {
		return s.wrap("set item", err)
	}
	return nil
}

func (s *Storage) GetItem(key string) (string, bool, error) {
	var value string
	err := s.sqlDB.QueryRow(s.getStmt, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.wrap("get item", err)
	}
	return value, true, nil
}

func (s *Storage) RemoveItem(key string) error {
	if _, err := s.sqlDB.Exec(s.removeStmt, key); err != nil {
		return s.wrap("remove item", err)
	}
	return nil
}

func (s *Storage) Clear() error {
	if _, err := s.sqlDB.Exec(s.clearStmt); err != nil {
		return s.wrap("clear", err)
	}
	return nil
}

// Close closes the SQLite handle. Further operations fail with storage.ErrClosed.
func (s *Storage) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	plog.Infof("closing sqlite storage")
	return s.sqlDB.Close()
}

// wrap maps database/sql's closed error to storage.ErrClosed and adds context to the rest.
func (s *Storage) wrap(op string, err error) error {
	if strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%s: %w", op, storage.ErrClosed)
	}
	return fmt.Errorf("%s: %w", op, err)
}
