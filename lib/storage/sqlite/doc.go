// Package sqlite implements storage.IStorage on a table of a SQLite database, using the
// pure Go modernc.org/sqlite driver through database/sql.
//
// The table has two columns, item_key (primary key) and item_value. SetItem is an upsert,
// Clear deletes every row of the table and leaves other tables alone. The database is
// opened in WAL mode with a single connection.
package sqlite
