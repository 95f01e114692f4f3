// Package bolt implements storage.IStorage on a single bucket of a BoltDB file.
//
// Every operation runs in its own bolt transaction, so each SetItem, RemoveItem
// and Clear is durable once it returns. Clear drops and recreates the bucket in
// one transaction. Bolt allows a single process to hold the file at a time; Open
// waits up to Options.Timeout for the lock.
//
// Usage Example:
//
//	s, err := bolt.Open("smap.db", bolt.Options{Bucket: "settings"})
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	m := storagemap.New(s)
package bolt
