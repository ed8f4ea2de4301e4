// Package credentials persists the logged-in user's token and username in
// the local SQLite database so a session survives restarts.
//
// SQLiteRepository is the key/value layer over the "credentials" table and
// works on either *sql.DB or *sql.Tx. SQLiteStore stores the pair
// atomically on top of it.
package credentials
