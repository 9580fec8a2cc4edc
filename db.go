package tilevid

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// StreamDB is a content-addressed cache of encoded streams keyed by the
// CRC of their source material.
type StreamDB struct {
	db *sql.DB
}

// NewStreamDB opens or creates the cache database at the given file.
func NewStreamDB(file string) (*StreamDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS stream (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &StreamDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *StreamDB) Close() error {
	return db.db.Close()
}

// Get returns the cached stream for the given CRC, or nil when there is
// no entry.
func (db *StreamDB) Get(crc string) ([]byte, error) {
	var data []byte
	switch err := db.db.QueryRow("SELECT data FROM stream WHERE crc = ?", crc).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return data, nil
	default:
		return nil, err
	}
}

// Put stores a stream under the given CRC, replacing any previous entry.
func (db *StreamDB) Put(crc string, data []byte) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO stream (crc, data) VALUES (?, ?)", crc, data); err != nil {
		return err
	}
	return nil
}
