package mazeres

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type ResourceDB struct {
	db *sql.DB
}

func NewResourceDB(file string) (*ResourceDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS resource (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, name STRING NOT NULL, kind STRING NOT NULL, dim INTEGER NOT NULL, status STRING NOT NULL, png BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &ResourceDB{
		db: db,
	}, nil
}

func (db *ResourceDB) Close() error {
	return db.db.Close()
}

func (db *ResourceDB) addResource(crc, name, kind string, dim int, status string, png []byte) (int64, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM resource WHERE crc = ?", crc).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO resource (crc, name, kind, dim, status, png) VALUES (?, ?, ?, ?, ?, ?)", crc, name, kind, dim, status, png)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// FindPNGByCRC returns the decoded PNG for a previously catalogued
// resource, or nil if the CRC is unknown.
func (db *ResourceDB) FindPNGByCRC(crc uint32) ([]byte, error) {
	var png []byte
	switch err := db.db.QueryRow("SELECT png FROM resource WHERE crc = ?", crcString(crc)).Scan(&png); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return png, nil
	default:
		return nil, err
	}
}
