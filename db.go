package swatch

import (
	"database/sql"
	"fmt"
	"hash/crc32"

	_ "github.com/mattn/go-sqlite3"
)

// PaletteDB is a persistent library of named palettes backed by sqlite, so a
// set of variant palettes can be shared between assets and invocations.
type PaletteDB struct {
	db *sql.DB
}

func NewPaletteDB(file string) (*PaletteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, colours INTEGER NOT NULL, crc TEXT NOT NULL, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &PaletteDB{
		db: db,
	}, nil
}

func (db *PaletteDB) Close() error {
	return db.db.Close()
}

// Put stores the palette under the given name, replacing any previous
// palette of that name. Storing an identical palette again is a no-op.
func (db *PaletteDB) Put(name string, p *Palette) error {
	b, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	crc := fmt.Sprintf("%08X", crc32.ChecksumIEEE(b))

	var existing string
	switch err := db.db.QueryRow("SELECT crc FROM palette WHERE name = ?", name).Scan(&existing); err {
	case sql.ErrNoRows:
	case nil:
		if existing == crc {
			return nil
		}
	default:
		return err
	}

	if _, err := db.db.Exec("INSERT OR REPLACE INTO palette (name, colours, crc, data) VALUES (?, ?, ?, ?)", name, p.Len(), crc, b); err != nil {
		return err
	}

	return nil
}

// Get returns the named palette, or nil if no palette of that name is
// stored.
func (db *PaletteDB) Get(name string) (*Palette, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT data FROM palette WHERE name = ?", name).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		p := new(Palette)
		if err := p.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, err
	}
}

// PaletteInfo describes one stored palette.
type PaletteInfo struct {
	Name    string
	Colours int
	CRC     string
}

// List returns the stored palettes ordered by name.
func (db *PaletteDB) List() ([]PaletteInfo, error) {
	rows, err := db.db.Query("SELECT name, colours, crc FROM palette ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []PaletteInfo
	for rows.Next() {
		var i PaletteInfo
		if err := rows.Scan(&i.Name, &i.Colours, &i.CRC); err != nil {
			return nil, err
		}
		infos = append(infos, i)
	}

	return infos, rows.Err()
}

// Delete removes the named palette. Deleting a name that is not stored is
// not an error.
func (db *PaletteDB) Delete(name string) error {
	if _, err := db.db.Exec("DELETE FROM palette WHERE name = ?", name); err != nil {
		return err
	}
	return nil
}

// Palette returns the named palette from the library, failing if it is not
// stored.
func (s *Swatch) Palette(name string) (*Palette, error) {
	p, err := s.db.Get(name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("swatch: no palette named %q", name)
	}
	return p, nil
}
