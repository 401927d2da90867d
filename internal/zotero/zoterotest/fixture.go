// Package zoterotest builds minimal Zotero data directories for tests.
package zoterotest

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE items (itemID INTEGER PRIMARY KEY, key TEXT NOT NULL)`,
	`CREATE TABLE itemAttachments (itemID INTEGER PRIMARY KEY, path TEXT)`,
	`CREATE TABLE itemAnnotations (
		itemID INTEGER PRIMARY KEY,
		parentItemID INTEGER NOT NULL,
		pageLabel TEXT,
		position TEXT,
		text TEXT,
		comment TEXT
	)`,
	`CREATE TABLE itemData (itemID INTEGER, fieldID INTEGER, valueID INTEGER)`,
	`CREATE TABLE itemDataValues (valueID INTEGER PRIMARY KEY, value TEXT)`,
	`CREATE TABLE fieldsCombined (fieldID INTEGER PRIMARY KEY, fieldName TEXT)`,
	`INSERT INTO fieldsCombined (fieldID, fieldName) VALUES (1, 'title'), (2, 'url')`,
}

// TB is the part of testing.TB the fixture needs, so tools outside tests
// can build data directories too.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Fixture is a Zotero data directory with an empty schema.
type Fixture struct {
	Dir string
	db  *sql.DB
	t   TB
}

// New creates a data directory under t.TempDir with zotero.sqlite in it.
func New(t *testing.T) *Fixture {
	t.Helper()

	f := NewAt(t, t.TempDir())
	t.Cleanup(f.Close)
	return f
}

// NewAt creates zotero.sqlite with the schema in dir. The caller closes it.
func NewAt(t TB, dir string) *Fixture {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create data directory: %v", err)
	}
	db, err := sql.Open("sqlite3", filepath.Join(dir, "zotero.sqlite"))
	if err != nil {
		t.Fatalf("Failed to create zotero database: %v", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			t.Fatalf("Failed to create zotero schema: %v", err)
		}
	}

	return &Fixture{Dir: dir, db: db, t: t}
}

func (f *Fixture) Close() {
	f.db.Close()
}

// AddAttachment inserts an attachment item stored under storage/<key>/<filename>
// and creates an empty file there.
func (f *Fixture) AddAttachment(itemID int64, key, filename string) string {
	f.t.Helper()

	f.exec(`INSERT INTO items (itemID, key) VALUES (?, ?)`, itemID, key)
	f.exec(`INSERT INTO itemAttachments (itemID, path) VALUES (?, ?)`, itemID, "storage:"+filename)

	path := filepath.Join(f.Dir, "storage", key, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		f.t.Fatalf("Failed to create storage directory: %v", err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		f.t.Fatalf("Failed to create attachment file: %v", err)
	}
	return path
}

// AddAnnotation inserts an annotation; empty text or comment are stored as NULL.
func (f *Fixture) AddAnnotation(parentID int64, pageLabel, position, text, comment string) {
	f.t.Helper()
	f.exec(`INSERT INTO itemAnnotations (parentItemID, pageLabel, position, text, comment) VALUES (?, ?, ?, ?, ?)`,
		parentID, pageLabel, position, nullable(text), nullable(comment))
}

// AddTitledItem inserts a regular item with a title field.
func (f *Fixture) AddTitledItem(itemID int64, key, title string) {
	f.t.Helper()
	f.exec(`INSERT INTO items (itemID, key) VALUES (?, ?)`, itemID, key)
	f.exec(`INSERT INTO itemDataValues (valueID, value) VALUES (?, ?)`, itemID, title)
	f.exec(`INSERT INTO itemData (itemID, fieldID, valueID) VALUES (?, 1, ?)`, itemID, itemID)
}

func (f *Fixture) exec(query string, args ...any) {
	f.t.Helper()
	if _, err := f.db.Exec(query, args...); err != nil {
		f.t.Fatalf("Failed to execute %q: %v", query, err)
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
