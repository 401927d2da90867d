package zotero

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gorm.io/gorm"
)

// attachmentStoragePrefix marks attachment paths relative to <data dir>/storage/<key>/.
const attachmentStoragePrefix = "storage:"

const sqlListDocuments = `
	SELECT
		anno.parentItemID AS id,
		COUNT(*) AS annotation_count,
		attach.path AS path
	FROM itemAnnotations anno
		LEFT JOIN items parents ON parents.itemID = anno.parentItemID
		LEFT JOIN itemAttachments attach ON attach.itemID = parents.itemID
	GROUP BY anno.parentItemID
	ORDER BY anno.parentItemID
`

const sqlResolveDocument = `
	SELECT
		anno.parentItemID AS id,
		parents.key AS item_key,
		attach.path AS path
	FROM itemAnnotations anno
		LEFT JOIN items parents ON parents.itemID = anno.parentItemID
		LEFT JOIN itemAttachments attach ON attach.itemID = parents.itemID
	WHERE anno.parentItemID = ? OR parents.key = ?
	GROUP BY anno.parentItemID
	LIMIT 1
`

const sqlListAnnotations = `
	SELECT
		CAST(pageLabel AS INTEGER) AS page,
		position,
		text,
		comment
	FROM itemAnnotations
	WHERE parentItemID = ?
`

const sqlListItems = `
	SELECT
		items.key AS item_key,
		itemDataValues.value AS title
	FROM items
		LEFT JOIN itemData ON itemData.itemID = items.itemID
		LEFT JOIN itemDataValues ON itemDataValues.valueID = itemData.valueID
		LEFT JOIN fieldsCombined ON fieldsCombined.fieldID = itemData.fieldID
	WHERE
		itemDataValues.value LIKE ?
		AND fieldsCombined.fieldName = 'title'
	ORDER BY items.key
`

type documentRow struct {
	ID              int64          `gorm:"column:id"`
	ItemKey         sql.NullString `gorm:"column:item_key"`
	AnnotationCount int            `gorm:"column:annotation_count"`
	Path            sql.NullString `gorm:"column:path"`
}

type annotationRow struct {
	Page     sql.NullInt64  `gorm:"column:page"`
	Position sql.NullString `gorm:"column:position"`
	Text     sql.NullString `gorm:"column:text"`
	Comment  sql.NullString `gorm:"column:comment"`
}

type itemRow struct {
	ItemKey string         `gorm:"column:item_key"`
	Title   sql.NullString `gorm:"column:title"`
}

// Store reads annotations from a Zotero data directory. Every call works on
// its own point-in-time copy of zotero.sqlite.
type Store struct {
	dataDir string
}

func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) databasePath() string {
	return filepath.Join(s.dataDir, DatabaseFile)
}

// ResolveDocument looks up an annotated attachment by its numeric itemID or
// by its item key.
func (s *Store) ResolveDocument(id string) (Document, error) {
	var rows []documentRow
	err := withSnapshot(s.databasePath(), func(db *gorm.DB) error {
		return db.Raw(sqlResolveDocument, id, id).Scan(&rows).Error
	})
	if err != nil {
		return Document{}, fmt.Errorf("failed to resolve document %s: %w", id, err)
	}
	if len(rows) == 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	row := rows[0]
	return Document{
		ID:   row.ID,
		Key:  row.ItemKey.String,
		Path: s.attachmentPath(row.ItemKey.String, row.Path.String),
	}, nil
}

// ListAnnotations returns the annotations of one document in no particular order.
func (s *Store) ListAnnotations(docID int64) ([]Annotation, error) {
	var rows []annotationRow
	err := withSnapshot(s.databasePath(), func(db *gorm.DB) error {
		return db.Raw(sqlListAnnotations, docID).Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query annotations: %w", err)
	}

	annotations := make([]Annotation, 0, len(rows))
	for _, row := range rows {
		var pos Position
		if row.Position.Valid && strings.TrimSpace(row.Position.String) != "" {
			if err := json.Unmarshal([]byte(row.Position.String), &pos); err != nil {
				return nil, fmt.Errorf("failed to decode annotation position: %w", err)
			}
		}
		annotations = append(annotations, Annotation{
			Page:     int(row.Page.Int64),
			Position: pos,
			Text:     row.Text.String,
			Comment:  row.Comment.String,
		})
	}

	return annotations, nil
}

// ListDocuments returns every attachment that has at least one annotation.
func (s *Store) ListDocuments() ([]DocumentSummary, error) {
	var rows []documentRow
	err := withSnapshot(s.databasePath(), func(db *gorm.DB) error {
		return db.Raw(sqlListDocuments).Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]DocumentSummary, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, DocumentSummary{
			ID:              row.ID,
			AnnotationCount: row.AnnotationCount,
			Filename:        strings.TrimPrefix(row.Path.String, attachmentStoragePrefix),
		})
	}
	return docs, nil
}

// ListItems returns items whose title matches the SQL LIKE pattern.
// An empty pattern matches everything.
func (s *Store) ListItems(titlePattern string) ([]Item, error) {
	if titlePattern == "" {
		titlePattern = "%"
	}

	var rows []itemRow
	err := withSnapshot(s.databasePath(), func(db *gorm.DB) error {
		return db.Raw(sqlListItems, titlePattern).Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{Key: row.ItemKey, Title: row.Title.String})
	}
	return items, nil
}

// attachmentPath maps an itemAttachments.path value to a file on disk.
// Stored files live under storage/<key>/; linked files keep their own path.
func (s *Store) attachmentPath(key, path string) string {
	if strings.HasPrefix(path, attachmentStoragePrefix) {
		return filepath.Join(s.dataDir, "storage", key, strings.TrimPrefix(path, attachmentStoragePrefix))
	}
	return path
}
