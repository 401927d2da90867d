package zotero

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// withSnapshot copies the live database into a fresh temp directory, opens
// the copy and hands it to fn. Zotero keeps an exclusive lock on its database
// while running, so the original file is never opened. The connection and the
// temp directory are released on every return path.
func withSnapshot(dbPath string, fn func(db *gorm.DB) error) (err error) {
	tempDir, err := os.MkdirTemp("", "zotero-snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tempDir); rmErr != nil {
			log.Printf("Failed to remove snapshot directory %s: %v", tempDir, rmErr)
		}
	}()

	snapshotPath := filepath.Join(tempDir, DatabaseFile)
	if err := copyFile(dbPath, snapshotPath); err != nil {
		return fmt.Errorf("failed to snapshot database: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(snapshotPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database snapshot: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	defer func() {
		if closeErr := sqlDB.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close database snapshot: %w", closeErr)
		}
	}()

	return fn(db)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
