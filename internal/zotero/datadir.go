package zotero

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DatabaseFile is the name of Zotero's main database inside the data directory.
const DatabaseFile = "zotero.sqlite"

var (
	dataDirMu    sync.Mutex
	dataDirCache = map[string]string{}
)

// DefaultDataDirs returns the locations searched when no directory is given.
func DefaultDataDirs() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(homeDir, "Zotero"),
		filepath.Join(homeDir, ".local", "var", "zotero"),
	}
}

// FindDataDir returns the first directory containing zotero.sqlite, trying
// override first and then the default locations. The result is cached for
// the lifetime of the process since the data directory does not move
// during a run.
func FindDataDir(override string) (string, error) {
	dataDirMu.Lock()
	defer dataDirMu.Unlock()

	if dir, ok := dataDirCache[override]; ok {
		return dir, nil
	}

	var candidates []string
	if override != "" {
		candidates = append(candidates, override)
	}
	candidates = append(candidates, DefaultDataDirs()...)

	for _, dir := range candidates {
		dir = expandHome(dir)
		if info, err := os.Stat(filepath.Join(dir, DatabaseFile)); err == nil && !info.IsDir() {
			dataDirCache[override] = dir
			return dir, nil
		}
	}

	return "", fmt.Errorf("%w (searched %v)", ErrDataDirNotFound, candidates)
}

func expandHome(path string) string {
	if path == "~" || (len(path) > 1 && path[:2] == "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
