package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
)

// SourceInfo describes one vocabulary file found in a directory
type SourceInfo struct {
	Filename  string
	Format    FileFormat
	WordCount int
}

// Sources lists the vocabulary files in dir in filename order.
// Files with unsupported extensions are skipped.
func Sources(dir string) ([]SourceInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan dictionary directory %s: %w", dir, err)
	}

	var sources []SourceInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := filepath.Join(dir, entry.Name())
		format, err := DetectFormat(name)
		if err != nil {
			continue
		}
		sources = append(sources, SourceInfo{Filename: name, Format: format})
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Filename < sources[j].Filename
	})
	return sources, nil
}

// LoadDir loads every vocabulary file in dir into dst. A file that fails to
// load is logged and skipped; an error is returned only when nothing loaded.
func LoadDir(dir string, dst Inserter) ([]SourceInfo, error) {
	sources, err := Sources(dir)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no dictionary files found in %s", dir)
	}

	loaded := sources[:0]
	for _, src := range sources {
		n, err := Load(src.Filename, dst)
		if err != nil {
			log.Warnf("Skipping dictionary %s: %v", src.Filename, err)
			continue
		}
		src.WordCount = n
		loaded = append(loaded, src)
	}

	if len(loaded) == 0 {
		return nil, fmt.Errorf("no dictionary in %s could be loaded", dir)
	}
	log.Debugf("Loaded %d dictionary files from %s", len(loaded), dir)
	return loaded, nil
}

// LoadPath loads path into dst, treating directories with LoadDir and an
// empty path as the embedded seed list. It returns the total word count.
func LoadPath(path string, dst Inserter) (int, error) {
	if path == "" {
		return LoadDefault(dst)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat dictionary %s: %w", path, err)
	}
	if !info.IsDir() {
		return Load(path, dst)
	}

	sources, err := LoadDir(path, dst)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, src := range sources {
		total += src.WordCount
	}
	return total, nil
}
