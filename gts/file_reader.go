/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// skippedDirs names directories that are never descended into while
// scanning a tree for entity files.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
}

// loadableExt are the file extensions treated as GTS entity sources.
var loadableExt = map[string]bool{
	".json":  true,
	".jsonc": true,
	".gts":   true,
}

// GtsFileReader lazily loads JsonEntity values from a set of file or
// directory paths, reading one source file at a time and yielding every
// identifiable entity found within it.
type GtsFileReader struct {
	paths []string
	cfg   *GtsConfig

	files   []string
	fileIdx int

	pending  []*JsonEntity
	pendIdx  int
	seeded   bool
}

// NewGtsFileReader builds a reader over the given paths (files or
// directories, each scanned recursively), expanding a leading "~/" against
// the user's home directory.
func NewGtsFileReader(paths []string, cfg *GtsConfig) *GtsFileReader {
	if cfg == nil {
		cfg = DefaultGtsConfig()
	}

	resolved := make([]string, len(paths))
	for i, p := range paths {
		resolved[i] = expandHome(p)
	}
	return &GtsFileReader{paths: resolved, cfg: cfg}
}

// NewGtsFileReaderFromPath is a convenience wrapper for a single source path.
func NewGtsFileReaderFromPath(path string, cfg *GtsConfig) *GtsFileReader {
	return NewGtsFileReader([]string{path}, cfg)
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}

// scanSources walks every configured path and records the de-duplicated,
// symlink-resolved set of loadable files found beneath it.
func (r *GtsFileReader) scanSources() {
	seen := make(map[string]bool)
	var found []string

	add := func(path string) {
		real := path
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			real = resolved
		}
		if !seen[real] {
			seen[real] = true
			found = append(found, real)
		}
	}

	for _, path := range r.paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if loadableExt[strings.ToLower(filepath.Ext(absPath))] {
				add(absPath)
			}
			continue
		}
		_ = filepath.Walk(absPath, func(walked string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if skippedDirs[info.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if loadableExt[strings.ToLower(filepath.Ext(walked))] {
				add(walked)
			}
			return nil
		})
	}

	r.files = found
}

func readJSONFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var content any
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// entitiesIn decodes one source file and extracts every contained document
// (a bare object, or an array of objects) that resolves to a real GTS ID.
// Documents that don't carry a usable ID are silently skipped, matching the
// store's bulk-load contract of "best effort over a directory tree".
func (r *GtsFileReader) entitiesIn(path string) []*JsonEntity {
	content, err := readJSONFile(path)
	if err != nil {
		return nil
	}

	source := &JsonFile{Path: path, Name: filepath.Base(path), Content: content}

	var entities []*JsonEntity
	switch v := content.(type) {
	case []any:
		for i, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			idx := i
			if entity := NewJsonEntityWithFile(obj, r.cfg, source, &idx); entity.GtsID != nil {
				entities = append(entities, entity)
			}
		}
	case map[string]any:
		if entity := NewJsonEntityWithFile(v, r.cfg, source, nil); entity.GtsID != nil {
			entities = append(entities, entity)
		}
	}
	return entities
}

// Next implements GtsReader.
func (r *GtsFileReader) Next() *JsonEntity {
	if !r.seeded {
		r.scanSources()
		r.seeded = true
	}

	if r.pendIdx < len(r.pending) {
		entity := r.pending[r.pendIdx]
		r.pendIdx++
		return entity
	}

	for r.fileIdx < len(r.files) {
		r.pending = r.entitiesIn(r.files[r.fileIdx])
		r.fileIdx++
		r.pendIdx = 0

		if len(r.pending) > 0 {
			entity := r.pending[r.pendIdx]
			r.pendIdx++
			return entity
		}
	}

	return nil
}

// ReadByID implements GtsReader. File-backed reading is sequential-only, so
// random access by ID is unsupported.
func (r *GtsFileReader) ReadByID(entityID string) *JsonEntity {
	return nil
}

// Reset implements GtsReader.
func (r *GtsFileReader) Reset() {
	r.fileIdx = 0
	r.pending = nil
	r.pendIdx = 0
	r.seeded = false
}
