/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/globaltypesystem/gts/gts"
)

// newStore builds a GtsStore from the global --path/--config flags, or an
// empty in-memory store when --path is not set.
func newStore() (*gts.GtsStore, error) {
	if storePath == "" {
		return gts.NewGtsStore(nil), nil
	}

	paths := parsePaths(storePath)

	gtsConfig := gts.DefaultGtsConfig()
	if cfgPath != "" {
		loaded, err := gts.LoadGtsConfig(cfgPath)
		if err != nil {
			return nil, err
		}
		gtsConfig = loaded
	}

	reader := gts.NewGtsFileReader(paths, gtsConfig)
	store := gts.NewGtsStore(reader)
	if verbose > 0 {
		slog.Info("loaded entities", "paths", strings.Join(paths, ", "), "count", store.Count())
	}
	return store, nil
}

// parsePaths splits a comma-separated path specification into individual
// paths, expanding a leading ~/ to the user's home directory.
func parsePaths(pathSpec string) []string {
	parts := strings.Split(pathSpec, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				p = filepath.Join(home, p[2:])
			}
		}
		paths = append(paths, p)
	}
	return paths
}

// outputJSON pretty-prints v to stdout.
func outputJSON(v any) error {
	enc := gojson.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
