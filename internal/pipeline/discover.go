// Package pipeline drives the linear consolidation flow: discover the input
// files, parse each into tables, and finalize the sheet-name plan
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"table-combiner/internal/config"
)

// Discover lists the supported tabular files directly inside folder.
// Subdirectories are not entered. The result is sorted by lowercase base
// name so runs are deterministic regardless of filesystem order.
func Discover(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read input folder: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !config.IsSupportedExtension(ext) {
			continue
		}
		files = append(files, filepath.Join(folder, entry.Name()))
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	return files, nil
}
