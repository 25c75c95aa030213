// Package symbols loads the symbol tables emitted alongside compiled
// CLVM programs: JSON maps from tree hash to function name. Files may
// carry comments and trailing commas.
package symbols

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Parse decodes symbol table bytes.
func Parse(data []byte) (map[string]string, error) {
	table := map[string]string{}
	if err := json.Unmarshal(jsonc.ToJSON(data), &table); err != nil {
		return nil, fmt.Errorf("failed to parse symbol table: %w", err)
	}
	return table, nil
}

// Load reads a symbol table, resolving a relative path against the
// given search paths after the working directory.
func Load(path string, searchPaths []string) (map[string]string, error) {
	resolved, err := resolve(path, searchPaths)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbol table: %w", err)
	}
	return Parse(data)
}

func resolve(path string, searchPaths []string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("symbol table %s not found", path)
}
