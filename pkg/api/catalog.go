package api

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dbfkit/dbfkit/pkg/dbf"
)

// Catalog locates DBF files and their companion memo files inside one data
// directory. Tables are addressed by file name without the .dbf extension.
type Catalog struct {
	dataDir string
}

// NewCatalog creates a catalog over the given directory
func NewCatalog(dataDir string) *Catalog {
	return &Catalog{dataDir: dataDir}
}

// List returns every table in the data directory, sorted by name
func (c *Catalog) List() ([]TableInfo, error) {
	entries, err := os.ReadDir(c.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data dir: %w", err)
	}

	var tables []TableInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".dbf") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		tables = append(tables, TableInfo{
			Name:    name,
			HasMemo: c.memoPath(name) != "",
		})
	}

	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	return tables, nil
}

// Open reads a table's bytes (and its memo file when one exists) and opens
// a fresh read handle with the given options. Each call gets its own
// cursor; handles are never shared between requests.
func (c *Catalog) Open(name string, opts dbf.Options) (*dbf.Table, error) {
	if name != filepath.Base(name) {
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(filepath.Join(c.dataDir, name+".dbf"))
	if err != nil {
		return nil, err
	}

	var memo []byte
	if path := c.memoPath(name); path != "" {
		memo, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	return dbf.Open(data, memo, opts)
}

// memoPath returns the companion memo file for a table, or "" when none
// exists. dBase uses .dbt, FoxPro .fpt.
func (c *Catalog) memoPath(name string) string {
	for _, ext := range []string{".dbt", ".fpt", ".DBT", ".FPT"} {
		path := filepath.Join(c.dataDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
