package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	upSuffix      = ".up.sql"
	downSuffix    = ".down.sql"
	versionLayout = "20060102150405"
)

// MigrationFile describes a generated up/down migration pair.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down pair into dir, creating the
// directory when needed. The version prefix is the creation timestamp so
// files sort in the order they were generated.
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	slug := slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q contains no usable characters", name)
	}

	now := time.Now()
	mf := &MigrationFile{
		Version:     now.Format(versionLayout),
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
	}
	base := mf.Version + "_" + slug
	mf.UpPath = filepath.Join(dir, base+upSuffix)
	mf.DownPath = filepath.Join(dir, base+downSuffix)

	if err := os.WriteFile(mf.UpPath, []byte(mf.header("up")), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", mf.UpPath, err)
	}
	if err := os.WriteFile(mf.DownPath, []byte(mf.header("down")), 0o644); err != nil {
		// don't leave an orphaned half of the pair behind
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to write %s: %w", mf.DownPath, err)
	}

	return mf, nil
}

// header renders the comment block at the top of a generated file.
func (mf *MigrationFile) header(direction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- %s (%s)\n", mf.Name, direction)
	fmt.Fprintf(&b, "-- created: %s\n", mf.Timestamp)
	if mf.Description != "" {
		fmt.Fprintf(&b, "-- %s\n", mf.Description)
	}
	b.WriteString("\n")
	return b.String()
}

// slugify lowercases name and collapses every run of non-alphanumeric
// characters into a single underscore.
func slugify(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}

// ListMigrations returns the base names of the up migrations in dir, in
// version order. A missing directory yields an empty list.
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), upSuffix); ok {
			names = append(names, base)
		}
	}
	return names, nil
}
