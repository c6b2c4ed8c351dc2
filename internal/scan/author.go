package scan

import (
	"path/filepath"
	"strings"

	"github.com/justalter/dancectl/internal/catalog"
)

// AuthorTable maps known contributor folder names to author labels.
// Lookups are exact; unknown folders fall through as-is.
type AuthorTable struct {
	Aliases map[string]string
}

// Infer derives a default author from a file's position under root: the
// first subfolder holding the file, mapped through the alias table. Files
// directly in root have no folder to go by and get the unknown sentinel.
// Pure seed logic for brand-new entries; it never overwrites an existing
// author.
func (t *AuthorTable) Infer(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return catalog.UnknownAuthor
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return catalog.UnknownAuthor
	}
	folder := parts[0]
	if t != nil && t.Aliases != nil {
		if alias, ok := t.Aliases[folder]; ok {
			return alias
		}
	}
	return folder
}
