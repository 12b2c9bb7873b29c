package assets

import (
	"errors"
	"slices"
	"sort"
)

// StyleResolver combines a custom style directory with the embedded styles.
// Custom styles take precedence; names missing there fall back to embedded.
type StyleResolver struct {
	custom   StyleLoader // nil if no custom directory configured
	embedded StyleLoader
}

// NewStyleResolver creates a StyleResolver.
// If customDir is empty, only embedded styles are used.
// Returns error if customDir is set but invalid.
func NewStyleResolver(customDir string) (*StyleResolver, error) {
	resolver := &StyleResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customDir != "" {
		fsLoader, err := NewFilesystemLoader(customDir)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a CSS style, trying the custom directory first if configured.
func (r *StyleResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}

	return r.embedded.LoadStyle(name)
}

// Styles lists custom and embedded style names, deduplicated and sorted.
func (r *StyleResolver) Styles() []string {
	names := r.embedded.Styles()
	if r.custom != nil {
		names = append(names, r.custom.Styles()...)
	}
	sort.Strings(names)
	return slices.Compact(names)
}

// HasCustomLoader returns true if a custom style directory is configured.
func (r *StyleResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ StyleLoader = (*StyleResolver)(nil)
