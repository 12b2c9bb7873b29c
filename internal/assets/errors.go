package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound indicates the requested style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the style directory is missing or unreadable.
	ErrInvalidBasePath = errors.New("invalid style directory")

	// ErrPathTraversal indicates a resolved path escapes the style directory.
	ErrPathTraversal = errors.New("path escapes style directory")

	// ErrAssetRead indicates a style file exists but could not be read.
	ErrAssetRead = errors.New("failed to read style")
)
