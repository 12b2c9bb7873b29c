package mdspec

import (
	"errors"

	"github.com/alnah/go-mdspec/internal/assets"
	"github.com/alnah/go-mdspec/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Wire protocol errors.
	ErrInvalidInput    = errors.New("invalid preprocessor input")
	ErrInvalidBookItem = errors.New("invalid book item")
	ErrWriteOutput     = errors.New("failed to write book")

	// Version check errors.
	ErrInvalidVersion  = errors.New("invalid mdBook version")
	ErrVersionMismatch = errors.New("mdBook version mismatch")

	// Preview errors.
	ErrHTMLConversion        = pipeline.ErrHTMLConversion
	ErrUnknownHighlightStyle = pipeline.ErrUnknownHighlightStyle
	ErrStyleNotFound         = assets.ErrStyleNotFound
	ErrInvalidStyleName      = assets.ErrInvalidAssetName
)
