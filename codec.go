package mdspec

import (
	"encoding/json"
	"fmt"
	"io"
)

// ReadInput decodes the [context, book] array mdBook writes to stdin.
// All errors wrap ErrInvalidInput.
func ReadInput(r io.Reader) (*PreprocessorContext, *Book, error) {
	var parts []json.RawMessage
	if err := json.NewDecoder(r).Decode(&parts); err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("%w: no input", ErrInvalidInput)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("%w: want [context, book], got %d elements", ErrInvalidInput, len(parts))
	}

	var ctx PreprocessorContext
	if err := json.Unmarshal(parts[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: context: %v", ErrInvalidInput, err)
	}

	var book Book
	if err := json.Unmarshal(parts[1], &book); err != nil {
		return nil, nil, fmt.Errorf("%w: book: %v", ErrInvalidInput, err)
	}

	return &ctx, &book, nil
}

// WriteBook encodes the book as a single JSON document followed by a newline.
// Errors wrap ErrWriteOutput.
func WriteBook(w io.Writer, book *Book) error {
	if book == nil {
		return fmt.Errorf("%w: nil book", ErrWriteOutput)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(book); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
