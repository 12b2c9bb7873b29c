package mdspec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PreprocessorContext is the first element of the array mdBook writes to a
// preprocessor's stdin.
type PreprocessorContext struct {
	Root          string          `json:"root"`
	Config        json.RawMessage `json:"config"`
	Renderer      string          `json:"renderer"`
	MdbookVersion string          `json:"mdbook_version"`
}

// PreprocessorConfig returns the [preprocessor.<name>] table of book.toml.
// Returns false if the book config has no such table.
func (c *PreprocessorContext) PreprocessorConfig(name string) (json.RawMessage, bool) {
	if c == nil || len(c.Config) == 0 {
		return nil, false
	}

	var cfg struct {
		Preprocessor map[string]json.RawMessage `json:"preprocessor"`
	}
	if err := json.Unmarshal(c.Config, &cfg); err != nil {
		return nil, false
	}

	table, ok := cfg.Preprocessor[name]
	if !ok || isJSONNull(table) {
		return nil, false
	}
	return table, true
}

// Book is the second element of the input array, and the whole output.
// Keys other than "sections" are kept as-is and written back.
type Book struct {
	Sections []BookItem
	extra    map[string]json.RawMessage
}

// Chapters returns every chapter in tree order: each chapter is followed by
// its sub-chapters before its next sibling. Separators and part titles are
// skipped. The returned pointers alias the book.
func (b *Book) Chapters() []*Chapter {
	if b == nil {
		return nil
	}
	var out []*Chapter
	collectChapters(b.Sections, &out)
	return out
}

// collectChapters walks items depth-first, appending chapters to out.
func collectChapters(items []BookItem, out *[]*Chapter) {
	for i := range items {
		ch := items[i].Chapter
		if items[i].Kind != ChapterItem || ch == nil {
			continue
		}
		*out = append(*out, ch)
		collectChapters(ch.SubItems, out)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Book) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var sections []BookItem
	if raw, ok := fields["sections"]; ok {
		if err := json.Unmarshal(raw, &sections); err != nil {
			return fmt.Errorf("sections: %w", err)
		}
		delete(fields, "sections")
	}

	b.Sections = sections
	b.extra = fields
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b Book) MarshalJSON() ([]byte, error) {
	sections := b.Sections
	if sections == nil {
		sections = []BookItem{}
	}
	return marshalWithExtra(map[string]any{"sections": sections}, b.extra)
}

// ItemKind identifies the variant held by a BookItem.
type ItemKind int

// Book item variants.
const (
	ChapterItem ItemKind = iota
	SeparatorItem
	PartTitleItem
)

// String returns the variant name as it appears on the wire.
func (k ItemKind) String() string {
	switch k {
	case ChapterItem:
		return "Chapter"
	case SeparatorItem:
		return "Separator"
	case PartTitleItem:
		return "PartTitle"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// BookItem is one entry of a book's table of contents.
// On the wire: {"Chapter": {...}}, "Separator", or {"PartTitle": "..."}.
type BookItem struct {
	Kind      ItemKind
	Chapter   *Chapter // set when Kind is ChapterItem
	PartTitle string   // set when Kind is PartTitleItem
}

// UnmarshalJSON implements json.Unmarshaler.
func (it *BookItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidBookItem)
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != SeparatorItem.String() {
			return fmt.Errorf("%w: unknown variant %q", ErrInvalidBookItem, s)
		}
		*it = BookItem{Kind: SeparatorItem}
		return nil
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBookItem, err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("%w: want exactly one variant key, got %d", ErrInvalidBookItem, len(tagged))
	}

	for tag, body := range tagged {
		switch tag {
		case ChapterItem.String():
			var ch Chapter
			if err := json.Unmarshal(body, &ch); err != nil {
				return fmt.Errorf("chapter: %w", err)
			}
			*it = BookItem{Kind: ChapterItem, Chapter: &ch}
		case PartTitleItem.String():
			var title string
			if err := json.Unmarshal(body, &title); err != nil {
				return fmt.Errorf("%w: part title: %v", ErrInvalidBookItem, err)
			}
			*it = BookItem{Kind: PartTitleItem, PartTitle: title}
		default:
			return fmt.Errorf("%w: unknown variant %q", ErrInvalidBookItem, tag)
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (it BookItem) MarshalJSON() ([]byte, error) {
	switch it.Kind {
	case ChapterItem:
		if it.Chapter == nil {
			return nil, fmt.Errorf("%w: chapter item without chapter", ErrInvalidBookItem)
		}
		return marshalNoEscape(map[string]*Chapter{ChapterItem.String(): it.Chapter})
	case SeparatorItem:
		return marshalNoEscape(SeparatorItem.String())
	case PartTitleItem:
		return marshalNoEscape(map[string]string{PartTitleItem.String(): it.PartTitle})
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidBookItem, it.Kind)
	}
}

// Chapter is a single page of the book.
type Chapter struct {
	Name        string
	Content     string
	Number      []int // nil for unnumbered chapters
	SubItems    []BookItem
	Path        *string // nil for draft chapters
	SourcePath  *string
	ParentNames []string
	extra       map[string]json.RawMessage
}

// chapterFields mirrors the known keys of a chapter on the wire.
type chapterFields struct {
	Name        string     `json:"name"`
	Content     string     `json:"content"`
	Number      []int      `json:"number"`
	SubItems    []BookItem `json:"sub_items"`
	Path        *string    `json:"path"`
	SourcePath  *string    `json:"source_path"`
	ParentNames []string   `json:"parent_names"`
}

var chapterKeys = []string{"name", "content", "number", "sub_items", "path", "source_path", "parent_names"}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Chapter) UnmarshalJSON(data []byte) error {
	var known chapterFields
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, key := range chapterKeys {
		delete(fields, key)
	}

	*c = Chapter{
		Name:        known.Name,
		Content:     known.Content,
		Number:      known.Number,
		SubItems:    known.SubItems,
		Path:        known.Path,
		SourcePath:  known.SourcePath,
		ParentNames: known.ParentNames,
		extra:       fields,
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Sequence fields are written as
// empty arrays rather than null, which mdBook requires.
func (c Chapter) MarshalJSON() ([]byte, error) {
	subItems := c.SubItems
	if subItems == nil {
		subItems = []BookItem{}
	}
	parents := c.ParentNames
	if parents == nil {
		parents = []string{}
	}

	known := map[string]any{
		"name":         c.Name,
		"content":      c.Content,
		"number":       c.Number,
		"sub_items":    subItems,
		"path":         c.Path,
		"source_path":  c.SourcePath,
		"parent_names": parents,
	}
	return marshalWithExtra(known, c.extra)
}

// marshalWithExtra encodes known fields merged with preserved raw fields.
// Known fields win on key collision.
func marshalWithExtra(known map[string]any, extra map[string]json.RawMessage) ([]byte, error) {
	merged := make(map[string]any, len(known)+len(extra))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range known {
		merged[k] = v
	}
	return marshalNoEscape(merged)
}

// marshalNoEscape is json.Marshal without HTML escaping, so rewritten markup
// stays readable in the output stream.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// isJSONNull reports whether raw is the JSON literal null.
func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
