package interfaces

// Segmenter turns an issue-form markdown body into the ordered list of
// answers, one per "### Heading" section. Implementations do not validate;
// a short or malformed body yields a short list.
type Segmenter interface {
	Segment(markdown string) []string
}

// SegmenterFunc adapts a plain function to the Segmenter interface.
type SegmenterFunc func(markdown string) []string

// Segment calls f(markdown).
func (f SegmenterFunc) Segment(markdown string) []string {
	return f(markdown)
}
