package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-workload/pkg/interfaces"
)

const answerHeadingLevel = 3

// GoldmarkSegmenter reads issue-form answers from the goldmark AST. Every
// level-3 heading opens a section; the first block that follows it becomes
// the answer. Content before the first heading is ignored.
type GoldmarkSegmenter struct {
	extensions []goldmark.Extender
}

var _ interfaces.Segmenter = (*GoldmarkSegmenter)(nil)

// NewGoldmarkSegmenter builds a segmenter with the named goldmark extensions.
// With no names it enables GFM, which matches how GitHub renders issues.
// Unknown names are ignored.
func NewGoldmarkSegmenter(extensions ...string) *GoldmarkSegmenter {
	return &GoldmarkSegmenter{extensions: collectExtensions(extensions)}
}

// Segment returns one answer per level-3 heading in markdown.
func (s *GoldmarkSegmenter) Segment(markdown string) []string {
	source := []byte(normalizeNewlines(markdown))
	engine := goldmark.New(goldmark.WithExtensions(s.extensions...))
	doc := engine.Parser().Parse(text.NewReader(source))

	answers := []string{}
	awaiting := false
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if heading, ok := node.(*ast.Heading); ok && heading.Level == answerHeadingLevel {
			answers = append(answers, "")
			awaiting = true
			continue
		}
		if !awaiting {
			continue
		}
		answers[len(answers)-1] = blockText(node, source)
		awaiting = false
	}
	return answers
}

// blockText returns the trimmed source span covered by the lines of node and
// of its nested blocks.
func blockText(node ast.Node, source []byte) string {
	start, stop := -1, -1

	var visit func(ast.Node)
	visit = func(n ast.Node) {
		if n.Type() != ast.TypeBlock {
			return
		}
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			if start < 0 || segment.Start < start {
				start = segment.Start
			}
			if segment.Stop > stop {
				stop = segment.Stop
			}
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			visit(child)
		}
	}
	visit(node)

	if start < 0 || stop <= start {
		return ""
	}
	return strings.TrimSpace(string(source[start:stop]))
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
