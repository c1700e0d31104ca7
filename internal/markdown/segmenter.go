package markdown

import (
	"strings"

	"github.com/goliatone/go-workload/pkg/interfaces"
)

const (
	sectionMarker  = "###"
	blockSeparator = "\n\n"
)

// Strategy names accepted by NewSegmenter.
const (
	StrategySplit    = "split"
	StrategyGoldmark = "goldmark"
)

// SplitSegmenter splits issue bodies on "###" and blank lines. It keeps the
// second block of every section (the heading being the first), or an empty
// string when a section carries no answer. It holds no state and is safe for
// concurrent use.
type SplitSegmenter struct{}

var _ interfaces.Segmenter = SplitSegmenter{}

// Segment returns one answer per non-empty section of markdown.
func (SplitSegmenter) Segment(markdown string) []string {
	source := normalizeNewlines(markdown)
	sections := strings.Split(source, sectionMarker)

	answers := make([]string, 0, len(sections))
	for _, section := range sections {
		if section == "" {
			continue
		}
		answers = append(answers, sectionAnswer(splitBlocks(section)))
	}
	return answers
}

// splitBlocks cuts a section on blank lines, dropping empty pieces before
// trimming so whitespace-only pieces still occupy a position.
func splitBlocks(section string) []string {
	parts := strings.Split(section, blockSeparator)
	blocks := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		blocks = append(blocks, strings.TrimSpace(part))
	}
	return blocks
}

func sectionAnswer(blocks []string) string {
	if len(blocks) < 2 {
		return ""
	}
	return blocks[1]
}

// NewSegmenter returns the segmenter registered under strategy. The empty
// string selects the split strategy; unknown names return ok=false.
func NewSegmenter(strategy string, extensions ...string) (interfaces.Segmenter, bool) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", StrategySplit:
		return SplitSegmenter{}, true
	case StrategyGoldmark:
		return NewGoldmarkSegmenter(extensions...), true
	default:
		return nil, false
	}
}

// normalizeNewlines folds CRLF and lone CR line endings into LF. Bodies
// edited through the GitHub web UI sometimes arrive with CRLF.
func normalizeNewlines(markdown string) string {
	if !strings.Contains(markdown, "\r") {
		return markdown
	}
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	return strings.ReplaceAll(markdown, "\r", "\n")
}
