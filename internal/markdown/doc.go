// Package markdown segments GitHub issue-form bodies into their ordered
// answers. Issue forms render every field as a "### Label" heading followed
// by a blank line and the submitted value, with "_No response_" standing in
// for fields left empty.
//
// Two strategies are provided. SplitSegmenter cuts the raw text on the
// heading marker and on blank lines, exactly like the form renderer lays it
// out. GoldmarkSegmenter parses the body with goldmark and reads the first
// block after every level-3 heading, which tolerates stray formatting at the
// cost of ignoring text placed before the first heading.
package markdown
