// Package formol reflows Formol, a lightweight line-oriented markup
// language for source code comments, into canonically wrapped plain
// text fitting a maximum line length.
//
// Format transforms raw text. FormatCBlockComment and
// FormatPrefixedBlockComment additionally strip and reapply a C/C++
// block comment envelope or a per-line prefix (for example "# ").
package formol

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Version is the version of this package.
const Version = "0.7.0"

// CommentError indicates that a comment to format doesn't have the
// expected envelope, identifying the offending line.
type CommentError struct {
	// Line is the comment line which doesn't match the expected
	// per-line pattern.
	Line string
}

func (e *CommentError) Error() string {
	return fmt.Sprintf("malformed comment line %q", e.Line)
}

// Config holds reflower configuration.
type Config struct {
	// MaxLineLen is the maximum line length, in columns, of the
	// formatted text (default 72).
	MaxLineLen int `yaml:"maxLineLen,omitempty"`

	// StartCol is the column of the comment within its original
	// document (default 0).
	StartCol int `yaml:"startCol,omitempty"`

	// Prefix is the per-line prefix for prefixed block comments
	// (default "# ").
	Prefix string `yaml:"prefix,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.MaxLineLen == 0 {
		c.MaxLineLen = 72
	}
	if c.Prefix == "" {
		c.Prefix = "# "
	}

	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.MaxLineLen < 1 {
		return fmt.Errorf("invalid maxLineLen %d: must be positive", c.MaxLineLen)
	}
	if c.StartCol < 0 {
		return fmt.Errorf("invalid startCol %d: must not be negative", c.StartCol)
	}
	if strings.TrimSpace(c.Prefix) == "" {
		return fmt.Errorf("invalid prefix %q: must not be blank", c.Prefix)
	}

	return nil
}

// Reflower formats Formol text and Formol block comments according to
// its configuration.
type Reflower struct {
	config Config
}

// New creates a new Reflower with the given config.
func New(config Config) (*Reflower, error) {
	config = config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Reflower{config: config}, nil
}

// Format returns the reflowed version of the raw Formol text text.
func (r *Reflower) Format(text string) string {
	return Format(text, r.config.MaxLineLen)
}

// FormatCBlockComment returns the reflowed version of the C/C++ block
// comment comment.
func (r *Reflower) FormatCBlockComment(comment string) (string, error) {
	return FormatCBlockComment(comment, r.config.StartCol, r.config.MaxLineLen)
}

// FormatPrefixedBlockComment returns the reflowed version of the
// prefixed block comment comment.
func (r *Reflower) FormatPrefixedBlockComment(comment string) (string, error) {
	return FormatPrefixedBlockComment(comment, r.config.StartCol, r.config.MaxLineLen, r.config.Prefix)
}

// splitLines splits text into lines without trailing newline
// characters, yielding no lines for an empty text.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Format returns the reflowed raw Formol text text so as to fit on
// maxLineLen columns.
//
// text is raw in that it must not contain special block comment
// characters, just Formol text. Use FormatCBlockComment or
// FormatPrefixedBlockComment to format a complete C/C++ or prefixed
// block comment.
func Format(text string, maxLineLen int) string {
	return strings.Join(formatElements(parseLines(splitLines(text)), maxLineLen), "\n")
}

var cCommentLinePat = regexp.MustCompile(`^\s*\* (.+)`)

// FormatCBlockComment returns the reflowed version of the C/C++ block
// comment comment so as to fit on maxLineLen columns.
//
// The comment text is everything between `/*` and `*/`, where the
// column of `/*` within its original document is startCol. Every
// interior line must start with `* `; a line which is exactly `*`
// becomes a blank content line.
//
// Returns a *CommentError if comment doesn't contain a valid C/C++
// block comment.
func FormatCBlockComment(comment string, startCol, maxLineLen int) (string, error) {
	// extract content lines from the comment string
	var contentLines []string

	for _, commentLine := range splitLines(comment) {
		commentLine = strings.TrimSpace(commentLine)

		if commentLine == "/*" || commentLine == "*/" {
			continue
		}

		if commentLine == "*" {
			// keep empty line
			contentLines = append(contentLines, "")
			continue
		}

		m := cCommentLinePat.FindStringSubmatch(commentLine)
		if m == nil {
			return "", &CommentError{Line: commentLine}
		}

		contentLines = append(contentLines, m[1])
	}

	// format the contents of the comment
	newContentLines := formatElements(parseLines(contentLines), maxLineLen-startCol-3)

	// create the final comment
	newCommentLines := []string{"/*"}
	indent := indentStr(startCol)

	for _, line := range newContentLines {
		newCommentLines = append(newCommentLines, strings.TrimRight(indent+" * "+line, " \t"))
	}

	newCommentLines = append(newCommentLines, indent+" */")
	return strings.Join(newCommentLines, "\n"), nil
}

// FormatPrefixedBlockComment returns the reflowed version of the
// prefixed block comment comment so as to fit on maxLineLen columns.
//
// prefix is the block comment prefix: for example, it's "# " for
// Python. Each comment line must start with prefix at the column
// startCol; a line which is exactly the right-trimmed prefix becomes a
// blank content line.
//
// Returns a *CommentError if comment doesn't contain a valid prefixed
// block comment.
func FormatPrefixedBlockComment(comment string, startCol, maxLineLen int, prefix string) (string, error) {
	// extract content lines from the comment string
	var contentLines []string

	trimmedPrefix := strings.TrimRight(prefix, " \t")
	linePat := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(prefix) + `(.+)`)

	for _, commentLine := range splitLines(comment) {
		commentLine = strings.TrimSpace(commentLine)

		if commentLine == trimmedPrefix {
			// keep empty line
			contentLines = append(contentLines, "")
			continue
		}

		m := linePat.FindStringSubmatch(commentLine)
		if m == nil {
			return "", &CommentError{Line: commentLine}
		}

		contentLines = append(contentLines, m[1])
	}

	// format the contents of the comment
	newContentLines := formatElements(parseLines(contentLines),
		maxLineLen-startCol-runewidth.StringWidth(prefix))

	// create the final comment
	newCommentLines := make([]string, 0, len(newContentLines))
	indent := indentStr(startCol)

	for _, line := range newContentLines {
		newCommentLines = append(newCommentLines, strings.TrimRight(indent+prefix+line, " \t"))
	}

	return strings.Join(newCommentLines, "\n"), nil
}
