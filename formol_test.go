package formol

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIdempotence(t *testing.T) {
	texts := []string{
		"",
		"Hello world.",
		"* Hello.\n* World.",
		"* A\n  * B\n    * C",
		". Outer.\n  . Inner.",
		"5. x\n7. y",
		"= hello\n\nSome paragraph with a few words in it to wrap around the maximum width.",
		"Nice Title\n──────────",
		"Apples:\nOranges:\n    Nice fruits.",
		"Online:: Available.",
		"Here:\n\n    if (x) {\n        y();\n    }",
		"```\ncode here\n```",
		"***",
		"> Hi there.\n>\n> Bye.",
		">>>\nLincoln was born into poverty in a log cabin in Kentucky.\n>>>",
		"!!!\nIMPORTANT: watch out for the tides\n!!!",
		"[1]: https://eepp.ca",
		"│ one │ two │",
		"Foo\n. bar baz",
	}

	for _, text := range texts {
		for _, width := range []int{20, 40, 72} {
			once := Format(text, width)
			assert.Equal(t, once, Format(once, width),
				"formatting is not a fixed point for %q at width %d", text, width)
		}
	}
}

func TestFormatCBlockComment(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		out, err := FormatCBlockComment("/*\n * Hello world.\n */", 0, 72)
		require.NoError(t, err)
		assert.Equal(t, "/*\n * Hello world.\n */", out)
	})

	t.Run("start column indents the body", func(t *testing.T) {
		out, err := FormatCBlockComment("/*\n * Hello world.\n */", 4, 72)
		require.NoError(t, err)
		assert.Equal(t, "/*\n     * Hello world.\n     */", out)
	})

	t.Run("reflows to the reduced width", func(t *testing.T) {
		out, err := FormatCBlockComment("/*\n * aa bb cc dd ee\n */", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, "/*\n * aa bb\n * cc\n * dd ee\n */", out)
	})

	t.Run("blank content lines", func(t *testing.T) {
		out, err := FormatCBlockComment("/*\n * Hello.\n *\n * World.\n */", 0, 72)
		require.NoError(t, err)
		assert.Equal(t, "/*\n * Hello.\n *\n * World.\n */", out)
	})

	t.Run("malformed line", func(t *testing.T) {
		_, err := FormatCBlockComment("/*\nhi\n*/", 0, 72)
		require.Error(t, err)

		var commentErr *CommentError

		require.ErrorAs(t, err, &commentErr)
		assert.Equal(t, "hi", commentErr.Line)
	})
}

func TestFormatPrefixedBlockComment(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		out, err := FormatPrefixedBlockComment("# Hello.\n#\n# World.", 0, 72, "# ")
		require.NoError(t, err)
		assert.Equal(t, "# Hello.\n#\n# World.", out)
	})

	t.Run("custom prefix", func(t *testing.T) {
		out, err := FormatPrefixedBlockComment("// Hi there.", 0, 72, "// ")
		require.NoError(t, err)
		assert.Equal(t, "// Hi there.", out)
	})

	t.Run("start column indents every line", func(t *testing.T) {
		out, err := FormatPrefixedBlockComment("# Hello.", 2, 72, "# ")
		require.NoError(t, err)
		assert.Equal(t, "  # Hello.", out)
	})

	t.Run("reflows to the reduced width", func(t *testing.T) {
		out, err := FormatPrefixedBlockComment("# aa bb cc dd ee", 0, 9, "# ")
		require.NoError(t, err)
		assert.Equal(t, "# aa bb\n# cc\n# dd ee", out)
	})

	t.Run("malformed line", func(t *testing.T) {
		_, err := FormatPrefixedBlockComment("# Hi\nnope", 0, 72, "# ")
		require.Error(t, err)

		var commentErr *CommentError

		require.ErrorAs(t, err, &commentErr)
		assert.Equal(t, "nope", commentErr.Line)
	})
}

func TestCBlockCommentRoundTrip(t *testing.T) {
	// a formatted comment is itself a valid input whose reformatting
	// is stable
	comment := "/*\n * Hello world.\n * ━━━\n *\n * * Cupidatat in elit irure.\n * * Qui sint.\n *\n * Sunt tempor cillum ut sint.\n */"

	once, err := FormatCBlockComment(comment, 0, 72)
	require.NoError(t, err)

	twice, err := FormatCBlockComment(once, 0, 72)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "defaults are valid",
			config: Config{}.applyDefaults(),
		},
		{
			name:    "negative max line length",
			config:  Config{MaxLineLen: -1, Prefix: "# "},
			wantErr: "maxLineLen",
		},
		{
			name:    "negative start column",
			config:  Config{MaxLineLen: 72, StartCol: -3, Prefix: "# "},
			wantErr: "startCol",
		},
		{
			name:    "blank prefix",
			config:  Config{MaxLineLen: 72, Prefix: "   "},
			wantErr: "prefix",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.config.Validate()

			if test.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		reflower, err := New(Config{})
		require.NoError(t, err)
		assert.Equal(t, "• Hello.\n• World.", reflower.Format("* Hello.\n* World."))
	})

	t.Run("custom width", func(t *testing.T) {
		reflower, err := New(Config{MaxLineLen: 10})
		require.NoError(t, err)
		assert.Equal(t, "aaaa\nbbbb cc", reflower.Format("aaaa bbbb cc"))
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := New(Config{MaxLineLen: -4})
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("comment methods use the config", func(t *testing.T) {
		reflower, err := New(Config{Prefix: "// "})
		require.NoError(t, err)

		out, err := reflower.FormatPrefixedBlockComment("// Hi.")
		require.NoError(t, err)
		assert.Equal(t, "// Hi.", out)

		_, err = reflower.FormatCBlockComment("/*\nbad\n*/")
		var commentErr *CommentError
		assert.True(t, errors.As(err, &commentErr))
	})
}

func TestFormatEmptyAndBlank(t *testing.T) {
	assert.Empty(t, Format("", 72))
	assert.Empty(t, Format("\n\n\n", 72))
	assert.Empty(t, Format(strings.Repeat(" ", 5), 72))
}

func TestFormatEmptyDelimitedBlocks(t *testing.T) {
	// an empty delimited block consumes its delimiter lines without
	// producing an element, possibly leaving nothing left to parse
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name: "empty preformatted block",
			text: "```\n```",
		},
		{
			name: "blank blockquote",
			text: ">>>\n\n>>>",
		},
		{
			name: "empty admonition box",
			text: "!!!\n!!!",
		},
		{
			name: "unclosed delimiter then blank",
			text: "```\n\n",
		},
		{
			name:     "empty block as list item content",
			text:     "* ```",
			expected: "•",
		},
		{
			name:     "empty block followed by content",
			text:     "```\n```\nHello.",
			expected: "Hello.",
		},
		{
			name: "bare blockquote marker",
			text: ">",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Format(test.text, 72))
		})
	}
}
