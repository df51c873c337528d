package formol

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatter renders a list of elements to lines of text honoring a
// maximum line length.
//
// ulLevel and olLevel track the current unordered and ordered list
// nesting depths; they only select bullet glyphs and numbering styles.
type formatter struct {
	maxLineLen int
	ulLevel    int
	olLevel    int
}

// formatElements formats elems to lines at most maxLineLen columns
// wide (except for single tokens which don't fit at all).
func formatElements(elems []Element, maxLineLen int) []string {
	f := formatter{
		maxLineLen: maxLineLen,
		ulLevel:    -1,
		olLevel:    -1,
	}

	return f.elemsLines(elems)
}

// formatElems formats the lines of elems using the maximum line length
// maxLineLen, keeping the current list nesting levels.
func (f *formatter) formatElems(elems []Element, maxLineLen int) []string {
	child := formatter{
		maxLineLen: maxLineLen,
		ulLevel:    f.ulLevel,
		olLevel:    f.olLevel,
	}

	return child.elemsLines(elems)
}

// formatElemsIndented formats the lines of elems, indenting the
// non-blank ones with indentLen spaces.
func (f *formatter) formatElemsIndented(elems []Element, indentLen int) []string {
	lines := f.formatElems(elems, f.maxLineLen-indentLen)
	prefix := indentStr(indentLen)

	for i, line := range lines {
		if len(line) > 0 {
			lines[i] = prefix + line
		}
	}

	return lines
}

// lineWidth is the display width of line, in columns.
func lineWidth(line string) int {
	return runewidth.StringWidth(line)
}

// tokensWidth is the total display width of the line tokens of tokens
// (each including its trailing space).
func tokensWidth(tokens []string) int {
	width := 0

	for _, token := range tokens {
		width += lineWidth(token)
	}

	return width
}

// pLines returns the lines of the paragraph p: a greedy word wrap with
// a final runt correction.
func (f *formatter) pLines(p Paragraph) []string {
	lines := [][]string{{}}

	// append each word, wrapping when necessary
	for _, word := range p.Words {
		toAppend := word + " "
		last := len(lines) - 1

		if len(lines[last]) == 0 {
			// first word of the line, in case it doesn't fit
			lines[last] = append(lines[last], toAppend)
		} else if tokensWidth(lines[last])+lineWidth(word) > f.maxLineLen {
			// new line
			lines = append(lines, []string{toAppend})
		} else {
			// append to current line
			lines[last] = append(lines[last], toAppend)
		}
	}

	// avoid a runt: if there are at least two lines and the last line
	// contains a single word when two would fit, then just do it: this
	// is more readable than a single word on the last line
	if len(lines) >= 2 {
		last := lines[len(lines)-1]
		prev := lines[len(lines)-2]

		if len(last) == 1 && lineWidth(prev[len(prev)-1])+lineWidth(last[0])-1 <= f.maxLineLen {
			lines[len(lines)-1] = []string{prev[len(prev)-1], last[0]}
			lines[len(lines)-2] = prev[:len(prev)-1]
		}
	}

	// convert to real lines
	newLines := make([]string, len(lines))

	for i, tokens := range lines {
		newLines[i] = strings.Join(tokens, "")
	}

	// remove trailing empty lines, then append the final empty
	// separator line
	newLines = removeTrailingEmptyLines(newLines)
	return append(newLines, "")
}

// ulItemLines returns the lines of the unordered list item item.
func (f *formatter) ulItemLines(item ListItem) []string {
	// get indented element lines
	lines := f.formatElemsIndented(item.Elements, 2)
	if len(lines) == 0 {
		lines = []string{""}
	}

	// insert bullet point
	bullets := []string{"•", "‣", "⁃"}
	bullet := bullets[f.ulLevel%3]
	lines[0] = bullet + " " + sliceFrom(lines[0], 2)

	// remove trailing empty lines, then append the final empty line
	lines = removeTrailingEmptyLines(lines)
	return append(lines, "")
}

// compactListLines removes the empty lines from the simple list lines,
// except the last one, to make the list compact when there are only
// single-line items.
func compactListLines(itemCount int, lines []string) []string {
	if len(lines) != 2*itemCount {
		return lines
	}

	var newLines []string

	for _, line := range lines {
		if len(strings.TrimSpace(line)) > 0 {
			newLines = append(newLines, line)
		}
	}

	// reappend the final empty line
	return append(newLines, "")
}

// ulLines returns the lines of the unordered list ul.
func (f *formatter) ulLines(ul UnorderedList) []string {
	var lines []string

	f.ulLevel++

	for _, item := range ul.Items {
		lines = append(lines, f.ulItemLines(item)...)
	}

	f.ulLevel--

	// special case to make the list compact if there are only
	// single-line items
	return compactListLines(len(ul.Items), lines)
}

// olItemNum returns the marker of the ordered list item at index within
// ol, based on the current ordered list level: numbers at even levels,
// lowercase letters at odd ones.
func (f *formatter) olItemNum(ol OrderedList, index int) string {
	if f.olLevel%2 == 0 {
		maxNumWidth := len(fmt.Sprintf("%d", len(ol.Items)-1))
		return fmt.Sprintf("%*d.", maxNumWidth, index+1)
	}

	return fmt.Sprintf("%c)", 'a'+rune(index%26))
}

// olItemLines returns the lines of the ordered list item at index
// within ol.
func (f *formatter) olItemLines(ol OrderedList, index int, item ListItem) []string {
	num := f.olItemNum(ol, index)

	// get indented element lines
	indentLen := len(num) + 1
	lines := f.formatElemsIndented(item.Elements, indentLen)
	if len(lines) == 0 {
		lines = []string{""}
	}

	// insert number
	lines[0] = num + " " + sliceFrom(lines[0], indentLen)

	// remove trailing empty lines, then append the final empty line
	lines = removeTrailingEmptyLines(lines)
	return append(lines, "")
}

// olLines returns the lines of the ordered list ol.
func (f *formatter) olLines(ol OrderedList) []string {
	var lines []string

	f.olLevel++

	for index, item := range ol.Items {
		lines = append(lines, f.olItemLines(ol, index, item)...)
	}

	f.olLevel--

	// special case to make the list compact if there are only
	// single-line items
	return compactListLines(len(ol.Items), lines)
}

// dlItemLines returns the lines of the definition list item item.
func (f *formatter) dlItemLines(item DefinitionItem) []string {
	// start with term lines
	var lines []string

	for _, term := range item.Terms {
		lines = append(lines, term+":")
	}

	// add indented element lines
	lines = append(lines, f.formatElemsIndented(item.Elements, 4)...)

	// remove trailing empty lines, then append the final empty line
	lines = removeTrailingEmptyLines(lines)
	return append(lines, "")
}

// dlLines returns the lines of the definition list dl.
func (f *formatter) dlLines(dl DefinitionList) []string {
	var lines []string

	for _, item := range dl.Items {
		lines = append(lines, f.dlItemLines(item)...)
	}

	return lines
}

// preLines returns the lines of the preformatted text block pre.
func (f *formatter) preLines(pre Preformatted) []string {
	lines := make([]string, 0, len(pre.Lines)+1)

	for _, line := range pre.Lines {
		lines = append(lines, "    "+line)
	}

	return append(lines, "")
}

// verbatimLines returns the lines of the verbatim block verbatim.
func (f *formatter) verbatimLines(verbatim Verbatim) []string {
	return append([]string(nil), verbatim.Lines...)
}

// hrLines returns the lines of a break.
func (f *formatter) hrLines() []string {
	// deep nesting may exhaust the available width entirely
	count := f.maxLineLen
	if count < 0 {
		count = 0
	}

	return []string{strings.Repeat("┄", count), ""}
}

// blockquoteLines returns the lines of the blockquote bq.
func (f *formatter) blockquoteLines(bq Blockquote) []string {
	// get indented element lines
	lines := f.formatElemsIndented(bq.Elements, 2)
	if len(lines) == 0 {
		return []string{""}
	}

	// remove trailing empty lines
	lines = removeTrailingEmptyLines(lines)

	// insert the `>` prefix
	for i, line := range lines {
		lines[i] = "> " + sliceFrom(line, 2)
	}

	// append the final empty line
	return append(lines, "")
}

// admonBoxLines returns the lines of the admonition box admonBox.
func (f *formatter) admonBoxLines(admonBox AdmonitionBox) []string {
	// get element lines
	contentLines := f.formatElems(admonBox.Elements, f.maxLineLen-4)

	// find the longest line
	longestLen := 0

	for _, line := range contentLines {
		if width := lineWidth(line); width > longestLen {
			longestLen = width
		}
	}

	// build top of the box
	lines := []string{"┌─" + strings.Repeat("─", longestLen) + "─┐"}

	// build body of the box
	for _, contentLine := range contentLines {
		lines = append(lines, "│ "+runewidth.FillRight(contentLine, longestLen)+" │")
	}

	// build bottom of the box, then append the final empty line
	lines = append(lines, "└─"+strings.Repeat("─", longestLen)+"─┘")
	return append(lines, "")
}

// headingLines returns the lines of the heading text text underlined
// with underlineStr.
func headingLines(text, underlineStr string) []string {
	return []string{text, strings.Repeat(underlineStr, lineWidth(text))}
}

// h1Lines returns the lines of the first level heading h1.
func (f *formatter) h1Lines(h1 Heading1) []string {
	return headingLines(strings.ToUpper(h1.Text), "━")
}

// h2Lines returns the lines of the level 2 heading h2.
func (f *formatter) h2Lines(h2 Heading2) []string {
	return headingLines(h2.Text, "─")
}

// elemLines returns the lines of elem.
func (f *formatter) elemLines(elem Element) []string {
	switch elem := elem.(type) {
	case Paragraph:
		return f.pLines(elem)
	case UnorderedList:
		return f.ulLines(elem)
	case OrderedList:
		return f.olLines(elem)
	case DefinitionList:
		return f.dlLines(elem)
	case Preformatted:
		return f.preLines(elem)
	case Verbatim:
		return f.verbatimLines(elem)
	case Heading1:
		return f.h1Lines(elem)
	case Heading2:
		return f.h2Lines(elem)
	case HorizontalRule:
		return f.hrLines()
	case Blockquote:
		return f.blockquoteLines(elem)
	case AdmonitionBox:
		return f.admonBoxLines(elem)
	default:
		panic(fmt.Sprintf("unknown element type %T", elem))
	}
}

// elemsLines returns the lines of elems, each right-trimmed, without
// trailing empty lines.
func (f *formatter) elemsLines(elems []Element) []string {
	var lines []string

	for _, elem := range elems {
		lines = append(lines, f.elemLines(elem)...)
	}

	if len(lines) == 0 {
		return nil
	}

	// right-strip all lines
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	// remove trailing empty lines
	return removeTrailingEmptyLines(lines)
}
