package formol

import (
	"regexp"
	"strings"
)

// Line classification patterns, anchored at the start of a line. Kept
// together and named so that each structural rule of the grammar has
// exactly one pattern to point at.
var (
	h1PrefixPat        = regexp.MustCompile(`^= (\S.*)`)
	h2PrefixPat        = regexp.MustCompile(`^== (\S.*)`)
	h1UnderlinePat     = regexp.MustCompile(`^━+\s*$`)
	h2UnderlinePat     = regexp.MustCompile(`^─+\s*$`)
	bulletLinePat      = regexp.MustCompile(`^[*•‣⁃] (\S.*)`)
	olItemStartPat     = regexp.MustCompile(`^((?: *\d+)?\. |[a-z]\) )(\S.*)`)
	olParaBreakPat     = regexp.MustCompile(`^\. \S.*`)
	singleLineDlPat    = regexp.MustCompile(`^(\S.*):: (\S.*)`)
	dlTermPat          = regexp.MustCompile(`^(\S.*):$`)
	indentedStartPat   = regexp.MustCompile(`^    \S`)
	hrDashesPat        = regexp.MustCompile(`^┄{3,}$`)
	verbatimLinePat    = regexp.MustCompile(`^(?: *\[\d+\]: [hf]|[│┃┆┇┊┋┌┍┎┏└┕┖┗├┝┞┟┠┡┢┣╎╏║╒╓╔╘╙╚╞╟╠╽╿]).+`)
	admonBoxTagPat     = regexp.MustCompile(`^│ (?:CAUTION|IMPORTANT|NOTE|TIP|WARNING): `)
	admonBoxEmptyPat   = regexp.MustCompile(`^│?\s*$`)
	admonBoxContentPat = regexp.MustCompile(`^[│ ] ([^│]*)`)
	literalPat         = regexp.MustCompile("^[(\\[{]?`[^`]*`\\S*")
)

// parser turns an ordered sequence of raw lines into an ordered
// sequence of elements.
//
// It keeps a cursor over the lines and tries, at each position, a fixed
// priority list of structural rules. A rule either fully consumes some
// lines and produces an element, or leaves the cursor where it found it
// and reports no match.
type parser struct {
	lines []string
	at    int
	elems []Element
}

// parseLines parses lines (without trailing newline characters) into
// elements.
//
// Parsing never fails: content not matched by any structural rule
// becomes a Paragraph.
func parseLines(lines []string) []Element {
	p := &parser{lines: lines}
	p.parse()
	return p.elems
}

// curLine is the current line to parse.
func (p *parser) curLine() string {
	return p.lines[p.at]
}

// curLineIsEmpty reports whether the current line to parse is empty.
func (p *parser) curLineIsEmpty() bool {
	return len(p.curLine()) == 0
}

// nextLine is the line after the current one, or an empty line if
// there's none.
func (p *parser) nextLine() string {
	if p.at+1 >= len(p.lines) {
		return ""
	}

	return p.lines[p.at+1]
}

// gotoNextLine makes the line incr positions forward the current one.
func (p *parser) gotoNextLine(incr int) {
	p.at += incr
}

func (p *parser) isDone() bool {
	return p.at >= len(p.lines)
}

func (p *parser) skipEmptyLines() {
	for !p.isDone() && p.curLineIsEmpty() {
		p.gotoNextLine(1)
	}
}

// tryParseHeading tries to parse a heading introduced by prefixPat
// (single line followed by a blank line) or underlined with a line
// matching underlinePat (two lines).
//
// Returns the heading text and whether a heading was parsed.
func (p *parser) tryParseHeading(prefixPat, underlinePat *regexp.Regexp) (string, bool) {
	// with prefix?
	if m := prefixPat.FindStringSubmatch(p.curLine()); m != nil && len(p.nextLine()) == 0 {
		p.gotoNextLine(1)
		return m[1], true
	}

	// with underline?
	if underlinePat.MatchString(p.nextLine()) {
		text := p.curLine()
		p.gotoNextLine(2)
		return text, true
	}

	return "", false
}

// tryParseH1 tries to parse a first level heading.
//
// Example 1:
//
//	= hello world
//
// Example 2:
//
//	HELLO WORLD
//	━━━━━━━━━━━
func (p *parser) tryParseH1() Element {
	if text, ok := p.tryParseHeading(h1PrefixPat, h1UnderlinePat); ok {
		return Heading1{Text: text}
	}

	return nil
}

// tryParseH2 tries to parse a level 2 heading.
//
// Example 1:
//
//	== How are you?
//
// Example 2:
//
//	How are you?
//	────────────
func (p *parser) tryParseH2() Element {
	if text, ok := p.tryParseHeading(h2PrefixPat, h2UnderlinePat); ok {
		return Heading2{Text: text}
	}

	return nil
}

// hasIndentedContent reports whether line holds at least one character
// after an indentation of count spaces.
func hasIndentedContent(line string, count int) bool {
	return strings.HasPrefix(line, indentStr(count)) && len(line) > count
}

// tryParseSingleLineDlItem tries to parse a single-line definition list
// item.
//
// Example:
//
//	Online:: Available on or performed using the internet.
func (p *parser) tryParseSingleLineDlItem() *DefinitionItem {
	m := singleLineDlPat.FindStringSubmatch(p.curLine())
	if m == nil {
		return nil
	}

	p.gotoNextLine(1)
	return &DefinitionItem{
		Terms:    []string{m[1]},
		Elements: parseLines([]string{m[2]}),
	}
}

// tryParseDlItem tries to parse a definition list item: either a
// single-line item, or one or more term lines followed by a definition
// body indented by four spaces.
//
// Example 1:
//
//	Jackie Brown:
//	    When flight attendant Jackie Brown is busted smuggling money
//	    for her arms dealer boss, agent Ray Nicolette wants her help.
//
// Example 2:
//
//	Apples:
//	Oranges:
//	    Nice fruits to have.
//
// Example 3:
//
//	Online:: Available on or performed using the internet.
func (p *parser) tryParseDlItem() *DefinitionItem {
	// try a single-line item first
	if item := p.tryParseSingleLineDlItem(); item != nil {
		return item
	}

	// check for one or more terms
	var terms []string

	beginAt := p.at

	for !p.isDone() {
		m := dlTermPat.FindStringSubmatch(p.curLine())
		if m == nil {
			// no more terms
			break
		}

		terms = append(terms, m[1])
		p.gotoNextLine(1)
	}

	if len(terms) == 0 {
		// no terms
		p.at = beginAt
		return nil
	}

	if p.isDone() || !indentedStartPat.MatchString(p.curLine()) {
		// no definition
		p.at = beginAt
		return nil
	}

	// parse definition lines
	var defLines []string

	for !p.isDone() {
		if p.curLineIsEmpty() {
			// keep empty line
			defLines = append(defLines, "")
			p.gotoNextLine(1)
			continue
		}

		if hasIndentedContent(p.curLine(), 4) {
			// indented content line
			defLines = append(defLines, p.curLine())
			p.gotoNextLine(1)
			continue
		}

		// end of definition
		break
	}

	// create item from unindented definition lines
	defLines = removeTrailingEmptyLines(defLines)
	return &DefinitionItem{
		Terms:    terms,
		Elements: parseLines(unindentLines(defLines, 4)),
	}
}

// tryParseDl tries to parse a definition list, that is, a run of
// definition list items separated only by blank lines.
func (p *parser) tryParseDl() Element {
	var items []DefinitionItem

	for {
		p.skipEmptyLines()

		if p.isDone() {
			break
		}

		item := p.tryParseDlItem()
		if item == nil {
			break
		}

		items = append(items, *item)
	}

	if len(items) == 0 {
		return nil
	}

	return DefinitionList{Items: items}
}

// tryParsePreIndented tries to parse an indented preformatted text
// block.
//
// Example (paragraph and then preformatted text block):
//
//	Here's the code:
//
//	    if (idx < vec.size() - 1) {
//	        vec[idx] = std::move(vec.back());
//	    }
func (p *parser) tryParsePreIndented() Element {
	if !indentedStartPat.MatchString(p.curLine()) {
		// not an indented preformatted text block
		return nil
	}

	var lines []string

	for !p.isDone() {
		if p.curLineIsEmpty() {
			// keep empty line
			lines = append(lines, "")
			p.gotoNextLine(1)
			continue
		}

		if hasIndentedContent(p.curLine(), 4) {
			// content line
			lines = append(lines, p.curLine())
			p.gotoNextLine(1)
			continue
		}

		// end of block
		break
	}

	// create element from unindented lines
	lines = removeTrailingEmptyLines(lines)
	return Preformatted{Lines: unindentLines(lines, 4)}
}

// tryParseDelimBlock tries to parse a text block delimited with delim
// lines.
//
// Returns the content lines, or nil when the current line isn't delim
// or when the block turns out empty. An empty block still consumes its
// delimiter lines.
func (p *parser) tryParseDelimBlock(delim string) []string {
	// block start?
	if p.curLine() != delim {
		// not the expected text block
		return nil
	}

	// skip block start
	p.gotoNextLine(1)

	// parse content lines
	var lines []string

	for !p.isDone() {
		// block end?
		if p.curLine() == delim {
			// skip block end and stop
			p.gotoNextLine(1)
			break
		}

		// append content line and go to next line
		lines = append(lines, p.curLine())
		p.gotoNextLine(1)
	}

	if len(lines) == 0 {
		return nil
	}

	lines = removeTrailingEmptyLines(lines)
	if len(lines) == 0 {
		return nil
	}

	return lines
}

// tryParsePreDelim tries to parse a preformatted text block delimited
// with "```" lines.
//
// Example:
//
//	```
//	if (idx < vec.size() - 1) {
//	    vec[idx] = std::move(vec.back());
//	}
//	```
func (p *parser) tryParsePreDelim() Element {
	if lines := p.tryParseDelimBlock("```"); lines != nil {
		return Preformatted{Lines: lines}
	}

	return nil
}

// tryParseUlItem tries to parse an unordered list item: a bullet line
// and then its continuation lines (blank, or indented by at least the
// bullet marker width).
//
// Example 1:
//
//	* Hello.
//
// Example 2:
//
//	• I'm baby whatever tumblr meditation fashion axe jawn. XOXO
//	  pork belly banh mi shoreditch woke.
//
//	      #include <functional>
//	      #include <utility>
//
//	  In that:
//
//	  . Chia vinyl plaid.
//	  . Lo-fi skateboard pug messenger.
func (p *parser) tryParseUlItem() *ListItem {
	// item start?
	m := bulletLinePat.FindStringSubmatch(p.curLine())
	if m == nil {
		// no item
		return nil
	}

	// skip first line
	p.gotoNextLine(1)

	// parse remaining content lines
	lines := []string{m[1]}

	for !p.isDone() {
		if p.curLineIsEmpty() {
			// keep empty line
			lines = append(lines, "")
			p.gotoNextLine(1)
			continue
		}

		if hasIndentedContent(p.curLine(), 2) {
			// indented content line
			lines = append(lines, p.curLine())
			p.gotoNextLine(1)
			continue
		}

		// end of item
		break
	}

	// create item from unindented content lines
	lines = removeTrailingEmptyLines(lines)
	return &ListItem{Elements: parseLines(unindentLines(lines, 2))}
}

// tryParseSimpleListItems tries to parse a run of list items separated
// only by blank lines, using parseItem to try to parse individual
// items.
func (p *parser) tryParseSimpleListItems(parseItem func() *ListItem) []ListItem {
	var items []ListItem

	for {
		// skip empty lines between items
		p.skipEmptyLines()

		if p.isDone() {
			break
		}

		// new item?
		item := parseItem()
		if item == nil {
			// no more items
			break
		}

		// append new item
		items = append(items, *item)
	}

	return items
}

// tryParseUl tries to parse an unordered list.
func (p *parser) tryParseUl() Element {
	if items := p.tryParseSimpleListItems(p.tryParseUlItem); len(items) > 0 {
		return UnorderedList{Items: items}
	}

	return nil
}

// tryParseOlItem tries to parse an ordered list item: a numbered line
// and then its continuation lines (blank, or indented by at least the
// number marker width, which varies per item).
//
// Example 1:
//
//	. Hello.
//
// Example 2:
//
//	1. I'm baby whatever tumblr meditation fashion axe jawn. XOXO
//	   pork belly banh mi shoreditch woke.
//
// Example 3:
//
//	c) Meow Mix.
func (p *parser) tryParseOlItem() *ListItem {
	// item start?
	m := olItemStartPat.FindStringSubmatch(p.curLine())
	if m == nil {
		// no item
		return nil
	}

	// skip first line
	p.gotoNextLine(1)

	// parse remaining content lines
	lines := []string{m[2]}
	prefixLen := len(m[1])

	for !p.isDone() {
		if p.curLineIsEmpty() {
			// keep empty line
			lines = append(lines, "")
			p.gotoNextLine(1)
			continue
		}

		if hasIndentedContent(p.curLine(), prefixLen) {
			// indented content line
			lines = append(lines, p.curLine())
			p.gotoNextLine(1)
			continue
		}

		// end of item
		break
	}

	// create item from unindented content lines
	lines = removeTrailingEmptyLines(lines)
	return &ListItem{Elements: parseLines(unindentLines(lines, prefixLen))}
}

// tryParseOl tries to parse an ordered list.
func (p *parser) tryParseOl() Element {
	if items := p.tryParseSimpleListItems(p.tryParseOlItem); len(items) > 0 {
		return OrderedList{Items: items}
	}

	return nil
}

// literalStartsAt reports whether a literal span (optional opening
// bracket and then a backtick) starts at position i within text.
func literalStartsAt(text string, i int) bool {
	if text[i] == '`' {
		return true
	}

	if text[i] == '(' || text[i] == '[' || text[i] == '{' {
		return i+1 < len(text) && text[i+1] == '`'
	}

	return false
}

// paragraphFromText converts the paragraph text to a paragraph element
// containing individual word and literal span tokens.
func paragraphFromText(text string) Paragraph {
	var words []string

	i := 0

	// scan the text
	for i < len(text) {
		// literal?
		if lit := literalPat.FindString(text[i:]); lit != "" {
			words = append(words, lit)
			i += len(lit)
			continue
		}

		// word: everything until the next space, literal span start,
		// or end of text
		j := i + 1

		for j < len(text) && text[j] != ' ' && !literalStartsAt(text, j) {
			j++
		}

		if word := strings.TrimSpace(text[i:j]); len(word) > 0 {
			words = append(words, word)
		}

		i = j
	}

	return Paragraph{Words: words}
}

// tryParseP tries to parse a paragraph: a run of lines ending at a
// blank line or at what looks like the beginning of a list item.
//
// Example:
//
//	Cliche poutine prism, freegan fixie tilde kogi iceland
//	meditation. Hammock succulents godard kogi air plant Brooklyn
//	pickled.
func (p *parser) tryParseP() Element {
	var lines []string

	for !p.isDone() {
		if p.curLineIsEmpty() || bulletLinePat.MatchString(p.curLine()) ||
			olParaBreakPat.MatchString(p.curLine()) {
			// empty line or list item beginning: end of paragraph
			break
		}

		lines = append(lines, p.curLine())
		p.gotoNextLine(1)
	}

	if len(lines) == 0 {
		return nil
	}

	// join lines with a single space
	return paragraphFromText(strings.Join(lines, " "))
}

// tryParseHr tries to parse a break.
func (p *parser) tryParseHr() Element {
	if p.curLine() == "***" || hrDashesPat.MatchString(p.curLine()) {
		p.gotoNextLine(1)
		return HorizontalRule{}
	}

	return nil
}

// tryParseBlockquotePrefixed tries to parse a blockquote where each
// line starts with "> " (or is exactly ">" for a blank line).
//
// Example:
//
//	> Nisi incididunt labore pariatur qui eiusmod ut esse aute
//	> commodo aute elit ut aliqua non mollit fugiat anim labore.
//	>
//	> Adipisicing sed pariatur ad ut anim officia irure magna.
func (p *parser) tryParseBlockquotePrefixed() Element {
	var lines []string

	for !p.isDone() {
		if p.curLine() == ">" {
			// keep empty line
			lines = append(lines, "")
			p.gotoNextLine(1)
			continue
		}

		if strings.HasPrefix(p.curLine(), "> ") {
			// content line
			lines = append(lines, p.curLine()[2:])
			p.gotoNextLine(1)
			continue
		}

		break
	}

	// create element from content lines
	if len(lines) == 0 {
		return nil
	}

	return Blockquote{Elements: parseLines(lines)}
}

// tryParseBlockquoteDelim tries to parse a blockquote delimited with
// ">>>" lines.
//
// Example:
//
//	>>>
//	Lincoln was born into poverty in a log cabin in Kentucky and
//	was raised on the frontier, mainly in Indiana.
//	>>>
func (p *parser) tryParseBlockquoteDelim() Element {
	if lines := p.tryParseDelimBlock(">>>"); lines != nil {
		return Blockquote{Elements: parseLines(lines)}
	}

	return nil
}

// tryParseVerbatim tries to parse a verbatim block: a run of lines each
// being a link reference definition or starting with a box-drawing
// character.
func (p *parser) tryParseVerbatim() Element {
	var lines []string

	for !p.isDone() && verbatimLinePat.MatchString(p.curLine()) {
		lines = append(lines, p.curLine())
		p.gotoNextLine(1)
	}

	if len(lines) == 0 {
		return nil
	}

	return Verbatim{Lines: lines}
}

// tryParseAdmonBoxDelim tries to parse an admonition box delimited with
// "!!!" lines.
//
// Example:
//
//	!!!
//	IMPORTANT: Be aware of the changing tides and strong currents
//	that can swiftly turn a peaceful day at the beach into a
//	dangerous situation.
//	!!!
func (p *parser) tryParseAdmonBoxDelim() Element {
	if lines := p.tryParseDelimBlock("!!!"); lines != nil {
		return AdmonitionBox{Elements: parseLines(lines)}
	}

	return nil
}

// tryParseAdmonBox tries to parse an admonition box already drawn with
// box-drawing characters.
//
// Example:
//
//	┌─────────────────────────────────────────────┐
//	│ IMPORTANT: Be aware of the changing tides.  │
//	│                                             │
//	│ Before taking a dip, check the local tide   │
//	│ schedules.                                  │
//	└─────────────────────────────────────────────┘
func (p *parser) tryParseAdmonBox() Element {
	if !strings.HasPrefix(p.curLine(), "┌") {
		return nil
	}

	if !admonBoxTagPat.MatchString(p.nextLine()) {
		return nil
	}

	p.gotoNextLine(1)

	var lines []string

	for !p.isDone() {
		if strings.HasPrefix(p.curLine(), "└") {
			// ignore and we're done
			p.gotoNextLine(1)
			break
		}

		if admonBoxEmptyPat.MatchString(p.curLine()) {
			// keep empty line
			lines = append(lines, "")
			p.gotoNextLine(1)
			continue
		}

		if m := admonBoxContentPat.FindStringSubmatch(p.curLine()); m != nil {
			lines = append(lines, strings.TrimRight(m[1], " \t"))
		}

		p.gotoNextLine(1)
	}

	return AdmonitionBox{Elements: parseLines(lines)}
}

// parse parses the whole lines to produce the resulting elements.
func (p *parser) parse() {
	tryFuncs := []func() Element{
		p.tryParseH1,
		p.tryParseH2,
		p.tryParseUl,
		p.tryParseOl,
		p.tryParseDl,
		p.tryParsePreDelim,
		p.tryParsePreIndented,
		p.tryParseHr,
		p.tryParseBlockquoteDelim,
		p.tryParseBlockquotePrefixed,
		p.tryParseAdmonBoxDelim,
		p.tryParseAdmonBox,
		p.tryParseVerbatim,
		p.tryParseP,
	}

	for {
		// skip initial empty lines
		p.skipEmptyLines()

		if p.isDone() {
			break
		}

		// try each parsing function in priority order
		for _, tryFunc := range tryFuncs {
			if elem := tryFunc(); elem != nil {
				p.elems = append(p.elems, elem)
				break
			}

			// an empty delimited block consumes its lines without
			// producing an element: the remaining parsing functions
			// expect a current line to exist
			if p.isDone() {
				break
			}
		}
	}
}
