package formol

// Element is a node in a parsed Formol document tree.
//
// The set of implementations is closed: a parsed document only ever
// contains the element types of this package.
type Element interface {
	isElement()
}

// Paragraph is a block of regular text, split into words and literal
// spans, to be reflowed by the formatter.
type Paragraph struct {
	// Words are the atomic tokens of the paragraph, in source order.
	//
	// A token is either a plain word or a literal span (backtick-quoted
	// text with optional surrounding punctuation) which the formatter
	// never breaks.
	Words []string
}

// ListItem is a single item of an unordered or ordered list.
type ListItem struct {
	Elements []Element
}

// UnorderedList is a bullet list with one or more items.
type UnorderedList struct {
	Items []ListItem
}

// OrderedList is a numbered list with one or more items.
type OrderedList struct {
	Items []ListItem
}

// DefinitionItem is a single item of a definition list: one or more
// terms sharing one definition.
type DefinitionItem struct {
	Terms    []string
	Elements []Element
}

// DefinitionList is a definition list with one or more items.
type DefinitionList struct {
	Items []DefinitionItem
}

// Preformatted is a block of whitespace-significant lines which the
// formatter indents but never reflows.
type Preformatted struct {
	Lines []string
}

// Verbatim is a block of lines passed through untouched (ASCII
// diagrams, link reference definitions, and the like).
type Verbatim struct {
	Lines []string
}

// Heading1 is a first level heading.
type Heading1 struct {
	Text string
}

// Heading2 is a second level heading.
type Heading2 struct {
	Text string
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// Blockquote is a quoted block of nested elements.
type Blockquote struct {
	Elements []Element
}

// AdmonitionBox is a callout block (CAUTION, IMPORTANT, NOTE, TIP, or
// WARNING) of nested elements, rendered with a box border.
type AdmonitionBox struct {
	Elements []Element
}

func (Paragraph) isElement()      {}
func (UnorderedList) isElement()  {}
func (OrderedList) isElement()    {}
func (DefinitionList) isElement() {}
func (Preformatted) isElement()   {}
func (Verbatim) isElement()       {}
func (Heading1) isElement()       {}
func (Heading2) isElement()       {}
func (HorizontalRule) isElement() {}
func (Blockquote) isElement()     {}
func (AdmonitionBox) isElement()  {}
