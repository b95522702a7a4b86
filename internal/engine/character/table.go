package character

// Table is the ordered set of characters for one piece of text. It is
// rebuilt whenever the text changes.
type Table struct {
	text  string
	chars []*Character
}

// NewTable wraps chars, which must be ordered by Info.Index.
func NewTable(text string, chars []*Character) *Table {
	return &Table{text: text, chars: chars}
}

// Text returns the source string the table was built from.
func (t *Table) Text() string {
	return t.text
}

// Len returns the number of characters.
func (t *Table) Len() int {
	return len(t.chars)
}

// At returns the character at index i, or nil if out of range.
func (t *Table) At(i int) *Character {
	if i < 0 || i >= len(t.chars) {
		return nil
	}
	return t.chars[i]
}

// All returns the characters in order.
func (t *Table) All() []*Character {
	return t.chars
}

// Range returns the characters with index in [from, to). A negative to
// means the end of the table.
func (t *Table) Range(from, to int) []*Character {
	if to < 0 || to > len(t.chars) {
		to = len(t.chars)
	}
	from = max(0, from)
	if from >= to {
		return nil
	}
	return t.chars[from:to]
}
