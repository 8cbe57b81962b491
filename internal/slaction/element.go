// Package slaction implements the "slap action" message rule: a message with
// one or two mentions and a single prefixed verb is rewritten into a sentence
// such as "Alice 拍了拍 Bob ！".
package slaction

// Element is one segment of an incoming or outgoing chat message.
// The rule only looks at Mention and Text; every other variant is carried as
// Raw and skipped.
type Element interface {
	isElement()
}

// Mention references a chat user. Name may be empty.
type Mention struct {
	ID   string
	Name string
}

// Text is a literal text segment.
type Text struct {
	Content string
}

// Raw stands in for element kinds the rule does not understand (images,
// stickers, files).
type Raw struct {
	Type string
}

func (Mention) isElement() {}
func (Text) isElement()    {}
func (Raw) isElement()     {}
