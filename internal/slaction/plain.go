package slaction

import (
	"regexp"
	"strings"
)

var plainMentionPattern = regexp.MustCompile(`@[\p{L}\p{N}_]+`)

// ParsePlain splits a plain-text message into elements, turning every
// "@name" token into a Mention. It exists for dry runs and tests where no
// chat platform is involved.
func ParsePlain(s string) []Element {
	var elements []Element
	cursor := 0
	for _, loc := range plainMentionPattern.FindAllStringIndex(s, -1) {
		if loc[0] > cursor {
			elements = append(elements, Text{Content: s[cursor:loc[0]]})
		}
		name := s[loc[0]+1 : loc[1]]
		elements = append(elements, Mention{ID: name, Name: name})
		cursor = loc[1]
	}
	if cursor < len(s) {
		elements = append(elements, Text{Content: s[cursor:]})
	}
	return elements
}

// RenderPlain is the inverse of ParsePlain, good enough for logs and the
// preview command.
func RenderPlain(elements []Element) string {
	var b strings.Builder
	for _, e := range elements {
		switch v := e.(type) {
		case Mention:
			name := v.Name
			if name == "" {
				name = v.ID
			}
			b.WriteString("@" + strings.TrimPrefix(name, "@"))
		case Text:
			b.WriteString(v.Content)
		case Raw:
			b.WriteString("[" + v.Type + "]")
		}
	}
	return b.String()
}
