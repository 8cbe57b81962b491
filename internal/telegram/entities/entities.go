// Package entities converts between Telegram messages and slaction elements.
// Telegram addresses entities in UTF-16 code units, so all offset math here
// is done in that unit.
package entities

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/slactionbot/internal/slaction"
)

// ToElements splits a Telegram message into elements. Attachments come first
// as Raw elements, followed by the text (or caption) split at mention
// entities.
func ToElements(msg *models.Message) []slaction.Element {
	if msg == nil {
		return nil
	}

	var elements []slaction.Element
	if len(msg.Photo) > 0 {
		elements = append(elements, slaction.Raw{Type: "image"})
	}
	if msg.Sticker != nil {
		elements = append(elements, slaction.Raw{Type: "sticker"})
	}
	if msg.Document != nil {
		elements = append(elements, slaction.Raw{Type: "document"})
	}

	text, ents := msg.Text, msg.Entities
	if text == "" {
		text, ents = msg.Caption, msg.CaptionEntities
	}
	return append(elements, split(text, ents)...)
}

func split(text string, ents []models.MessageEntity) []slaction.Element {
	if text == "" {
		return nil
	}

	mentions := make([]models.MessageEntity, 0, len(ents))
	for _, e := range ents {
		switch {
		case e.Type == models.MessageEntityTypeMention:
			mentions = append(mentions, e)
		case e.Type == models.MessageEntityTypeTextMention && e.User != nil:
			mentions = append(mentions, e)
		}
	}
	sort.SliceStable(mentions, func(i, j int) bool { return mentions[i].Offset < mentions[j].Offset })

	units := utf16.Encode([]rune(text))
	var elements []slaction.Element
	cursor := 0
	for _, e := range mentions {
		end := e.Offset + e.Length
		if e.Length <= 0 || e.Offset < cursor || end > len(units) {
			continue
		}
		if e.Offset > cursor {
			elements = append(elements, slaction.Text{Content: decode(units[cursor:e.Offset])})
		}

		segment := decode(units[e.Offset:end])
		if e.Type == models.MessageEntityTypeTextMention {
			elements = append(elements, slaction.Mention{ID: strconv.FormatInt(e.User.ID, 10), Name: segment})
		} else {
			elements = append(elements, slaction.Mention{ID: segment, Name: segment})
		}
		cursor = end
	}
	if cursor < len(units) {
		elements = append(elements, slaction.Text{Content: decode(units[cursor:])})
	}
	return elements
}

// Sender builds the mention used for the author of a message.
func Sender(u *models.User) slaction.Mention {
	if u == nil {
		return slaction.Mention{}
	}
	return slaction.Mention{ID: strconv.FormatInt(u.ID, 10), Name: DisplayName(u)}
}

// DisplayName is the user's full name, or the username when no name is set.
func DisplayName(u *models.User) string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return name
}

// Render turns elements back into message text plus the entities Telegram
// needs to display the mentions. Raw elements have no text form and are
// dropped.
func Render(elements []slaction.Element) (string, []models.MessageEntity) {
	var b strings.Builder
	var ents []models.MessageEntity
	offset := 0

	write := func(s string) int {
		b.WriteString(s)
		n := utf16Len(s)
		offset += n
		return n
	}

	for _, e := range elements {
		switch v := e.(type) {
		case slaction.Text:
			write(v.Content)
		case slaction.Mention:
			start := offset
			if strings.HasPrefix(v.ID, "@") {
				ents = append(ents, models.MessageEntity{
					Type:   models.MessageEntityTypeMention,
					Offset: start,
					Length: write(v.ID),
				})
				continue
			}

			name := v.Name
			if name == "" {
				name = v.ID
			}
			id, err := strconv.ParseInt(v.ID, 10, 64)
			if err != nil {
				write(name)
				continue
			}
			ents = append(ents, models.MessageEntity{
				Type:   models.MessageEntityTypeTextMention,
				Offset: start,
				Length: write(name),
				User:   &models.User{ID: id},
			})
		default:
		}
	}
	return b.String(), ents
}

func decode(units []uint16) string {
	return string(utf16.Decode(units))
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
