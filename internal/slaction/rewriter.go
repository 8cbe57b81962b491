package slaction

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/mo"
)

const (
	perfective = "了"
	closing    = " ！"
)

// Config controls which texts trigger the rule and how single-character
// verbs are rendered.
type Config struct {
	// Prefixes are checked in order; the first one a text starts with wins.
	Prefixes []string
	// UseDoubledForm renders "/拍" as "拍了拍" instead of "拍了".
	UseDoubledForm bool
}

// DefaultConfig returns the documented defaults: prefix "/" and doubled form on.
func DefaultConfig() Config {
	return Config{
		Prefixes:       []string{"/"},
		UseDoubledForm: true,
	}
}

// Action is a matched slap: Actor did Verb to Target.
type Action struct {
	Actor  Mention
	Verb   string
	Target Mention
}

// Elements renders the action as the replacement message.
func (a Action) Elements() []Element {
	return []Element{
		a.Actor,
		Text{Content: " " + a.Verb + " "},
		a.Target,
		Text{Content: closing},
	}
}

// Rewriter applies the rule. It holds no mutable state and can be shared
// between goroutines.
type Rewriter struct {
	prefixes []string
	doubled  bool
}

type matchedText struct {
	content string
	prefix  string
}

// NewRewriter builds a Rewriter from cfg. Empty prefixes are dropped since
// they would match every text.
func NewRewriter(cfg Config) *Rewriter {
	prefixes := make([]string, 0, len(cfg.Prefixes))
	for _, p := range cfg.Prefixes {
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return &Rewriter{prefixes: prefixes, doubled: cfg.UseDoubledForm}
}

// Process returns the replacement elements for a message sent by sender, or
// None when the message does not have the action shape and should be left
// alone.
func (r *Rewriter) Process(sender Mention, elements []Element) mo.Option[[]Element] {
	action, ok := r.Match(sender, elements).Get()
	if !ok {
		return mo.None[[]Element]()
	}
	return mo.Some(action.Elements())
}

// Match is Process without rendering.
func (r *Rewriter) Match(sender Mention, elements []Element) mo.Option[Action] {
	mentions, texts := r.extract(elements)
	if len(mentions) < 1 || len(mentions) > 2 || len(texts) != 1 {
		return mo.None[Action]()
	}

	matched := texts[0]
	verb := r.normalize(matched.content[len(matched.prefix):])

	if len(mentions) == 1 {
		return mo.Some(Action{Actor: sender, Verb: verb, Target: mentions[0]})
	}
	return mo.Some(Action{Actor: mentions[0], Verb: verb, Target: mentions[1]})
}

func (r *Rewriter) extract(elements []Element) ([]Mention, []matchedText) {
	var mentions []Mention
	var texts []matchedText

	for _, e := range elements {
		switch v := e.(type) {
		case Mention:
			mentions = append(mentions, v)
		case Text:
			content := strings.TrimFunc(v.Content, isTrimSpace)
			if content == "" {
				continue
			}
			for _, p := range r.prefixes {
				if strings.HasPrefix(content, p) {
					texts = append(texts, matchedText{content: content, prefix: p})
					break
				}
			}
		default:
			// images, stickers and anything else never take part
		}
	}
	return mentions, texts
}

func (r *Rewriter) normalize(verb string) string {
	switch {
	case strings.Contains(verb, perfective):
	case utf8.RuneCountInString(verb) == 1 && r.doubled:
		verb = verb + perfective + verb
	default:
		verb += perfective
	}
	return verb
}

func isTrimSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
