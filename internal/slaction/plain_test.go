package slaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edgard/slactionbot/internal/slaction"
)

func TestParsePlain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []slaction.Element
	}{
		{name: "empty", input: "", want: nil},
		{name: "text only", input: "hello", want: []slaction.Element{text("hello")}},
		{
			name:  "mention and verb",
			input: "/拍 @bob",
			want:  []slaction.Element{text("/拍 "), slaction.Mention{ID: "bob", Name: "bob"}},
		},
		{
			name:  "two mentions",
			input: "@小明 /摸 @bob!",
			want: []slaction.Element{
				slaction.Mention{ID: "小明", Name: "小明"},
				text(" /摸 "),
				slaction.Mention{ID: "bob", Name: "bob"},
				text("!"),
			},
		},
		{name: "lone at sign stays text", input: "@ /拍", want: []slaction.Element{text("@ /拍")}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slaction.ParsePlain(tt.input))
		})
	}
}

func TestRenderPlain(t *testing.T) {
	t.Parallel()

	got := slaction.RenderPlain([]slaction.Element{
		alice,
		text(" 拍了拍 "),
		slaction.Mention{ID: "@bob"},
		text(" ！"),
		slaction.Raw{Type: "image"},
	})
	assert.Equal(t, "@Alice 拍了拍 @bob ！[image]", got)
}

func TestPlainRoundTripThroughRewriter(t *testing.T) {
	t.Parallel()

	r := slaction.NewRewriter(slaction.DefaultConfig())
	out, ok := r.Process(slaction.Mention{ID: "me", Name: "me"}, slaction.ParsePlain("/拍 @bob")).Get()

	assert.True(t, ok)
	assert.Equal(t, "@me 拍了拍 @bob ！", slaction.RenderPlain(out))
}
