package chatclient

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deltaLine(content string) string {
	return fmt.Sprintf(`data: {"choices":[{"delta":{"content":%q}}]}`+"\n", content)
}

func collect(parser *StreamParser, chunks ...[]byte) string {
	var out strings.Builder
	for _, chunk := range chunks {
		for _, delta := range parser.Feed(chunk) {
			out.WriteString(delta)
		}
	}
	return out.String()
}

func TestStreamParser(t *testing.T) {
	stream := deltaLine("Hello") + deltaLine(", ") + deltaLine("world") + "data: [DONE]\n"

	t.Run("single read", func(t *testing.T) {
		var parser StreamParser
		assert.Equal(t, "Hello, world", collect(&parser, []byte(stream)))
		assert.True(t, parser.Done())
	})

	t.Run("every split point reconstructs identical content", func(t *testing.T) {
		for i := 1; i < len(stream); i++ {
			var parser StreamParser
			got := collect(&parser, []byte(stream[:i]), []byte(stream[i:]))
			require.Equal(t, "Hello, world", got, "split at byte %d", i)
			require.True(t, parser.Done(), "split at byte %d", i)
		}
	})

	t.Run("byte at a time", func(t *testing.T) {
		var parser StreamParser
		var out strings.Builder
		for i := 0; i < len(stream); i++ {
			for _, delta := range parser.Feed([]byte{stream[i]}) {
				out.WriteString(delta)
			}
		}
		assert.Equal(t, "Hello, world", out.String())
		assert.True(t, parser.Done())
	})

	t.Run("ignores blanks and comments", func(t *testing.T) {
		var parser StreamParser
		input := ": keep-alive\n\n" + deltaLine("ok") + "\n: ping\ndata: [DONE]\n"
		assert.Equal(t, "ok", collect(&parser, []byte(input)))
		assert.True(t, parser.Done())
	})

	t.Run("ignores other sse fields", func(t *testing.T) {
		var parser StreamParser
		input := "event: message\nid: 7\n" + deltaLine("ok") + "data: [DONE]\n"
		assert.Equal(t, "ok", collect(&parser, []byte(input)))
	})

	t.Run("crlf line endings", func(t *testing.T) {
		var parser StreamParser
		input := strings.ReplaceAll(deltaLine("ok")+"data: [DONE]\n", "\n", "\r\n")
		assert.Equal(t, "ok", collect(&parser, []byte(input)))
		assert.True(t, parser.Done())
	})

	t.Run("nothing after done sentinel", func(t *testing.T) {
		var parser StreamParser
		collect(&parser, []byte("data: [DONE]\n"))
		assert.Empty(t, parser.Feed([]byte(deltaLine("late"))))
	})

	t.Run("partial json line stays buffered", func(t *testing.T) {
		var parser StreamParser
		full := deltaLine("split me")
		assert.Empty(t, parser.Feed([]byte(full[:20])))
		assert.Equal(t, []string{"split me"}, parser.Feed([]byte(full[20:])))
	})
}

func TestDetectTopic(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Tell me about your projects", TopicProjects},
		{"What did you BUILD recently?", TopicProjects},
		{"Do you offer consulting services?", TopicServices},
		{"What tech stack do you use?", TopicTech},
		{"Which framework and language?", TopicTech},
		{"How can I contact you?", TopicContact},
		{"I want to hire you", TopicContact},
		{"hello there", TopicGeneral},
		{"", TopicGeneral},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectTopic(tc.text), "text: %q", tc.text)
	}
}
