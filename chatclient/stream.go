package chatclient

import (
	"bytes"
	"encoding/json"
	"strings"
)

const doneSentinel = "[DONE]"

// deltaChunk mirrors the OpenAI-style chunk shape the gateway streams.
type deltaChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// StreamParser reassembles delta content from a server-sent-event byte
// stream fed to it in arbitrary slices. Bytes that do not yet form a
// complete line stay buffered, and a data line whose JSON payload is
// truncated is pushed back rather than dropped, so content comes out
// identical no matter how the network splits the reads.
type StreamParser struct {
	buf  []byte
	done bool
}

// Done reports whether the [DONE] sentinel has been consumed.
func (p *StreamParser) Done() bool {
	return p.done
}

// Feed consumes the next slice of raw bytes and returns the delta content
// strings completed by it, in order.
func (p *StreamParser) Feed(chunk []byte) []string {
	if p.done {
		return nil
	}
	p.buf = append(p.buf, chunk...)

	var deltas []string
	for {
		newline := bytes.IndexByte(p.buf, '\n')
		if newline < 0 {
			break
		}
		line := strings.TrimRight(string(p.buf[:newline]), "\r")
		rest := p.buf[newline+1:]

		content, consumed, finished := p.parseLine(line)
		if !consumed {
			// Partial JSON split across reads: push the line back so the
			// next feed's bytes continue it.
			p.buf = append([]byte(line), rest...)
			break
		}
		p.buf = rest
		if content != "" {
			deltas = append(deltas, content)
		}
		if finished {
			p.done = true
			break
		}
	}
	return deltas
}

// parseLine handles one complete line. consumed=false means the line's
// payload is incomplete JSON and must stay buffered.
func (p *StreamParser) parseLine(line string) (content string, consumed, finished bool) {
	if line == "" || strings.HasPrefix(line, ":") {
		return "", true, false
	}

	payload, ok := strings.CutPrefix(line, "data:")
	if !ok {
		// Other SSE fields (event:, id:) carry no delta content.
		return "", true, false
	}
	payload = strings.TrimSpace(payload)

	if payload == doneSentinel {
		return "", true, true
	}

	var chunk deltaChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return "", false, false
	}
	for _, choice := range chunk.Choices {
		content += choice.Delta.Content
	}
	return content, true, false
}
