package chatclient

import (
	"sync"
	"time"
)

const typewriterQueueSize = 1024

// Typewriter replays streamed characters at a fixed per-character delay,
// applying each increment through the supplied callback. Characters are
// queued on a bounded channel consumed by exactly one goroutine, so
// concurrent chunk arrivals can never interleave their output. With a zero
// delay the text is applied immediately and no queue is involved.
type Typewriter struct {
	delay time.Duration
	apply func(string)

	queue chan rune
	wg    sync.WaitGroup
	once  sync.Once

	mu   sync.Mutex
	text []rune
}

func NewTypewriter(delay time.Duration, apply func(string)) *Typewriter {
	t := &Typewriter{delay: delay, apply: apply}
	if delay > 0 {
		t.queue = make(chan rune, typewriterQueueSize)
		go t.drain()
	}
	return t
}

// Write queues the chunk for playback. Blocks if the queue is full, which
// backpressures the stream reader instead of dropping characters.
func (t *Typewriter) Write(chunk string) {
	if t.delay <= 0 {
		t.mu.Lock()
		t.text = append(t.text, []rune(chunk)...)
		snapshot := string(t.text)
		t.mu.Unlock()
		t.apply(snapshot)
		return
	}

	for _, r := range chunk {
		t.wg.Add(1)
		t.queue <- r
	}
}

// drain is the single consumer: one character, one apply, one sleep.
func (t *Typewriter) drain() {
	for r := range t.queue {
		t.mu.Lock()
		t.text = append(t.text, r)
		snapshot := string(t.text)
		t.mu.Unlock()

		t.apply(snapshot)
		time.Sleep(t.delay)
		t.wg.Done()
	}
}

// Flush blocks until every queued character has been applied.
func (t *Typewriter) Flush() {
	t.wg.Wait()
}

// Close stops the drain goroutine after the queue empties. The typewriter
// must not be written to afterwards.
func (t *Typewriter) Close() {
	t.wg.Wait()
	t.once.Do(func() {
		if t.queue != nil {
			close(t.queue)
		}
	})
}

// Text returns the characters applied so far.
func (t *Typewriter) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.text)
}
