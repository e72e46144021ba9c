package chatclient

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypewriter(t *testing.T) {
	t.Run("zero delay applies chunks immediately", func(t *testing.T) {
		var snapshots []string
		tw := NewTypewriter(0, func(text string) {
			snapshots = append(snapshots, text)
		})
		defer tw.Close()

		tw.Write("Hel")
		tw.Write("lo")

		assert.Equal(t, []string{"Hel", "Hello"}, snapshots)
		assert.Equal(t, "Hello", tw.Text())
	})

	t.Run("delayed playback emits one character per step", func(t *testing.T) {
		var mu sync.Mutex
		var snapshots []string
		tw := NewTypewriter(time.Millisecond, func(text string) {
			mu.Lock()
			snapshots = append(snapshots, text)
			mu.Unlock()
		})
		defer tw.Close()

		tw.Write("ab")
		tw.Write("c")
		tw.Flush()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"a", "ab", "abc"}, snapshots)
		assert.Equal(t, "abc", tw.Text())
	})

	t.Run("concurrent writes never interleave output", func(t *testing.T) {
		var mu sync.Mutex
		var last string
		tw := NewTypewriter(time.Microsecond, func(text string) {
			mu.Lock()
			// Every snapshot must extend the previous one by one
			// character; a second consumer would break this.
			assert.Len(t, text, len(last)+1)
			assert.Equal(t, last, text[:len(last)])
			last = text
			mu.Unlock()
		})
		defer tw.Close()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tw.Write("xy")
			}()
		}
		wg.Wait()
		tw.Flush()

		assert.Len(t, tw.Text(), 16)
	})

	t.Run("close waits for the queue to empty", func(t *testing.T) {
		var mu sync.Mutex
		var applied string
		tw := NewTypewriter(time.Millisecond, func(text string) {
			mu.Lock()
			applied = text
			mu.Unlock()
		})

		tw.Write("done")
		tw.Close()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "done", applied)
	})
}
