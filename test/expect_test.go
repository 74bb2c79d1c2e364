package test

import (
	"sync"
	"testing"
	"time"

	"chatapi/wire"

	"github.com/stretchr/testify/assert"
)

func TestDispatchFirstMatchOnly(t *testing.T) {
	var tests Expectations
	var calls []string
	tests.Add(IsMessage("a"), func() { calls = append(calls, "first") })
	tests.Add(IsMessage("a"), func() { calls = append(calls, "second") })
	tests.Add(IsMessage("b"), func() { calls = append(calls, "b") })
	assert.Equal(t, 3, tests.Len())

	assert.True(t, tests.Dispatch(&wire.Event{Type: wire.EventMessage, Body: "a"}))
	assert.Equal(t, []string{"first"}, calls)
	assert.Equal(t, 2, tests.Len())

	assert.True(t, tests.Dispatch(&wire.Event{Type: wire.EventMessage, Body: "a"}))
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, 1, tests.Len())
}

func TestDispatchNoMatch(t *testing.T) {
	var tests Expectations
	called := false
	tests.Add(IsMessage("a"), func() { called = true })

	assert.False(t, tests.Dispatch(&wire.Event{Type: wire.EventMessage, Body: "b"}))
	assert.False(t, tests.Dispatch(&wire.Event{Type: wire.EventTyping}))
	assert.False(t, tests.Dispatch(&wire.Event{Type: wire.EventMessage, Body: "a", IsGroup: true}))
	assert.False(t, called)
	assert.Equal(t, 1, tests.Len())
}

func TestIsSticker(t *testing.T) {
	match := IsSticker("767334526626290")
	assert.True(t, match(&wire.Event{
		Type:        wire.EventMessage,
		Attachments: []wire.Attachment{{Type: wire.AttachmentSticker, StickerID: "767334526626290"}},
	}))
	assert.False(t, match(&wire.Event{Type: wire.EventMessage, Attachments: []wire.Attachment{}}))
	assert.False(t, match(&wire.Event{
		Type:        wire.EventMessage,
		Attachments: []wire.Attachment{{Type: wire.AttachmentShare, URL: "https://example.com"}},
	}))
}

func TestExpectAndWait(t *testing.T) {
	var tests Expectations
	done := tests.Expect(IsMessage("hello"))
	assert.False(t, Wait(done, time.Millisecond*10))

	go tests.Dispatch(&wire.Event{Type: wire.EventMessage, Body: "hello"})
	assert.True(t, Wait(done, time.Second))
	assert.Equal(t, 0, tests.Len())
}

func TestDispatchConcurrent(t *testing.T) {
	var tests Expectations
	var mu sync.Mutex
	count := 0
	for i := 0; i < 50; i++ {
		tests.Add(IsMessage("x"), func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tests.Dispatch(&wire.Event{Type: wire.EventMessage, Body: "x"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, count)
	assert.Equal(t, 0, tests.Len())
}
