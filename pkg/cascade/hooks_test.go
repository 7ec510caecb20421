package cascade

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHooksRunInOrder(t *testing.T) {
	var got []int
	h := &Hooks{}
	h.Add("one", func(context.Context) { got = append(got, 1) })
	h.Add("two", func(context.Context) { got = append(got, 2) })

	h.Run(context.Background())
	h.Run(context.Background())

	assert.Equal(t, []int{1, 2}, got)
}

func TestHooksDiscard(t *testing.T) {
	ran := false
	h := &Hooks{}
	h.Add("never", func(context.Context) { ran = true })

	h.Discard()
	h.Run(context.Background())

	assert.False(t, ran)
}

func TestHooksPanicDoesNotStopOthers(t *testing.T) {
	ran := false
	h := &Hooks{}
	h.Add("bad", func(context.Context) { panic("bad hook") })
	h.Add("good", func(context.Context) { ran = true })

	assert.NotPanics(t, func() { h.Run(context.Background()) })
	assert.True(t, ran)
}

func TestNilHooks(t *testing.T) {
	var h *Hooks
	h.Add("ignored", func(context.Context) {})
	assert.Equal(t, 0, h.Len())
	assert.NotPanics(t, func() { h.Run(context.Background()) })
}
