package implcache

import (
	"testing"

	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServesCachedUntilPurged(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	impl := &model.Implementation{ID: "rule", Engine: model.EngineGroovy, Type: "PULL_CORRELATION_RULE", Body: "return 1"}
	first, err := c.Load(impl)
	require.NoError(t, err)

	impl.Body = "return 2"
	stale, err := c.Load(impl)
	require.NoError(t, err)
	assert.Same(t, first, stale)

	c.Purge("rule")
	fresh, err := c.Load(impl)
	require.NoError(t, err)
	assert.Equal(t, "return 2", fresh.Body)
	assert.NotEqual(t, first.Digest, fresh.Digest)
}

func TestPurgeIsIdempotent(t *testing.T) {
	c, err := New(0)
	require.NoError(t, err)

	c.Purge("missing")
	_, err = c.Load(&model.Implementation{ID: "a", Engine: model.EngineJava, Body: "org.example.Rule"})
	require.NoError(t, err)
	c.Purge("a")
	c.Purge("a")
	assert.Zero(t, c.Len())
}

func TestLoadRejectsInvalidBodies(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	for _, impl := range []*model.Implementation{
		{ID: "a", Engine: model.EngineJava, Body: "not a class"},
		{ID: "b", Engine: model.EngineGroovy, Body: "  "},
		{ID: "c", Engine: "PYTHON", Body: "x"},
	} {
		_, err := c.Load(impl)
		assert.ErrorIs(t, err, ErrInvalid, impl.ID)
	}
	assert.Zero(t, c.Len())
}

func TestEviction(t *testing.T) {
	c, err := New(1)
	require.NoError(t, err)

	_, err = c.Load(&model.Implementation{ID: "a", Engine: model.EngineJava, Body: "A"})
	require.NoError(t, err)
	_, err = c.Load(&model.Implementation{ID: "b", Engine: model.EngineJava, Body: "B"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestGet(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	_, ok := c.Get("rule")
	assert.False(t, ok)

	loaded, err := c.Load(&model.Implementation{ID: "rule", Engine: model.EngineJava, Body: "org.example.Rule"})
	require.NoError(t, err)
	got, ok := c.Get("rule")
	require.True(t, ok)
	assert.Same(t, loaded, got)
}
