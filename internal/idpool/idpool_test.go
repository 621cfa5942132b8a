package idpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueTracksIdentifiers(t *testing.T) {
	p := New(nil)
	id := p.Issue()

	assert.NotEmpty(t, id)
	assert.True(t, p.Contains(id))
	assert.Equal(t, 1, p.Len())
}

func TestCustomFactory(t *testing.T) {
	seq := 0
	p := New(func() string {
		seq++
		return "order-" + string(rune('0'+seq))
	})

	assert.Equal(t, "order-1", p.Issue())
	assert.Equal(t, "order-2", p.Issue())
	assert.Equal(t, 2, p.Len())
}

func TestClear(t *testing.T) {
	p := New(nil)
	id := p.Issue()
	p.Clear()

	assert.False(t, p.Contains(id))
	assert.Equal(t, 0, p.Len())
}

func TestContainsUnknown(t *testing.T) {
	p := New(nil)
	assert.False(t, p.Contains("never-issued"))
}
