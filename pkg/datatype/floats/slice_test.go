package floats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPush(t *testing.T) {
	var s Slice
	s.Push(1.0)
	s.Push(2.0)
	assert.Equal(t, Slice{1.0, 2.0}, s)
	assert.Equal(t, 2, s.Length())
}

func TestLast(t *testing.T) {
	s := New(1, 2, 3, 4, 5)
	assert.Equal(t, 5.0, s.Last(0))
	assert.Equal(t, 4.0, s.Last(1))
	assert.Equal(t, 1.0, s.Last(4))
	assert.Equal(t, 0.0, s.Last(5))
	assert.Equal(t, 0.0, s.Last(-1))
}

func TestTail(t *testing.T) {
	s := New(1, 2, 3, 4, 5)
	assert.Equal(t, Slice{4, 5}, s.Tail(2))
	assert.Equal(t, Slice{1, 2, 3, 4, 5}, s.Tail(10))
}

func TestTruncate(t *testing.T) {
	s := New(1, 2, 3, 4, 5)
	for i := 5; i > 0; i-- {
		s = s.Truncate(i)
		assert.Equal(t, i, s.Length())
	}
}

func TestAggregates(t *testing.T) {
	s := New(2, 4, 6)
	assert.Equal(t, 12.0, s.Sum())
	assert.Equal(t, 4.0, s.Mean())
	assert.Equal(t, 2.0, s.Min())
	assert.Equal(t, 6.0, s.Max())
}

func TestFill(t *testing.T) {
	s := Fill(3, 7.0)
	assert.Equal(t, Slice{7, 7, 7}, s)
}
