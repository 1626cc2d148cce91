package types

import (
	"github.com/c9s/mesa/pkg/datatype/floats"
)

// Queue is a bounded FIFO over float64 values. Updating a full queue drops
// the oldest value.
type Queue struct {
	arr  floats.Slice
	size int
}

func NewQueue(size int) *Queue {
	return &Queue{
		arr:  floats.Slice{},
		size: size,
	}
}

func (q *Queue) Update(v float64) {
	q.arr.Push(v)
	if len(q.arr) > q.size {
		q.arr = q.arr[len(q.arr)-q.size:]
	}
}

// Last returns the i-th value from the tail, Last(0) is the most recent.
func (q *Queue) Last(i int) float64 {
	return q.arr.Last(i)
}

func (q *Queue) Index(i int) float64 {
	return q.arr.Last(i)
}

func (q *Queue) Length() int {
	return len(q.arr)
}

func (q *Queue) Full() bool {
	return len(q.arr) == q.size
}

// Highest returns the maximum of the last n values.
func (q *Queue) Highest(n int) float64 {
	return q.arr.Tail(n).Max()
}

// Lowest returns the minimum of the last n values.
func (q *Queue) Lowest(n int) float64 {
	return q.arr.Tail(n).Min()
}
