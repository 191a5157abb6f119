package streamstats

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"

	"github.com/hyp3rd/streamstats/internal/sentinel"
)

// distinctPair is a buffered item together with its random sampling key.
type distinctPair[T comparable] struct {
	item T
	key  float64
}

// DistinctElements estimates the number of distinct elements of a sequence in
// bounded memory.
//
// This uses the unbiased CVM algorithm by Chakraborty, Vinodchandran, and
// Meel, a weighted reservoir sample with a shrinking acceptance threshold.
//
// See https://cs.stanford.edu/~knuth/papers/cvm-note.pdf.
//
// The algorithm is randomized: individual estimates fluctuate around the true
// cardinality but are unbiased on average.
type DistinctElements[T comparable] struct {
	// Ideally, this should use a treap instead.
	buffer       []distinctPair[T]
	capacity     int
	samplingRate float64
	randFloat    func() float64
}

// NewDistinctElements creates a new estimator with the given buffer capacity,
// using the shared PRNG for sampling keys.
//
// Fails with ErrInvalidCapacity if capacity is not positive.
func NewDistinctElements[T comparable](capacity int) (*DistinctElements[T], error) {
	return NewDistinctElementsFromRand[T](capacity, rand.Float64)
}

// NewDistinctElementsFromRand creates a new estimator with the given buffer
// capacity, drawing sampling keys from the given source of uniform floats in
// [0, 1). Supplying a seeded source makes the estimator deterministic.
//
// Fails with ErrInvalidCapacity if capacity is not positive.
func NewDistinctElementsFromRand[T comparable](capacity int, randFloat func() float64) (*DistinctElements[T], error) {
	if capacity < 1 {
		return nil, sentinel.ErrInvalidCapacity
	}

	return &DistinctElements[T]{
		buffer:       make([]distinctPair[T], 0, capacity),
		capacity:     capacity,
		samplingRate: 1,
		randFloat:    randFloat,
	}, nil
}

// Add adds an element to the sequence.
func (d *DistinctElements[T]) Add(item T) {
	d.remove(item)

	// Maybe put the item in the buffer.
	u := d.randFloat()
	if u >= d.samplingRate {
		return
	}

	if len(d.buffer) < d.capacity {
		d.buffer = append(d.buffer, distinctPair[T]{item: item, key: u})

		return
	}

	// Maybe swap the item into the buffer, evicting the pair with the
	// maximal key; the larger of the two keys becomes the new threshold.
	maxItem, maxKey := d.findMax()
	if u > maxKey {
		d.samplingRate = u
	} else {
		d.remove(maxItem)
		d.buffer = append(d.buffer, distinctPair[T]{item: item, key: u})
		d.samplingRate = maxKey
	}
}

// remove deletes any buffered copy of the item.
func (d *DistinctElements[T]) remove(item T) {
	for i, pair := range d.buffer {
		if pair.item == item {
			d.buffer = append(d.buffer[:i], d.buffer[i+1:]...)

			return
		}
	}
}

// findMax returns the buffered pair with the maximal sampling key.
func (d *DistinctElements[T]) findMax() (T, float64) {
	maxPair := d.buffer[0]

	for _, pair := range d.buffer[1:] {
		if pair.key > maxPair.key {
			maxPair = pair
		}
	}

	return maxPair.item, maxPair.key
}

// Len returns the number of elements currently buffered.
func (d *DistinctElements[T]) Len() int {
	return len(d.buffer)
}

// Estimate estimates the number of distinct elements in the sequence.
func (d *DistinctElements[T]) Estimate() float64 {
	return float64(len(d.buffer)) / d.samplingRate
}

// DistinctStrings estimates the number of distinct strings in a sequence,
// hashing each string to a 64-bit key before feeding it to the CVM estimator.
type DistinctStrings struct {
	elements *DistinctElements[uint64]
}

// NewDistinctStrings creates a new distinct-strings estimator with the given
// buffer capacity.
//
// Fails with ErrInvalidCapacity if capacity is not positive.
func NewDistinctStrings(capacity int) (*DistinctStrings, error) {
	elements, err := NewDistinctElements[uint64](capacity)
	if err != nil {
		return nil, err
	}

	return &DistinctStrings{elements: elements}, nil
}

// Add adds a string to the sequence.
func (d *DistinctStrings) Add(s string) {
	d.elements.Add(xxhash.Sum64String(s))
}

// AddBytes adds a byte slice to the sequence.
func (d *DistinctStrings) AddBytes(b []byte) {
	d.elements.Add(xxhash.Sum64(b))
}

// Len returns the number of elements currently buffered.
func (d *DistinctStrings) Len() int {
	return d.elements.Len()
}

// Estimate estimates the number of distinct strings in the sequence.
func (d *DistinctStrings) Estimate() float64 {
	return d.elements.Estimate()
}
