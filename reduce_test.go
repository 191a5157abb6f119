package streamstats

import (
	"testing"

	"github.com/longbridgeapp/assert"
)

func TestReduceSum(t *testing.T) {
	sum := NewReduce(0, func(a, b float64) float64 { return a + b })

	for _, x := range []float64{1, 2, 3, 4} {
		sum.Add(x)
	}

	assert.Equal(t, 10.0, sum.Reduction())
	assert.Equal(t, 10.0, sum.Estimate())
}

func TestReduceProduct(t *testing.T) {
	product := NewReduce(1, func(a, b float64) float64 { return a * b })
	product.Add(3)
	product.Add(4)

	assert.Equal(t, 12.0, product.Reduction())
}

func TestReduceMerge(t *testing.T) {
	a := NewReduce(0, func(x, y float64) float64 { return x + y })
	a.Add(1)
	a.Add(2)

	b := NewReduce(0, func(x, y float64) float64 { return x + y })
	b.Add(3)

	a.Merge(b)
	assert.Equal(t, 6.0, a.Reduction())
}
