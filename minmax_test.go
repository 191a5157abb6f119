package streamstats

import (
	"math"
	"testing"

	"github.com/longbridgeapp/assert"
)

func TestMinMax(t *testing.T) {
	minimum := NewMin()
	maximum := NewMax()

	for _, x := range []float64{3, -1, 4, -1, 5} {
		minimum.Add(x)
		maximum.Add(x)
	}

	assert.Equal(t, -1.0, minimum.Min())
	assert.Equal(t, 5.0, maximum.Max())
	assert.Equal(t, -1.0, minimum.Estimate())
	assert.Equal(t, 5.0, maximum.Estimate())
}

func TestMinMaxEmpty(t *testing.T) {
	// The identity elements of min and max.
	assert.True(t, math.IsInf(NewMin().Min(), 1))
	assert.True(t, math.IsInf(NewMax().Max(), -1))
}

func TestMinMaxFromValue(t *testing.T) {
	minimum := NewMinFromValue(2)
	minimum.Add(3)
	assert.Equal(t, 2.0, minimum.Min())

	maximum := NewMaxFromValue(2)
	maximum.Add(1)
	assert.Equal(t, 2.0, maximum.Max())
}

func TestMinMaxMerge(t *testing.T) {
	a := NewMin()
	a.AddMany(3, 2)

	b := NewMin()
	b.AddMany(1, 4)

	a.Merge(b)
	assert.Equal(t, 1.0, a.Min())

	// Merging an empty estimator is a no-op.
	a.Merge(NewMin())
	assert.Equal(t, 1.0, a.Min())

	c := NewMax()
	c.AddMany(3, 2)

	d := NewMax()
	d.AddMany(1, 4)

	c.Merge(d)
	assert.Equal(t, 4.0, c.Max())
}
