package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeriesEvictsOldest(t *testing.T) {
	s := NewSeries(3)
	for _, p := range []float64{1.1, 1.2, 1.3, 1.4} {
		s.Push(p)
	}

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{1.2, 1.3, 1.4}, s.Values())

	last, ok := s.Last()
	assert.True(t, ok)
	assert.Equal(t, 1.4, last)
}

func TestSeriesEmpty(t *testing.T) {
	s := NewSeries(5)
	_, ok := s.Last()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestPips(t *testing.T) {
	assert.InDelta(t, 6.0, Pips(1.10000, 1.10060), 1e-9)
	assert.InDelta(t, -10.0, Pips(1.10000, 1.09900), 1e-9)
}

func TestRounding(t *testing.T) {
	assert.InDelta(t, 1.12346, Round5(1.1234561), 1e-12)
	assert.InDelta(t, 0.070001, Round6(0.0700009), 1e-12)
	assert.InDelta(t, 7.0, Round3(7.0000001), 1e-12)
}
