package market

// Series is an append-only window over the most recent prices. When the
// window is full the oldest point is evicted.
type Series struct {
	limit  int
	prices []float64
}

// NewSeries creates a Series that retains at most limit points.
func NewSeries(limit int) *Series {
	return &Series{
		limit:  limit,
		prices: make([]float64, 0, limit),
	}
}

// Push appends a price, evicting the oldest point once the limit is reached.
func (s *Series) Push(p float64) {
	s.prices = append(s.prices, p)
	if len(s.prices) > s.limit {
		s.prices = s.prices[1:]
	}
}

// Last returns the most recent price; ok is false while the series is empty.
func (s *Series) Last() (price float64, ok bool) {
	if len(s.prices) == 0 {
		return 0, false
	}
	return s.prices[len(s.prices)-1], true
}

// Values returns the retained prices, oldest first. The slice is only valid
// until the next Push.
func (s *Series) Values() []float64 {
	return s.prices
}

// Len returns the number of retained prices.
func (s *Series) Len() int {
	return len(s.prices)
}
