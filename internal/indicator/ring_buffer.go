package indicator

// RingBuffer keeps the most recent values up to a fixed capacity in insertion order.
type RingBuffer struct {
	values []float64
	size   int
	index  int
	filled bool
}

func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{
		values: make([]float64, size),
		size:   size,
	}
}

// Add appends a value, evicting the oldest one once the buffer is full.
func (r *RingBuffer) Add(value float64) {
	r.values[r.index] = value
	r.index = (r.index + 1) % r.size

	if r.index == 0 {
		r.filled = true
	}
}

func (r *RingBuffer) Len() int {
	if r.filled {
		return r.size
	}

	return r.index
}

func (r *RingBuffer) Cap() int {
	return r.size
}

func (r *RingBuffer) Full() bool {
	return r.filled
}

// Last returns the most recently added value.
func (r *RingBuffer) Last() (float64, bool) {
	if r.Len() == 0 {
		return 0, false
	}

	return r.values[(r.index-1+r.size)%r.size], true
}

// Values returns the buffered values from oldest to newest.
func (r *RingBuffer) Values() []float64 {
	length := r.Len()

	result := make([]float64, 0, length)
	if length == 0 {
		return result
	}

	if r.filled {
		result = append(result, r.values[r.index:]...)
	}

	result = append(result, r.values[:r.index]...)

	return result
}

func (r *RingBuffer) Reset() {
	clear(r.values)
	r.index = 0
	r.filled = false
}
