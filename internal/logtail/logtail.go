package logtail

// Ring keeps the most recent lines pushed into it, oldest first.
// A Ring is not safe for concurrent use.
type Ring struct {
	buf   []string
	next  int
	count int
}

// NewRing returns a ring holding at most size lines. A size of zero or less
// yields a ring that discards everything.
func NewRing(size int) *Ring {
	if size < 0 {
		size = 0
	}
	return &Ring{buf: make([]string, size)}
}

// Push appends line, evicting the oldest entry once the ring is full.
func (r *Ring) Push(line string) {
	if len(r.buf) == 0 {
		return
	}
	r.buf[r.next] = line
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Len reports how many lines are stored.
func (r *Ring) Len() int { return r.count }

// Lines returns a copy of the stored lines in insertion order.
func (r *Ring) Lines() []string {
	if r.count == 0 {
		return nil
	}
	lines := make([]string, r.count)
	if r.count < len(r.buf) {
		copy(lines, r.buf[:r.count])
		return lines
	}
	for i := 0; i < r.count; i++ {
		lines[i] = r.buf[(r.next+i)%len(r.buf)]
	}
	return lines
}
