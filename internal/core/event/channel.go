package event

// Reader is one consumer's position in a Channel. It is owned by that
// consumer; two consumers never share a Reader.
type Reader struct {
	cursor uint64
	closed bool
}

// Channel is an append-only event log with independent reader cursors. Every
// event written is delivered, in order and exactly once, to each reader that
// was registered before the write. Readers never wait on one another and a
// lagging reader only delays compaction.
//
// Write and RegisterReader need exclusive access to the channel; Read only
// moves the caller's own cursor, so readers may run concurrently with each
// other but not with a writer.
type Channel[T any] struct {
	events  []T
	base    uint64 // sequence number of events[0]
	readers []*Reader
}

func NewChannel[T any]() *Channel[T] {
	return &Channel[T]{events: make([]T, 0, 64)}
}

func (c *Channel[T]) head() uint64 {
	return c.base + uint64(len(c.events))
}

// RegisterReader returns a reader positioned after the last written event.
func (c *Channel[T]) RegisterReader() *Reader {
	r := &Reader{cursor: c.head()}
	c.readers = append(c.readers, r)
	return r
}

// Close unregisters r so it no longer holds back compaction. Reading from a
// closed reader yields nothing.
func (c *Channel[T]) Close(r *Reader) {
	for i, rr := range c.readers {
		if rr == r {
			c.readers = append(c.readers[:i], c.readers[i+1:]...)
			break
		}
	}
	r.closed = true
}

// Write appends events to the log.
func (c *Channel[T]) Write(events ...T) {
	c.compact()
	c.events = append(c.events, events...)
}

// Read returns every event r has not seen yet and advances r past them. The
// returned slice must not be modified.
func (c *Channel[T]) Read(r *Reader) []T {
	if r.closed {
		return nil
	}
	end := c.head()
	if r.cursor >= end {
		return nil
	}
	start := r.cursor - c.base
	r.cursor = end
	n := uint64(len(c.events))
	return c.events[start:n:n]
}

// Unread counts the events waiting for r.
func (c *Channel[T]) Unread(r *Reader) int {
	if r.closed {
		return 0
	}
	return int(c.head() - r.cursor)
}

// Retained returns the number of events still held for some reader.
func (c *Channel[T]) Retained() int {
	return len(c.events)
}

// Readers returns the number of registered readers.
func (c *Channel[T]) Readers() int {
	return len(c.readers)
}

// compact drops the prefix every reader has consumed. The survivors move to a
// fresh array so slices handed out by Read are never overwritten.
func (c *Channel[T]) compact() {
	low := c.head()
	for _, r := range c.readers {
		if r.cursor < low {
			low = r.cursor
		}
	}
	drop := int(low - c.base)
	if drop == 0 {
		return
	}
	if drop < len(c.events) && drop < len(c.events)/2 {
		return
	}
	rest := c.events[drop:]
	fresh := make([]T, len(rest), max(2*len(rest), 64))
	copy(fresh, rest)
	c.events = fresh
	c.base = low
}
