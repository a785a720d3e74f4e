package set

type cursorState uint8

const (
	cursorStart cursorState = iota
	cursorAt
	cursorRemoved
	cursorDone
)

// Cursor tracks the value most recently returned by an Iterator and
// enforces the Iterator call sequence. Implementations of Iterator
// embed a Cursor and call Set or Done from Next.
// The zero value is ready to use.
type Cursor[V any] struct {
	val   V
	state cursorState
}

// Set records v as the current value.
func (c *Cursor[V]) Set(v V) {
	c.val = v
	c.state = cursorAt
}

// Done records that iteration has finished.
func (c *Cursor[V]) Done() {
	c.val = *new(V)
	c.state = cursorDone
}

// Value returns the current value. It panics with ErrIllegalState
// if Next has not been called, and with ErrNoSuchElement once the
// iteration has finished.
func (c *Cursor[V]) Value() V {
	switch c.state {
	case cursorStart:
		Panicf(ErrIllegalState, "Value called before Next")
	case cursorDone:
		Panicf(ErrNoSuchElement, "Value called after end of iteration")
	}
	return c.val
}

// Take returns the current value for removal and marks it removed.
// It panics with ErrIllegalState unless the cursor is positioned on
// a value that has not already been removed.
func (c *Cursor[V]) Take() V {
	if c.state != cursorAt {
		Panicf(ErrIllegalState, "Remove called without a preceding successful Next")
	}
	c.state = cursorRemoved
	return c.val
}
