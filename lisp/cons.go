// Copyright © 2018 The ELPS authors

package lisp

import "strings"

// Cons is a non-empty list stored as a flat slice of cells.  A proper list
// of length n holds its n elements.  An improper list holds its elements
// followed by the non-list tail, so it always has at least two cells.
//
// Cons values are immutable.  Cdr shares the backing slice of its receiver.
type Cons struct {
	cells  []Item
	proper bool
}

func newCons(cells []Item, proper bool) *Cons {
	if len(cells) == 0 {
		panic(invariantf("cons constructed with no cells"))
	}
	if !proper && len(cells) < 2 {
		panic(invariantf("improper cons constructed with %d cell", len(cells)))
	}
	return &Cons{cells: cells, proper: proper}
}

// NewCons joins car and cdr.  A list cdr is spliced so that the result stays
// flat; None produces a one element list; any other cdr produces an
// improper pair.
func NewCons(car, cdr Item) *Cons {
	switch cdr.Type {
	case INone:
		return newCons([]Item{car}, true)
	case ICons:
		cells := make([]Item, 0, len(cdr.Cons.cells)+1)
		cells = append(cells, car)
		cells = append(cells, cdr.Cons.cells...)
		return newCons(cells, cdr.Cons.proper)
	default:
		return newCons([]Item{car, cdr}, false)
	}
}

// Car returns the first element of c.
func (c *Cons) Car() Item {
	return c.cells[0]
}

// Cdr returns everything following the first element of c.  The cdr of a
// one element proper list is None and the cdr of a dotted pair is its tail.
func (c *Cons) Cdr() Item {
	switch {
	case len(c.cells) == 1:
		return None()
	case !c.proper && len(c.cells) == 2:
		return c.cells[1]
	default:
		return FromCons(&Cons{cells: c.cells[1:], proper: c.proper})
	}
}

// Nth returns the element at index i, or an error if c has no such
// element.  The tail of an improper list is not an element.
func (c *Cons) Nth(i int) (Item, error) {
	if i < 0 || i >= c.Len() {
		return None(), ErrorConditionf(CondNotEnoughElements,
			"not enough elements: need at least %d, found %d", i+1, c.Len())
	}
	return c.cells[i], nil
}

// Cadr returns the second element of c.
func (c *Cons) Cadr() (Item, error) { return c.Nth(1) }

// Caddr returns the third element of c.
func (c *Cons) Caddr() (Item, error) { return c.Nth(2) }

// Cadddr returns the fourth element of c.
func (c *Cons) Cadddr() (Item, error) { return c.Nth(3) }

// Len returns the number of elements in c, excluding an improper tail.
func (c *Cons) Len() int {
	if c.proper {
		return len(c.cells)
	}
	return len(c.cells) - 1
}

// IsProper returns true if c is terminated by the empty list.
func (c *Cons) IsProper() bool {
	return c.proper
}

// Items returns a copy of the elements of c, excluding an improper tail.
func (c *Cons) Items() []Item {
	items := make([]Item, c.Len())
	copy(items, c.cells)
	return items
}

// Tail returns the improper tail of c, or None for a proper list.
func (c *Cons) Tail() Item {
	if c.proper {
		return None()
	}
	return c.cells[len(c.cells)-1]
}

func (c *Cons) elements(from int) []Item {
	return c.cells[from:c.Len()]
}

// Equal performs a structural comparison of two lists.
func (c *Cons) Equal(other *Cons) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	if c.proper != other.proper || len(c.cells) != len(other.cells) {
		return false
	}
	for i := range c.cells {
		if !c.cells[i].Equal(other.cells[i]) {
			return false
		}
	}
	return true
}

func (c *Cons) String() string {
	var b strings.Builder
	c.write(&b)
	return b.String()
}

func (c *Cons) write(b *strings.Builder) {
	b.WriteByte('(')
	for i := 0; i < c.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		c.cells[i].write(b)
	}
	if !c.proper {
		b.WriteString(" . ")
		c.Tail().write(b)
	}
	b.WriteByte(')')
}
