// Copyright © 2018 The ELPS authors

package lisp

import (
	"strconv"
	"strings"

	"github.com/luthersystems/minilisp/parser/token"
)

// IType is the type of an Item.
type IType uint

// Possible IType values
const (
	// INone is the empty value.  It is also the empty list.
	INone IType = iota
	// INumber values store a signed integer in the Item.Num field.
	INumber
	// IString values store text in the Item.Str field.
	IString
	// IBoolean values store a bool in the Item.Bool field.
	IBoolean
	// IName values are symbols.  The symbol text is stored in Item.Str.
	IName
	// ICons values store a list (proper or improper) in the Item.Cons field.
	// A Cons is never empty; the empty list is INone.
	ICons
	// ITypeMax is not a real type but is numerically greater than all valid
	// IType values.
	ITypeMax
)

var itemTypeStrings = []string{
	INone:    "none",
	INumber:  "number",
	IString:  "string",
	IBoolean: "boolean",
	IName:    "name",
	ICons:    "list",
}

func (t IType) String() string {
	if t >= ITypeMax {
		return "INVALID"
	}
	return itemTypeStrings[t]
}

// Item is an immutable lisp datum.  Items are small values and are copied
// freely; a Cons shared between Items is never mutated after construction.
type Item struct {
	Type IType
	Num  int64
	Str  string
	Bool bool
	Cons *Cons
	// Source is the location the Item was read from, if any.  Source does
	// not participate in equality.
	Source *token.Location
}

// None returns the empty value.
func None() Item {
	return Item{Type: INone}
}

// Number returns a number Item.
func Number(n int64) Item {
	return Item{Type: INumber, Num: n}
}

// String returns a string Item.
func String(s string) Item {
	return Item{Type: IString, Str: s}
}

// Bool returns a boolean Item.
func Bool(b bool) Item {
	return Item{Type: IBoolean, Bool: b}
}

// Name returns a symbol Item.
func Name(s string) Item {
	return Item{Type: IName, Str: s}
}

// List returns a proper list containing items.  When items is empty the
// result is None.
func List(items ...Item) Item {
	if len(items) == 0 {
		return None()
	}
	cells := make([]Item, len(items))
	copy(cells, items)
	return FromCons(newCons(cells, true))
}

// FromCons wraps c in an Item.
func FromCons(c *Cons) Item {
	return Item{Type: ICons, Cons: c}
}

// WithSource returns a copy of item annotated with loc.
func (item Item) WithSource(loc *token.Location) Item {
	item.Source = loc
	return item
}

// IsNone returns true if item is the empty value.
func (item Item) IsNone() bool {
	return item.Type == INone
}

// Truthy reports the truth value of item when used as a condition.  Zero,
// the empty string, false, and None are false.  All other values are true.
func (item Item) Truthy() bool {
	switch item.Type {
	case INone:
		return false
	case INumber:
		return item.Num != 0
	case IString:
		return item.Str != ""
	case IBoolean:
		return item.Bool
	default:
		return true
	}
}

// Equal performs a structural comparison of item and other.
func (item Item) Equal(other Item) bool {
	if item.Type != other.Type {
		return false
	}
	switch item.Type {
	case INone:
		return true
	case INumber:
		return item.Num == other.Num
	case IString, IName:
		return item.Str == other.Str
	case IBoolean:
		return item.Bool == other.Bool
	case ICons:
		return item.Cons.Equal(other.Cons)
	default:
		return false
	}
}

// String returns the printed representation of item.  Strings are quoted
// and escaped so that the output can be read back.
func (item Item) String() string {
	var b strings.Builder
	item.write(&b)
	return b.String()
}

func (item Item) write(b *strings.Builder) {
	switch item.Type {
	case INone:
		b.WriteString("()")
	case INumber:
		b.WriteString(strconv.FormatInt(item.Num, 10))
	case IString:
		writeQuoted(b, item.Str)
	case IBoolean:
		if item.Bool {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case IName:
		b.WriteString(item.Str)
	case ICons:
		item.Cons.write(b)
	default:
		b.WriteString("#<invalid>")
	}
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, c := range s {
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	b.WriteByte('"')
}
