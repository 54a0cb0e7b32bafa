package cart

import "github.com/shopspring/decimal"

// Line is one product in the cart. Quantity is always at least 1.
type Line struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is an immutable cart snapshot. Lines keep the order they were
// first added in.
type State struct {
	lines map[string]Line
	order []string
}

// Lines returns a copy of every line in insertion order.
func (s State) Lines() []Line {
	out := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.lines[id])
	}
	return out
}

func (s State) Line(id string) (Line, bool) {
	l, ok := s.lines[id]
	return l, ok
}

func (s State) Len() int {
	return len(s.order)
}

func (s State) IsEmpty() bool {
	return len(s.order) == 0
}

// Total is the sum of unit price times quantity over every line.
func (s State) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the number of units across all lines.
func (s State) Count() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// with returns a copy of s with l stored under l.ID.
func (s State) with(l Line) State {
	next := State{
		lines: make(map[string]Line, len(s.lines)+1),
		order: append(make([]string, 0, len(s.order)+1), s.order...),
	}
	for id, existing := range s.lines {
		next.lines[id] = existing
	}
	if _, ok := s.lines[l.ID]; !ok {
		next.order = append(next.order, l.ID)
	}
	next.lines[l.ID] = l
	return next
}

// without returns a copy of s minus id.
func (s State) without(id string) State {
	next := State{
		lines: make(map[string]Line, len(s.lines)),
		order: make([]string, 0, len(s.order)),
	}
	for _, existing := range s.order {
		if existing == id {
			continue
		}
		next.order = append(next.order, existing)
		next.lines[existing] = s.lines[existing]
	}
	return next
}
