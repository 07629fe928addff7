package billing

// LineKey identifies a line within a draft. The key is the
// (menu item, variant) id pair, never the variant name, which two
// different items may share.
type LineKey struct {
	MenuItemID uint
	VariantID  uint
}

// Line is one (menu item, variant, quantity) entry of an order.
type Line struct {
	MenuItemID uint
	VariantID  uint
	Quantity   int
}

func (l Line) Key() LineKey {
	return LineKey{MenuItemID: l.MenuItemID, VariantID: l.VariantID}
}

// LineSet accumulates draft lines in insertion order, merging
// quantities for lines with the same key. Insertion order is kept so
// repeated recomputation walks the lines identically every time.
type LineSet struct {
	lines []Line
	index map[LineKey]int
}

func NewLineSet(lines []Line) *LineSet {
	s := &LineSet{index: make(map[LineKey]int)}
	for _, l := range lines {
		if l.Quantity > 0 {
			s.Add(l.MenuItemID, l.VariantID, l.Quantity)
		}
	}
	return s
}

// Add increments the quantity of an existing line with the same
// (item, variant) key, or appends a new line. qty below 1 defaults
// to 1, matching the single-tap add on the order screen.
func (s *LineSet) Add(menuItemID, variantID uint, qty int) {
	if qty < 1 {
		qty = 1
	}
	key := LineKey{MenuItemID: menuItemID, VariantID: variantID}
	if i, ok := s.index[key]; ok {
		s.lines[i].Quantity += qty
		return
	}
	s.lines = append(s.lines, Line{MenuItemID: menuItemID, VariantID: variantID, Quantity: qty})
	s.index[key] = len(s.lines) - 1
}

// SetQuantity sets a line's quantity directly (the +/- stepper).
// qty <= 0 removes the line entirely.
func (s *LineSet) SetQuantity(menuItemID, variantID uint, qty int) {
	key := LineKey{MenuItemID: menuItemID, VariantID: variantID}
	i, ok := s.index[key]
	if !ok {
		if qty > 0 {
			s.Add(menuItemID, variantID, qty)
		}
		return
	}
	if qty > 0 {
		s.lines[i].Quantity = qty
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	delete(s.index, key)
	for j := i; j < len(s.lines); j++ {
		s.index[s.lines[j].Key()] = j
	}
}

func (s *LineSet) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *LineSet) Empty() bool {
	return len(s.lines) == 0
}

func (s *LineSet) Len() int {
	return len(s.lines)
}
