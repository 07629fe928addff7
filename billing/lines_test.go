package billing

import (
	"reflect"
	"testing"
)

func TestLineSetAddMergesOnPair(t *testing.T) {
	s := NewLineSet(nil)
	s.Add(1, 10, 1)
	s.Add(1, 10, 2)
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1 (same pair merges)", s.Len())
	}
	if got := s.Lines()[0].Quantity; got != 3 {
		t.Errorf("quantity = %d, want 3", got)
	}
}

func TestLineSetKeyIsItemVariantPair(t *testing.T) {
	// two menu items sharing a variant id value must stay distinct lines
	s := NewLineSet(nil)
	s.Add(1, 10, 1)
	s.Add(2, 10, 1)
	s.Add(1, 11, 1)
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3 (identity is the (item, variant) pair)", s.Len())
	}
}

func TestLineSetAddDefaultsToOne(t *testing.T) {
	s := NewLineSet(nil)
	s.Add(1, 10, 0)
	s.Add(2, 20, -4)
	for _, l := range s.Lines() {
		if l.Quantity != 1 {
			t.Errorf("quantity = %d, want 1", l.Quantity)
		}
	}
}

func TestLineSetSetQuantity(t *testing.T) {
	s := NewLineSet(nil)
	s.Add(1, 10, 2)
	s.Add(2, 20, 1)

	s.SetQuantity(1, 10, 5)
	if got := s.Lines()[0].Quantity; got != 5 {
		t.Errorf("quantity = %d, want 5", got)
	}

	// qty <= 0 removes the line
	s.SetQuantity(1, 10, 0)
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1 after removal", s.Len())
	}
	s.SetQuantity(2, 20, -1)
	if !s.Empty() {
		t.Fatal("set should be empty after removing the last line")
	}

	// setting a quantity on an absent line inserts it
	s.SetQuantity(3, 30, 2)
	if s.Len() != 1 || s.Lines()[0].Quantity != 2 {
		t.Errorf("lines = %+v, want single line qty 2", s.Lines())
	}
}

func TestLineSetKeepsInsertionOrder(t *testing.T) {
	s := NewLineSet(nil)
	s.Add(3, 30, 1)
	s.Add(1, 10, 1)
	s.Add(2, 20, 1)
	s.SetQuantity(1, 10, 0)
	s.Add(1, 10, 4)

	want := []Line{
		{MenuItemID: 3, VariantID: 30, Quantity: 1},
		{MenuItemID: 2, VariantID: 20, Quantity: 1},
		{MenuItemID: 1, VariantID: 10, Quantity: 4},
	}
	if !reflect.DeepEqual(s.Lines(), want) {
		t.Errorf("lines = %+v, want %+v", s.Lines(), want)
	}
}

func TestNewLineSetMergesDuplicates(t *testing.T) {
	s := NewLineSet([]Line{
		{MenuItemID: 1, VariantID: 10, Quantity: 2},
		{MenuItemID: 1, VariantID: 10, Quantity: 3},
		{MenuItemID: 2, VariantID: 20, Quantity: 0}, // dropped
	})
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if got := s.Lines()[0].Quantity; got != 5 {
		t.Errorf("quantity = %d, want 5", got)
	}
}
