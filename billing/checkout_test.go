package billing

import (
	"errors"
	"strings"
	"testing"

	"restaurant-pos-api/models"
)

func TestFinalizeHappyPath(t *testing.T) {
	f := newFixture(t)
	store := NewDraftStore(f.db)
	finalizer := NewFinalizer(f.db)

	if _, err := store.AddLine(f.scope, f.table.ID, f.biryani.ID, f.biryaniFull.ID, 2); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if _, err := store.AddLine(f.scope, f.table.ID, f.soda.ID, f.sodaRegular.ID, 1); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	order, err := finalizer.Finalize(f.scope, f.table.ID, models.PayUPI)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if !strings.HasPrefix(order.OrderNumber, "ORD-") {
		t.Errorf("order number = %q", order.OrderNumber)
	}
	if order.TableID == nil || *order.TableID != f.table.ID {
		t.Errorf("table id = %v, want %d", order.TableID, f.table.ID)
	}
	if got := RoundMoney(order.Total); got != 896.80 {
		t.Errorf("total = %v, want 896.80", got)
	}
	if order.PaymentMethod != models.PayUPI {
		t.Errorf("payment = %s, want UPI", order.PaymentMethod)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}
	if order.Items[0].UnitPrice != 350 || order.Items[0].TotalPrice != 700 {
		t.Errorf("frozen line = %+v", order.Items[0])
	}
	if order.Items[0].Name != "Chicken Biryani (Full)" {
		t.Errorf("frozen name = %q", order.Items[0].Name)
	}

	// draft is gone, table released
	if _, err := store.GetByTable(f.scope, f.table.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("GetByTable err = %v, want ErrDraftNotFound", err)
	}
	var itemCount int64
	f.db.Model(&models.PendingOrderItem{}).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("pending items left = %d, want 0", itemCount)
	}
	if got := f.tableStatus(t); got != models.TableAvailable {
		t.Errorf("table status = %s, want AVAILABLE", got)
	}
}

func TestFinalizeFreezesPrices(t *testing.T) {
	f := newFixture(t)
	store := NewDraftStore(f.db)
	finalizer := NewFinalizer(f.db)

	if _, err := store.AddLine(f.scope, f.table.ID, f.biryani.ID, f.biryaniFull.ID, 1); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	order, err := finalizer.Finalize(f.scope, f.table.ID, models.PayCash)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	// mutate and then delete the source variant
	f.db.Model(&models.MenuItemVariant{}).Where("id = ?", f.biryaniFull.ID).Update("selling_price", 999)
	f.db.Delete(&models.MenuItemVariant{}, f.biryaniFull.ID)

	var frozen models.OrderItem
	if err := f.db.Where("order_id = ?", order.ID).First(&frozen).Error; err != nil {
		t.Fatalf("reload order item: %v", err)
	}
	if frozen.UnitPrice != 350 || frozen.TotalPrice != 350 {
		t.Errorf("frozen prices = %v/%v, want 350/350", frozen.UnitPrice, frozen.TotalPrice)
	}
}

func TestFinalizeRejectsEmptyDraft(t *testing.T) {
	f := newFixture(t)
	finalizer := NewFinalizer(f.db)

	// a lineless draft row (normally unreachable) must still be rejected
	draft := models.PendingOrder{
		OwnerID: f.scope.OwnerID, BranchID: f.scope.BranchID,
		TableID: f.table.ID, SGSTRate: 9, CGSTRate: 9, Version: 1,
	}
	if err := f.db.Create(&draft).Error; err != nil {
		t.Fatalf("seed draft: %v", err)
	}

	if _, err := finalizer.Finalize(f.scope, f.table.ID, models.PayCash); !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("err = %v, want ErrEmptyDraft", err)
	}
	var orders int64
	f.db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Errorf("order rows = %d, want 0 (rejection must have no effect)", orders)
	}
}

func TestFinalizeRejectsMissingDraft(t *testing.T) {
	f := newFixture(t)
	finalizer := NewFinalizer(f.db)

	if _, err := finalizer.Finalize(f.scope, f.table.ID, models.PayCash); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("err = %v, want ErrDraftNotFound", err)
	}
}

func TestFinalizeRejectsWithoutScope(t *testing.T) {
	f := newFixture(t)
	finalizer := NewFinalizer(f.db)

	if _, err := finalizer.Finalize(Scope{OwnerID: 1}, f.table.ID, models.PayCash); !errors.Is(err, ErrNoScope) {
		t.Errorf("err = %v, want ErrNoScope", err)
	}
}

func TestFinalizeRejectsUnresolvedLine(t *testing.T) {
	f := newFixture(t)
	store := NewDraftStore(f.db)
	finalizer := NewFinalizer(f.db)

	if _, err := store.AddLine(f.scope, f.table.ID, f.soda.ID, f.sodaRegular.ID, 2); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	// menu item deleted out from under the draft
	f.db.Delete(&models.MenuItemVariant{}, f.sodaRegular.ID)
	f.db.Delete(&models.MenuItem{}, f.soda.ID)

	if _, err := finalizer.Finalize(f.scope, f.table.ID, models.PayCash); !errors.Is(err, ErrUnresolvedLine) {
		t.Fatalf("err = %v, want ErrUnresolvedLine", err)
	}
	// draft untouched, retryable after correction
	draft, err := store.GetByTable(f.scope, f.table.ID)
	if err != nil {
		t.Fatalf("GetByTable: %v", err)
	}
	if len(draft.Items) != 1 {
		t.Errorf("draft items = %d, want 1", len(draft.Items))
	}
}

func TestFinalizeTakeaway(t *testing.T) {
	f := newFixture(t)
	finalizer := NewFinalizer(f.db)

	lines := []Line{
		{MenuItemID: f.biryani.ID, VariantID: f.biryaniHalf.ID, Quantity: 1},
		{MenuItemID: f.soda.ID, VariantID: f.sodaRegular.ID, Quantity: 2},
	}
	order, err := finalizer.FinalizeTakeaway(f.scope, lines, models.PayCard, 9, 9)
	if err != nil {
		t.Fatalf("FinalizeTakeaway: %v", err)
	}
	if order.TableID != nil {
		t.Errorf("table id = %v, want nil for takeaway", order.TableID)
	}
	if got := RoundMoney(order.Subtotal); got != 320 { // 200 + 2*60
		t.Errorf("subtotal = %v, want 320", got)
	}

	// empty takeaway is rejected
	if _, err := finalizer.FinalizeTakeaway(f.scope, nil, models.PayCash, 9, 9); !errors.Is(err, ErrEmptyDraft) {
		t.Errorf("err = %v, want ErrEmptyDraft", err)
	}
}
