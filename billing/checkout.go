package billing

import (
	"fmt"
	"strings"
	"time"

	"restaurant-pos-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Finalizer promotes a draft into an immutable order. The order row,
// its frozen line items and the draft cleanup are written in a single
// transaction, so a failure anywhere leaves no half-finalized order
// and the draft intact.
type Finalizer struct {
	DB     *gorm.DB
	Drafts *DraftStore
}

func NewFinalizer(db *gorm.DB) *Finalizer {
	return &Finalizer{DB: db, Drafts: NewDraftStore(db)}
}

// Finalize checks out the draft on a table: validates it is non-empty
// and fully priced, snapshots totals and per-line prices, then
// removes the draft and frees the table. Returns the created order
// with its items.
func (f *Finalizer) Finalize(scope Scope, tableID uint, payment models.PaymentMethod) (*models.Order, error) {
	if !scope.Valid() {
		return nil, ErrNoScope
	}

	draft, err := f.Drafts.GetByTable(scope, tableID)
	if err != nil {
		return nil, err
	}
	if len(draft.Items) == 0 {
		return nil, ErrEmptyDraft
	}

	lines := draftLines(draft)
	catalog, err := ResolveCatalog(f.DB, scope, lines)
	if err != nil {
		return nil, err
	}
	// a deleted item/variant with quantity still on the bill blocks
	// checkout; the draft must be corrected and retried
	if !catalog.AllResolved(lines) {
		return nil, ErrUnresolvedLine
	}

	var table models.DiningTable
	if err := f.DB.Where("owner_id = ? AND branch_id = ? AND id = ?",
		scope.OwnerID, scope.BranchID, tableID).First(&table).Error; err != nil {
		return nil, err
	}
	if err := CanTableTransition(table.Status, models.TableBilling); err != nil {
		return nil, err
	}

	totals := ComputeTotals(lines, catalog, draft.SGSTRate, draft.CGSTRate)
	tblID := tableID
	order := f.buildOrder(scope, &tblID, totals, payment, lines, catalog)

	err = f.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if err := f.Drafts.drop(tx, scope, draft); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// FinalizeTakeaway creates an order straight from an ad-hoc line set
// with no table and no draft. TableID stays null on the order.
func (f *Finalizer) FinalizeTakeaway(scope Scope, lines []Line, payment models.PaymentMethod, sgstRate, cgstRate float64) (*models.Order, error) {
	if !scope.Valid() {
		return nil, ErrNoScope
	}
	set := NewLineSet(lines)
	if set.Empty() {
		return nil, ErrEmptyDraft
	}
	lines = set.Lines()

	catalog, err := ResolveCatalog(f.DB, scope, lines)
	if err != nil {
		return nil, err
	}
	if !catalog.AllResolved(lines) {
		return nil, ErrUnresolvedLine
	}

	totals := ComputeTotals(lines, catalog, sgstRate, cgstRate)
	order := f.buildOrder(scope, nil, totals, payment, lines, catalog)
	if err := f.DB.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (f *Finalizer) buildOrder(scope Scope, tableID *uint, totals Totals, payment models.PaymentMethod, lines []Line, catalog Catalog) *models.Order {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		entry := catalog[l.Key()]
		items = append(items, models.OrderItem{
			MenuItemID: l.MenuItemID,
			VariantID:  l.VariantID,
			Name:       entry.Name + " (" + entry.VariantName + ")",
			Quantity:   l.Quantity,
			UnitPrice:  entry.UnitPrice,
			TotalPrice: entry.UnitPrice * float64(l.Quantity),
		})
	}
	if payment == "" {
		payment = models.PayCash
	}
	return &models.Order{
		OwnerID:       scope.OwnerID,
		BranchID:      scope.BranchID,
		OrderNumber:   NewOrderNumber(),
		TableID:       tableID,
		Subtotal:      totals.Subtotal,
		SGSTRate:      totals.SGSTRate,
		CGSTRate:      totals.CGSTRate,
		SGSTAmount:    totals.SGSTAmount,
		CGSTAmount:    totals.CGSTAmount,
		Total:         totals.Total,
		PaymentMethod: payment,
		Status:        models.OrderPaid,
		OrderDate:     time.Now(),
		Items:         items,
	}
}

// NewOrderNumber generates a human-readable bill number with a random
// suffix, e.g. ORD-20240131-9F3C21A4.
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
