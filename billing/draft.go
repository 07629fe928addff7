package billing

import (
	"errors"

	"restaurant-pos-api/models"

	"gorm.io/gorm"
)

// DraftStore persists the per-table draft order. Every mutation
// recomputes the denormalized totals, replaces the line rows and
// bumps the draft version in a single transaction. Writers racing on
// the same table fail the version check and get ErrStaleDraft instead
// of overwriting each other.
type DraftStore struct {
	DB *gorm.DB
}

func NewDraftStore(db *gorm.DB) *DraftStore {
	return &DraftStore{DB: db}
}

// GetByTable returns the draft for a table with its lines, or
// ErrDraftNotFound when the table has no open draft (table is
// implicitly available).
func (s *DraftStore) GetByTable(scope Scope, tableID uint) (*models.PendingOrder, error) {
	if !scope.Valid() {
		return nil, ErrNoScope
	}
	var draft models.PendingOrder
	err := s.DB.Preload("Items").
		Where("owner_id = ? AND branch_id = ? AND table_id = ?", scope.OwnerID, scope.BranchID, tableID).
		First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// AddLine merges a (menu item, variant) line into the table's draft,
// creating the draft on first add. The new draft inherits the
// branch's tax rates and flips the table to OCCUPIED.
func (s *DraftStore) AddLine(scope Scope, tableID, menuItemID, variantID uint, qty int) (*models.PendingOrder, error) {
	if !scope.Valid() {
		return nil, ErrNoScope
	}
	if qty < 1 {
		return nil, ErrQuantity
	}

	draft, err := s.GetByTable(scope, tableID)
	if errors.Is(err, ErrDraftNotFound) {
		draft, err = s.create(scope, tableID)
	}
	if err != nil {
		return nil, err
	}

	set := NewLineSet(draftLines(draft))
	set.Add(menuItemID, variantID, qty)
	return s.save(scope, draft, set)
}

// SetQuantity sets a line's quantity directly; qty <= 0 removes the
// line, and removing the last line deletes the draft entirely.
func (s *DraftStore) SetQuantity(scope Scope, tableID, menuItemID, variantID uint, qty int) (*models.PendingOrder, error) {
	if !scope.Valid() {
		return nil, ErrNoScope
	}
	draft, err := s.GetByTable(scope, tableID)
	if err != nil {
		return nil, err
	}

	set := NewLineSet(draftLines(draft))
	set.SetQuantity(menuItemID, variantID, qty)
	return s.save(scope, draft, set)
}

// SetRates updates the draft's tax rates (clamped to [0,100]) and
// recomputes totals over the unchanged line set.
func (s *DraftStore) SetRates(scope Scope, tableID uint, sgstRate, cgstRate float64) (*models.PendingOrder, error) {
	if !scope.Valid() {
		return nil, ErrNoScope
	}
	draft, err := s.GetByTable(scope, tableID)
	if err != nil {
		return nil, err
	}
	draft.SGSTRate = ClampRate(sgstRate)
	draft.CGSTRate = ClampRate(cgstRate)
	return s.save(scope, draft, NewLineSet(draftLines(draft)))
}

// Delete discards a draft and releases its table.
func (s *DraftStore) Delete(scope Scope, tableID uint) error {
	if !scope.Valid() {
		return ErrNoScope
	}
	draft, err := s.GetByTable(scope, tableID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.drop(tx, scope, draft)
	})
}

// create finds-or-creates the draft row for a table. The unique index
// on table_id backs the one-draft-per-table invariant; losing the
// insert race falls back to the winner's row.
func (s *DraftStore) create(scope Scope, tableID uint) (*models.PendingOrder, error) {
	var table models.DiningTable
	err := s.DB.Where("owner_id = ? AND branch_id = ? AND id = ?", scope.OwnerID, scope.BranchID, tableID).
		First(&table).Error
	if err != nil {
		return nil, err
	}
	if err := CanTableTransition(table.Status, models.TableOccupied); err != nil {
		return nil, err
	}

	var branch models.Branch
	if err := s.DB.Where("owner_id = ? AND id = ?", scope.OwnerID, scope.BranchID).First(&branch).Error; err != nil {
		return nil, err
	}

	draft := models.PendingOrder{
		OwnerID:  scope.OwnerID,
		BranchID: scope.BranchID,
		TableID:  tableID,
		SGSTRate: ClampRate(branch.SGSTRate),
		CGSTRate: ClampRate(branch.CGSTRate),
		Version:  1,
	}
	if err := s.DB.Create(&draft).Error; err != nil {
		existing, lookupErr := s.GetByTable(scope, tableID)
		if lookupErr == nil {
			return existing, nil
		}
		return nil, err
	}
	s.DB.Model(&table).Update("status", models.TableOccupied)
	return &draft, nil
}

// save recomputes totals for the mutated line set and persists draft
// plus lines in one transaction. An empty set deletes the draft.
func (s *DraftStore) save(scope Scope, draft *models.PendingOrder, set *LineSet) (*models.PendingOrder, error) {
	if set.Empty() {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			return s.drop(tx, scope, draft)
		})
		if err != nil {
			return nil, err
		}
		return nil, nil
	}

	lines := set.Lines()
	catalog, err := ResolveCatalog(s.DB, scope, lines)
	if err != nil {
		return nil, err
	}
	totals := ComputeTotals(lines, catalog, draft.SGSTRate, draft.CGSTRate)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ReplaceLines(tx, draft.ID, lines); err != nil {
			return err
		}
		res := tx.Model(&models.PendingOrder{}).
			Where("id = ? AND version = ?", draft.ID, draft.Version).
			Updates(map[string]interface{}{
				"subtotal":    totals.Subtotal,
				"sgst_rate":   totals.SGSTRate,
				"cgst_rate":   totals.CGSTRate,
				"sgst_amount": totals.SGSTAmount,
				"cgst_amount": totals.CGSTAmount,
				"total":       totals.Total,
				"version":     draft.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleDraft
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByTable(scope, draft.TableID)
}

// ReplaceLines swaps the draft's child rows for the given set:
// delete all, then bulk-insert. Callers run it inside a transaction
// so a failure can never leave the draft lineless.
func (s *DraftStore) ReplaceLines(tx *gorm.DB, draftID uint, lines []Line) error {
	if err := tx.Where("pending_order_id = ?", draftID).Delete(&models.PendingOrderItem{}).Error; err != nil {
		return err
	}
	rows := make([]models.PendingOrderItem, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, models.PendingOrderItem{
			PendingOrderID: draftID,
			MenuItemID:     l.MenuItemID,
			VariantID:      l.VariantID,
			Quantity:       l.Quantity,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// drop removes the draft and its lines, guarded by the version check,
// and releases the table.
func (s *DraftStore) drop(tx *gorm.DB, scope Scope, draft *models.PendingOrder) error {
	if err := tx.Where("pending_order_id = ?", draft.ID).Delete(&models.PendingOrderItem{}).Error; err != nil {
		return err
	}
	res := tx.Where("id = ? AND version = ?", draft.ID, draft.Version).Delete(&models.PendingOrder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleDraft
	}
	return tx.Model(&models.DiningTable{}).
		Where("id = ? AND owner_id = ?", draft.TableID, scope.OwnerID).
		Update("status", models.TableAvailable).Error
}

// LinesOf converts a draft's persisted items into engine lines.
func LinesOf(draft *models.PendingOrder) []Line {
	return draftLines(draft)
}

func draftLines(draft *models.PendingOrder) []Line {
	lines := make([]Line, 0, len(draft.Items))
	for _, it := range draft.Items {
		lines = append(lines, Line{MenuItemID: it.MenuItemID, VariantID: it.VariantID, Quantity: it.Quantity})
	}
	return lines
}
