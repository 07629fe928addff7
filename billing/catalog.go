package billing

import (
	"restaurant-pos-api/models"

	"gorm.io/gorm"
)

// UnresolvedName is displayed for lines whose menu item or variant
// was deleted out from under the draft.
const UnresolvedName = "Unavailable item"

// CatalogEntry is the resolved display/pricing data for one
// (menu item, variant) pair.
type CatalogEntry struct {
	Name        string  `json:"name"`
	VariantName string  `json:"variant_name"`
	Category    string  `json:"category"`
	UnitPrice   float64 `json:"unit_price"`
	Resolved    bool    `json:"resolved"`
}

// Catalog maps line keys to their resolved entries.
type Catalog map[LineKey]CatalogEntry

func (c Catalog) UnitPrice(key LineKey) float64 {
	return c[key].UnitPrice
}

// AllResolved reports whether every line in the set references a live
// menu item and variant. Finalization requires this; rendering does
// not.
func (c Catalog) AllResolved(lines []Line) bool {
	for _, l := range lines {
		if !c[l.Key()].Resolved {
			return false
		}
	}
	return true
}

// RenderedLine is a draft line joined with its catalog entry, ready
// for display. Money stays unrounded; clients round at print time.
type RenderedLine struct {
	MenuItemID uint    `json:"menu_item_id"`
	VariantID  uint    `json:"variant_id"`
	Quantity   int     `json:"quantity"`
	LineTotal  float64 `json:"line_total"`
	CatalogEntry
}

// Render joins lines with their catalog entries in line order.
func (c Catalog) Render(lines []Line) []RenderedLine {
	out := make([]RenderedLine, 0, len(lines))
	for _, l := range lines {
		entry := c[l.Key()]
		out = append(out, RenderedLine{
			MenuItemID:   l.MenuItemID,
			VariantID:    l.VariantID,
			Quantity:     l.Quantity,
			LineTotal:    entry.UnitPrice * float64(l.Quantity),
			CatalogEntry: entry,
		})
	}
	return out
}

// ResolveCatalog looks up display name, category and unit price for
// every line in one batch. A dangling reference never fails the
// batch: the entry comes back unresolved with a placeholder name and
// zero price so the rest of the order still renders and computes.
func ResolveCatalog(db *gorm.DB, scope Scope, lines []Line) (Catalog, error) {
	catalog := make(Catalog, len(lines))
	if len(lines) == 0 {
		return catalog, nil
	}

	itemIDs := make([]uint, 0, len(lines))
	variantIDs := make([]uint, 0, len(lines))
	for _, l := range lines {
		itemIDs = append(itemIDs, l.MenuItemID)
		variantIDs = append(variantIDs, l.VariantID)
	}

	var rows []struct {
		MenuItemID   uint
		VariantID    uint
		Name         string
		Category     string
		VariantName  string
		SellingPrice float64
	}
	err := db.Model(&models.MenuItemVariant{}).
		Select(`menu_item_variants.menu_item_id,
			menu_item_variants.id AS variant_id,
			menu_items.name,
			menu_items.category,
			menu_item_variants.name AS variant_name,
			menu_item_variants.selling_price`).
		Joins("JOIN menu_items ON menu_items.id = menu_item_variants.menu_item_id").
		Where("menu_items.owner_id = ? AND menu_items.branch_id = ?", scope.OwnerID, scope.BranchID).
		Where("menu_item_variants.menu_item_id IN ? AND menu_item_variants.id IN ?", itemIDs, variantIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		catalog[LineKey{MenuItemID: r.MenuItemID, VariantID: r.VariantID}] = CatalogEntry{
			Name:        r.Name,
			VariantName: r.VariantName,
			Category:    r.Category,
			UnitPrice:   r.SellingPrice,
			Resolved:    true,
		}
	}
	for _, l := range lines {
		if _, ok := catalog[l.Key()]; !ok {
			catalog[l.Key()] = CatalogEntry{Name: UnresolvedName}
		}
	}
	return catalog, nil
}
