package billing

import "errors"

// Sentinel errors surfaced to handlers. Multi-tenant scoping and
// draft validation fail before any write is attempted.
var (
	ErrNoScope        = errors.New("tenant/branch context not resolved")
	ErrEmptyDraft     = errors.New("cannot finalize an empty order")
	ErrStaleDraft     = errors.New("draft was modified by another device, reload and retry")
	ErrQuantity       = errors.New("quantity must be a positive integer")
	ErrUnresolvedLine = errors.New("order references a menu item or variant that no longer exists")
	ErrDraftNotFound  = errors.New("no draft order for this table")
)

// Scope is the tenant/branch identifier pair attached to every read
// and write. A zero value in either field means the caller's context
// was never resolved and the operation must be rejected.
type Scope struct {
	OwnerID  uint
	BranchID uint
}

func (s Scope) Valid() bool {
	return s.OwnerID != 0 && s.BranchID != 0
}
