package billing

import (
	"errors"

	"restaurant-pos-api/models"
)

// TableTransition defines a valid table state change and what drives it
type TableTransition struct {
	From   models.TableStatus
	To     models.TableStatus
	Reason string
}

// tableTransitions is the authoritative table lifecycle:
// AVAILABLE → OCCUPIED when the first draft line lands, back to
// AVAILABLE when the draft empties, OCCUPIED → BILLING while a
// checkout is in flight, and BILLING → AVAILABLE (or back to OCCUPIED
// on failure) when it settles.
var tableTransitions = []TableTransition{
	{From: models.TableAvailable, To: models.TableOccupied, Reason: "first line added to draft"},
	{From: models.TableOccupied, To: models.TableAvailable, Reason: "draft emptied or deleted"},
	{From: models.TableOccupied, To: models.TableBilling, Reason: "checkout started"},
	{From: models.TableBilling, To: models.TableAvailable, Reason: "order finalized"},
	{From: models.TableBilling, To: models.TableOccupied, Reason: "checkout failed, draft kept"},
}

type tableTransitionKey struct {
	From models.TableStatus
	To   models.TableStatus
}

var tableTransitionMap = func() map[tableTransitionKey]bool {
	m := make(map[tableTransitionKey]bool)
	for _, t := range tableTransitions {
		m[tableTransitionKey{t.From, t.To}] = true
	}
	return m
}()

// CanTableTransition checks whether a table may move between two states
func CanTableTransition(from, to models.TableStatus) error {
	if tableTransitionMap[tableTransitionKey{From: from, To: to}] {
		return nil
	}
	return errors.New("invalid table transition: " + string(from) + " → " + string(to))
}

// NextTableStates returns all valid next states from a given state
func NextTableStates(from models.TableStatus) []models.TableStatus {
	var nexts []models.TableStatus
	seen := map[models.TableStatus]bool{}
	for _, t := range tableTransitions {
		if t.From == from && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// TableLifecycle returns the full transition table for documentation
func TableLifecycle() []TableTransition {
	return tableTransitions
}
