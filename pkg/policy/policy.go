package policy

import (
	"context"
	"fmt"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/lead"
	"github.com/jordanlanch/salespipe/ent/user"
)

// Evaluator decides what a given actor may see and change. Admin and
// manager roles are unrestricted; sales executives are limited to their
// assigned leads (mutation/view) and their created leads (deletion).
// All checks are pure decisions; the evaluator never raises on denial.
type Evaluator struct {
	db *ent.Client
}

// NewEvaluator creates a new policy evaluator.
func NewEvaluator(db *ent.Client) *Evaluator {
	return &Evaluator{db: db}
}

// Scope describes the set of leads an actor may see. When Unrestricted
// is true LeadIDs is unused.
type Scope struct {
	Unrestricted bool
	LeadIDs      []int
}

// Allows reports whether the given lead falls inside the scope.
func (s Scope) Allows(leadID int) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.LeadIDs {
		if id == leadID {
			return true
		}
	}
	return false
}

// CanView reports whether the actor may read the lead.
func (e *Evaluator) CanView(actor *ent.User, l *ent.Lead) bool {
	if isElevated(actor) {
		return true
	}
	return l.AssignedToID != nil && *l.AssignedToID == actor.ID
}

// CanMutate reports whether the actor may modify the lead.
func (e *Evaluator) CanMutate(actor *ent.User, l *ent.Lead) bool {
	if isElevated(actor) {
		return true
	}
	return l.AssignedToID != nil && *l.AssignedToID == actor.ID
}

// CanDelete reports whether the actor may delete the lead. Sales
// executives may only delete leads they created themselves.
func (e *Evaluator) CanDelete(actor *ent.User, l *ent.Lead) bool {
	if isElevated(actor) {
		return true
	}
	return l.CreatedByID == actor.ID
}

// CanTouchActivity reports whether the actor may update or delete the
// activity: its author always can, admins always can, nobody else.
func (e *Evaluator) CanTouchActivity(actor *ent.User, a *ent.Activity) bool {
	if actor.Role == user.RoleAdmin {
		return true
	}
	return a.UserID == actor.ID
}

// VisibilityScope computes the lead IDs the actor may see. For admin
// and manager actors the scope is unrestricted. For sales executives it
// is the exact set of leads currently assigned to them, resolved fresh
// against the store on every call so reassignments take effect
// immediately.
func (e *Evaluator) VisibilityScope(ctx context.Context, actor *ent.User) (Scope, error) {
	if isElevated(actor) {
		return Scope{Unrestricted: true}, nil
	}

	ids, err := e.db.Lead.
		Query().
		Where(lead.AssignedToID(actor.ID)).
		IDs(ctx)
	if err != nil {
		return Scope{}, fmt.Errorf("failed to resolve visibility scope: %w", err)
	}

	return Scope{LeadIDs: ids}, nil
}

func isElevated(actor *ent.User) bool {
	return actor.Role == user.RoleAdmin || actor.Role == user.RoleManager
}
