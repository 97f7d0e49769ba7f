package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/enttest"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/domain"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/jordanlanch/salespipe/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func newTestService(t *testing.T) (*Service, *ent.Client) {
	t.Helper()
	db := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { db.Close() })
	return NewService(db, logger.Default()), db
}

func createUser(t *testing.T, db *ent.Client, email, role string) *ent.User {
	t.Helper()
	u, err := db.User.Create().
		SetEmail(email).
		SetPasswordHash("x").
		SetFirstName("Test").
		SetLastName("User").
		SetRole(user.Role(role)).
		Save(context.Background())
	require.NoError(t, err)
	return u
}

func TestList_FilterAndSearch(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	createUser(t, db, "admin@example.com", "admin")
	createUser(t, db, "alice@example.com", "sales_executive")
	createUser(t, db, "bob@example.com", "sales_executive")

	all, err := svc.List(ctx, models.ListUsersRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Pagination.Total)

	reps, err := svc.List(ctx, models.ListUsersRequest{Role: "sales_executive"})
	require.NoError(t, err)
	assert.Equal(t, 2, reps.Pagination.Total)

	found, err := svc.List(ctx, models.ListUsersRequest{Search: "alice"})
	require.NoError(t, err)
	require.Equal(t, 1, found.Pagination.Total)
	assert.Equal(t, "alice@example.com", found.Data[0].Email)
}

func TestGetByID_SelfOrElevated(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")
	other := createUser(t, db, "other@example.com", "sales_executive")

	self, err := svc.GetByID(ctx, rep, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, self.ID)

	_, err = svc.GetByID(ctx, rep, other.ID)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	got, err := svc.GetByID(ctx, manager, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.ID)
}

func TestUpdate_SelfRenameAllowed(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	name := "Renamed"
	resp, err := svc.Update(ctx, rep, rep.ID, models.UpdateUserRequest{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.FirstName)
}

func TestUpdate_RoleChangeRequiresAdmin(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	role := "manager"
	_, err := svc.Update(ctx, rep, rep.ID, models.UpdateUserRequest{Role: &role})
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	resp, err := svc.Update(ctx, admin, rep.ID, models.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "manager", resp.Role)
}

func TestDelete_AdminOnlyAndClearsAssignments(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	l, err := db.Lead.Create().
		SetFirstName("Lead").
		SetLastName("Person").
		SetEmail("lead@example.com").
		SetCreatedByID(admin.ID).
		SetAssignedToID(rep.ID).
		Save(ctx)
	require.NoError(t, err)

	err = svc.Delete(ctx, manager, rep.ID)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	require.NoError(t, svc.Delete(ctx, admin, rep.ID))

	reloaded, err := db.Lead.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.AssignedToID)
}

func TestDelete_SelfDeletionRejected(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin@example.com", "admin")

	err := svc.Delete(context.Background(), admin, admin.ID)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}
