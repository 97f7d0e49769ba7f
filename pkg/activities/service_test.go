package activities

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/enttest"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/domain"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/jordanlanch/salespipe/pkg/models"
	"github.com/jordanlanch/salespipe/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

type captureEmitter struct {
	mu     sync.Mutex
	events []string
}

func (c *captureEmitter) Emit(event string, payload interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureEmitter) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.events...)
}

func newTestService(t *testing.T) (*Service, *ent.Client, *captureEmitter) {
	t.Helper()
	db := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { db.Close() })

	emitter := &captureEmitter{}
	svc := NewService(db, policy.NewEvaluator(db), emitter, logger.Default())
	return svc, db, emitter
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

func createLead(t *testing.T, db *ent.Client, creator *ent.User, assignee *ent.User, email string) *ent.Lead {
	t.Helper()
	l, err := db.Lead.Create().
		SetFirstName("Lead").
		SetLastName("Person").
		SetEmail(email).
		SetCreatedByID(creator.ID).
		SetAssignedToID(assignee.ID).
		Save(context.Background())
	require.NoError(t, err)
	return l
}

func TestCreate(t *testing.T) {
	svc, db, emitter := newTestService(t)
	ctx := context.Background()
	rep := createUser(t, db, "rep@example.com", "sales_executive")
	l := createLead(t, db, rep, rep, "lead@example.com")

	resp, err := svc.Create(ctx, rep, models.CreateActivityRequest{
		LeadID: l.ID,
		Type:   "call",
		Title:  "Intro call",
	})
	require.NoError(t, err)
	assert.Equal(t, "call", resp.Type)
	assert.Equal(t, rep.ID, resp.UserID)
	require.NotNil(t, resp.Lead)
	assert.Equal(t, l.ID, resp.Lead.ID)
	assert.Equal(t, []string{domain.EventActivityCreated}, emitter.names())
}

func TestCreate_DeniedOnInvisibleLead(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")
	l := createLead(t, db, manager, manager, "lead@example.com")

	_, err := svc.Create(ctx, rep, models.CreateActivityRequest{
		LeadID: l.ID,
		Type:   "note",
		Title:  "Should not exist",
	})
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))
}

func TestCreate_UnknownLead(t *testing.T) {
	svc, db, _ := newTestService(t)
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	_, err := svc.Create(context.Background(), rep, models.CreateActivityRequest{
		LeadID: 9999,
		Type:   "note",
		Title:  "Ghost",
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestList_ScopedToAssignedLeads(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	mine := createLead(t, db, manager, rep, "mine@example.com")
	theirs := createLead(t, db, manager, manager, "theirs@example.com")

	for _, l := range []*ent.Lead{mine, theirs} {
		_, err := svc.Create(ctx, manager, models.CreateActivityRequest{
			LeadID: l.ID,
			Type:   "note",
			Title:  "Note",
		})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, manager, models.ListActivitiesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Pagination.Total)

	scoped, err := svc.List(ctx, rep, models.ListActivitiesRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, scoped.Pagination.Total)
	assert.Equal(t, mine.ID, scoped.Data[0].LeadID)
}

func TestListByLead(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	rep := createUser(t, db, "rep@example.com", "sales_executive")
	l := createLead(t, db, rep, rep, "lead@example.com")

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, rep, models.CreateActivityRequest{
			LeadID: l.ID,
			Type:   "note",
			Title:  fmt.Sprintf("Note %d", i),
		})
		require.NoError(t, err)
	}

	history, err := svc.ListByLead(ctx, rep, l.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestUpdate_AuthorOrAdminOnly(t *testing.T) {
	svc, db, emitter := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")
	l := createLead(t, db, manager, rep, "lead@example.com")

	created, err := svc.Create(ctx, rep, models.CreateActivityRequest{
		LeadID: l.ID,
		Type:   "call",
		Title:  "Original",
	})
	require.NoError(t, err)

	title := "Renamed"

	// A manager who is not the author may not edit it.
	_, err = svc.Update(ctx, manager, created.ID, models.UpdateActivityRequest{Title: &title})
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	updated, err := svc.Update(ctx, rep, created.ID, models.UpdateActivityRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	title2 := "Admin edit"
	_, err = svc.Update(ctx, admin, created.ID, models.UpdateActivityRequest{Title: &title2})
	require.NoError(t, err)

	assert.Contains(t, emitter.names(), domain.EventActivityUpdated)
}

func TestDelete_AuthorOrAdminOnly(t *testing.T) {
	svc, db, emitter := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")
	l := createLead(t, db, manager, rep, "lead@example.com")

	created, err := svc.Create(ctx, rep, models.CreateActivityRequest{
		LeadID: l.ID,
		Type:   "note",
		Title:  "Doomed",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, manager, created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	require.NoError(t, svc.Delete(ctx, rep, created.ID))

	_, err = svc.GetByID(ctx, rep, created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	assert.Contains(t, emitter.names(), domain.EventActivityDeleted)
}
