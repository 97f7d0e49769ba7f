package leads

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/activity"
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

type capturedEvent struct {
	Event   string
	Payload interface{}
}

type captureEmitter struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (c *captureEmitter) Emit(event string, payload interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, capturedEvent{Event: event, Payload: payload})
}

func (c *captureEmitter) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.events))
	for i, e := range c.events {
		out[i] = e.Event
	}
	return out
}

func newTestService(t *testing.T) (*Service, *ent.Client, *captureEmitter) {
	t.Helper()
	db := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { db.Close() })

	emitter := &captureEmitter{}
	svc := NewService(db, policy.NewEvaluator(db), emitter, nil, nil, logger.Default(), "US")
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

func TestCreate_DefaultsToActorAsAssignee(t *testing.T) {
	svc, db, emitter := newTestService(t)
	ctx := context.Background()
	actor := createUser(t, db, "rep@example.com", "sales_executive")

	resp, err := svc.Create(ctx, actor, models.CreateLeadRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "new", resp.Status)
	require.NotNil(t, resp.AssignedTo)
	assert.Equal(t, actor.ID, resp.AssignedTo.ID)
	require.NotNil(t, resp.CreatedBy)
	assert.Equal(t, actor.ID, resp.CreatedBy.ID)

	acts, err := db.Activity.Query().Where(activity.LeadID(resp.ID)).All(ctx)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "Lead Created", acts[0].Title)
	assert.Equal(t, activity.TypeStatusChange, acts[0].Type)
	assert.Equal(t, "new", acts[0].Metadata["status"])

	assert.Equal(t, []string{domain.EventLeadCreated}, emitter.names())
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc, db, _ := newTestService(t)
	actor := createUser(t, db, "rep@example.com", "sales_executive")

	_, err := svc.Create(context.Background(), actor, models.CreateLeadRequest{
		FirstName: "Ada",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.NotEmpty(t, domain.GetErrorFields(err))
}

func TestCreate_InactiveAssigneeRejected(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	actor := createUser(t, db, "manager@example.com", "manager")
	inactive := createUser(t, db, "gone@example.com", "sales_executive")
	_, err := db.User.UpdateOneID(inactive.ID).SetIsActive(false).Save(ctx)
	require.NoError(t, err)

	_, err = svc.Create(ctx, actor, models.CreateLeadRequest{
		FirstName:    "Bob",
		LastName:     "Jones",
		Email:        "bob@example.com",
		AssignedToID: &inactive.ID,
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreate_UnknownAssignee(t *testing.T) {
	svc, db, _ := newTestService(t)
	actor := createUser(t, db, "manager@example.com", "manager")

	missing := 9999
	_, err := svc.Create(context.Background(), actor, models.CreateLeadRequest{
		FirstName:    "Bob",
		LastName:     "Jones",
		Email:        "bob@example.com",
		AssignedToID: &missing,
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestList_SalesExecutiveSeesOnlyAssigned(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	_, err := svc.Create(ctx, manager, models.CreateLeadRequest{
		FirstName: "Mine", LastName: "Lead", Email: "mine@example.com",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, manager, models.CreateLeadRequest{
		FirstName: "Theirs", LastName: "Lead", Email: "theirs@example.com",
		AssignedToID: &rep.ID,
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, manager, models.ListLeadsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Pagination.Total)

	own, err := svc.List(ctx, rep, models.ListLeadsRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, own.Pagination.Total)
	assert.Equal(t, "theirs@example.com", own.Data[0].Email)

	// The assigned_to_id filter cannot widen a sales executive's view.
	widened, err := svc.List(ctx, rep, models.ListLeadsRequest{AssignedToID: manager.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, widened.Pagination.Total)
}

func TestList_SearchAndPagination(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")

	for i := 0; i < 15; i++ {
		_, err := svc.Create(ctx, admin, models.CreateLeadRequest{
			FirstName: fmt.Sprintf("Lead%d", i),
			LastName:  "Person",
			Email:     fmt.Sprintf("lead%d@example.com", i),
			Company:   "Acme Corp",
		})
		require.NoError(t, err)
	}

	page2, err := svc.List(ctx, admin, models.ListLeadsRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page2.Data, 5)
	assert.Equal(t, 15, page2.Pagination.Total)
	assert.Equal(t, 2, page2.Pagination.TotalPages)

	found, err := svc.List(ctx, admin, models.ListLeadsRequest{Search: "acme"})
	require.NoError(t, err)
	assert.Equal(t, 15, found.Pagination.Total)

	one, err := svc.List(ctx, admin, models.ListLeadsRequest{Search: "lead7@"})
	require.NoError(t, err)
	assert.Equal(t, 1, one.Pagination.Total)
}

func TestGetByID_DeniedForUnassignedExecutive(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	created, err := svc.Create(ctx, manager, models.CreateLeadRequest{
		FirstName: "Hidden", LastName: "Lead", Email: "hidden@example.com",
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, rep, created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	got, err := svc.GetByID(ctx, manager, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, got.Activities)
}

func TestUpdate_StatusAndReassignmentActivities(t *testing.T) {
	svc, db, emitter := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	created, err := svc.Create(ctx, manager, models.CreateLeadRequest{
		FirstName: "Eve", LastName: "Owner", Email: "eve@example.com",
	})
	require.NoError(t, err)

	status := "contacted"
	updated, err := svc.Update(ctx, manager, created.ID, models.UpdateLeadRequest{
		Status:       &status,
		AssignedToID: &rep.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "contacted", updated.Status)
	assert.Equal(t, rep.ID, updated.AssignedTo.ID)

	acts, err := db.Activity.Query().
		Where(activity.LeadID(created.ID)).
		Order(ent.Asc(activity.FieldID)).
		All(ctx)
	require.NoError(t, err)
	require.Len(t, acts, 3)
	assert.Equal(t, "Lead Created", acts[0].Title)
	assert.Equal(t, "Status Updated", acts[1].Title)
	assert.Equal(t, "new", acts[1].Metadata["old_status"])
	assert.Equal(t, "contacted", acts[1].Metadata["new_status"])
	assert.Equal(t, "Lead Reassigned", acts[2].Title)

	assert.Equal(t, []string{domain.EventLeadCreated, domain.EventLeadUpdated}, emitter.names())
}

func TestUpdate_DeniedForUnassignedExecutive(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	created, err := svc.Create(ctx, manager, models.CreateLeadRequest{
		FirstName: "Eve", LastName: "Owner", Email: "eve@example.com",
	})
	require.NoError(t, err)

	notes := "sneaky"
	_, err = svc.Update(ctx, rep, created.ID, models.UpdateLeadRequest{Notes: &notes})
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))
}

func TestDelete_RequiresCreatorOrElevatedRole(t *testing.T) {
	svc, db, emitter := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	created, err := svc.Create(ctx, manager, models.CreateLeadRequest{
		FirstName: "Del", LastName: "Lead", Email: "del@example.com",
		AssignedToID: &rep.ID,
	})
	require.NoError(t, err)

	// Assigned but neither creator nor elevated.
	err = svc.Delete(ctx, rep, created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	require.NoError(t, svc.Delete(ctx, manager, created.ID))

	count, err := db.Activity.Query().Where(activity.LeadID(created.ID)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Contains(t, emitter.names(), domain.EventLeadDeleted)
}

func TestAssign_AvailableToAnyAuthenticatedUser(t *testing.T) {
	svc, db, emitter := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")
	other := createUser(t, db, "other@example.com", "sales_executive")

	created, err := svc.Create(ctx, manager, models.CreateLeadRequest{
		FirstName: "Pass", LastName: "Around", Email: "pass@example.com",
	})
	require.NoError(t, err)

	// rep is not assigned to this lead but may still reassign it.
	resp, err := svc.Assign(ctx, rep, created.ID, models.AssignLeadRequest{AssignedToID: other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, resp.AssignedTo.ID)

	acts, err := db.Activity.Query().
		Where(activity.LeadID(created.ID)).
		Order(ent.Desc(activity.FieldID)).
		All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lead Reassigned", acts[0].Title)

	assert.Contains(t, emitter.names(), domain.EventLeadAssigned)
}

func TestSetStatus_Transitions(t *testing.T) {
	svc, db, emitter := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")

	created, err := svc.Create(ctx, admin, models.CreateLeadRequest{
		FirstName: "Stat", LastName: "Lead", Email: "stat@example.com",
	})
	require.NoError(t, err)

	resp, err := svc.SetStatus(ctx, admin, created.ID, models.UpdateLeadStatusRequest{Status: "qualified"})
	require.NoError(t, err)
	assert.Equal(t, "qualified", resp.Status)
	assert.Contains(t, emitter.names(), domain.EventLeadStatusUpdated)
}

func TestSetStatus_SameStatusIsNoOp(t *testing.T) {
	svc, db, emitter := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")

	created, err := svc.Create(ctx, admin, models.CreateLeadRequest{
		FirstName: "Same", LastName: "Status", Email: "same@example.com",
	})
	require.NoError(t, err)

	before := len(emitter.names())

	resp, err := svc.SetStatus(ctx, admin, created.ID, models.UpdateLeadStatusRequest{Status: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Status)

	count, err := db.Activity.Query().Where(activity.LeadID(created.ID)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, emitter.names(), before)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	svc, db, _ := newTestService(t)
	admin := createUser(t, db, "admin@example.com", "admin")

	_, err := svc.SetStatus(context.Background(), admin, 1, models.UpdateLeadStatusRequest{Status: "bogus"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "Status must be one of")
}
