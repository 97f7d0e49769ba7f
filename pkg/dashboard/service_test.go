package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/enttest"
	"github.com/jordanlanch/salespipe/ent/lead"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/cache"
	"github.com/jordanlanch/salespipe/pkg/domain"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/jordanlanch/salespipe/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func newTestService(t *testing.T) (*Service, *ent.Client) {
	t.Helper()
	db := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { db.Close() })

	svc := NewService(db, policy.NewEvaluator(db), nil, logger.Default(), time.Minute)
	return svc, db
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

func createLead(t *testing.T, db *ent.Client, creator *ent.User, assignee *ent.User, status string, value float64) *ent.Lead {
	t.Helper()
	l, err := db.Lead.Create().
		SetFirstName("Lead").
		SetLastName("Person").
		SetEmail(fmt.Sprintf("lead-%d@example.com", time.Now().UnixNano())).
		SetStatus(lead.Status(status)).
		SetEstimatedValue(value).
		SetSource("website").
		SetCreatedByID(creator.ID).
		SetAssignedToID(assignee.ID).
		Save(context.Background())
	require.NoError(t, err)
	return l
}

func TestStats(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")

	createLead(t, db, admin, admin, "new", 100)
	createLead(t, db, admin, admin, "qualified", 200)
	createLead(t, db, admin, admin, "won", 300)
	createLead(t, db, admin, admin, "lost", 400)

	stats, err := svc.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalLeads)
	assert.Equal(t, 1, stats.NewLeads)
	assert.Equal(t, 1, stats.QualifiedLeads)
	assert.Equal(t, 1, stats.WonLeads)
	assert.Equal(t, 1, stats.LostLeads)
	// Lost leads are excluded from pipeline value.
	assert.Equal(t, 600.0, stats.TotalValue)
	assert.Equal(t, 300.0, stats.WonValue)
	assert.Equal(t, 25.0, stats.ConversionRate)
}

func TestStats_EmptyDatabase(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin@example.com", "admin")

	stats, err := svc.Stats(context.Background(), admin)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalLeads)
	assert.Zero(t, stats.TotalValue)
	assert.Zero(t, stats.ConversionRate)
}

func TestStats_ScopedForSalesExecutive(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	createLead(t, db, manager, manager, "new", 1000)
	createLead(t, db, manager, rep, "won", 500)

	stats, err := svc.Stats(ctx, rep)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalLeads)
	assert.Equal(t, 500.0, stats.WonValue)
	assert.Equal(t, 100.0, stats.ConversionRate)
}

func TestStats_CachedResult(t *testing.T) {
	db := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	cacheClient, err := cache.NewClient(fmt.Sprintf("redis://%s", mr.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { cacheClient.Close() })

	svc := NewService(db, policy.NewEvaluator(db), cacheClient, logger.Default(), time.Minute)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")
	createLead(t, db, admin, admin, "new", 100)

	first, err := svc.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalLeads)

	// Data written after the cache fill is invisible until the TTL or an
	// explicit invalidation.
	createLead(t, db, admin, admin, "new", 100)

	second, err := svc.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalLeads)

	require.NoError(t, cacheClient.DeletePattern(ctx, "dashboard:*"))

	third, err := svc.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, third.TotalLeads)
}

func TestLeadsByStatusAndSource(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")

	createLead(t, db, admin, admin, "new", 0)
	createLead(t, db, admin, admin, "new", 0)
	createLead(t, db, admin, admin, "won", 0)

	byStatus, err := svc.LeadsByStatus(ctx, admin)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, r := range byStatus {
		counts[r.Status] = r.Count
	}
	assert.Equal(t, 2, counts["new"])
	assert.Equal(t, 1, counts["won"])

	bySource, err := svc.LeadsBySource(ctx, admin)
	require.NoError(t, err)
	require.Len(t, bySource, 1)
	assert.Equal(t, "website", bySource[0].Source)
	assert.Equal(t, 3, bySource[0].Count)
}

func TestSalesPipeline_FixedOrderExcludesClosed(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")

	createLead(t, db, admin, admin, "negotiation", 500)
	createLead(t, db, admin, admin, "contacted", 200)
	createLead(t, db, admin, admin, "won", 900)
	createLead(t, db, admin, admin, "lost", 100)

	pipeline, err := svc.SalesPipeline(ctx, admin)
	require.NoError(t, err)
	require.Len(t, pipeline, 5)

	assert.Equal(t, []string{"new", "contacted", "qualified", "proposal", "negotiation"}, []string{
		pipeline[0].Status, pipeline[1].Status, pipeline[2].Status, pipeline[3].Status, pipeline[4].Status,
	})
	assert.Equal(t, 1, pipeline[1].Count)
	assert.Equal(t, 200.0, pipeline[1].TotalValue)
	assert.Zero(t, pipeline[2].Count)
}

func TestTeamPerformance_ForbiddenForSalesExecutive(t *testing.T) {
	svc, db := newTestService(t)
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	_, err := svc.TeamPerformance(context.Background(), rep)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))
}

func TestTeamPerformance(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")

	createLead(t, db, manager, rep, "won", 500)
	createLead(t, db, manager, rep, "new", 200)
	createLead(t, db, manager, manager, "contacted", 300)

	perf, err := svc.TeamPerformance(ctx, manager)
	require.NoError(t, err)
	require.Len(t, perf, 2)

	byEmail := map[string]int{}
	for i, p := range perf {
		byEmail[p.User.Email] = i
	}
	repPerf := perf[byEmail["rep@example.com"]]
	assert.Equal(t, 2, repPerf.TotalLeads)
	assert.Equal(t, 700.0, repPerf.TotalValue)
	assert.Equal(t, 1, repPerf.WonLeads)
	assert.Equal(t, 500.0, repPerf.WonValue)
}
