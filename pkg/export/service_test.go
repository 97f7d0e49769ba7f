package export

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/enttest"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/jordanlanch/salespipe/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	_ "github.com/mattn/go-sqlite3"
)

func newTestService(t *testing.T) (*Service, *ent.Client) {
	t.Helper()
	db := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { db.Close() })
	return NewService(db, policy.NewEvaluator(db), logger.Default()), db
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

func createLead(t *testing.T, db *ent.Client, creator, assignee *ent.User, email string) *ent.Lead {
	t.Helper()
	l, err := db.Lead.Create().
		SetFirstName("Lead").
		SetLastName("Person").
		SetEmail(email).
		SetCompany("Acme").
		SetEstimatedValue(100).
		SetCreatedByID(creator.ID).
		SetAssignedToID(assignee.ID).
		Save(context.Background())
	require.NoError(t, err)
	return l
}

func TestLeadsExcel(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")
	createLead(t, db, admin, admin, "one@example.com")
	createLead(t, db, admin, admin, "two@example.com")

	raw, err := svc.LeadsExcel(ctx, admin)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leads")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 leads
	assert.Equal(t, "First Name", rows[0][1])
	assert.Equal(t, "one@example.com", rows[1][3])
}

func TestLeadsExcel_ScopedForSalesExecutive(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	manager := createUser(t, db, "manager@example.com", "manager")
	rep := createUser(t, db, "rep@example.com", "sales_executive")
	createLead(t, db, manager, manager, "hidden@example.com")
	createLead(t, db, manager, rep, "visible@example.com")

	raw, err := svc.LeadsExcel(ctx, rep)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leads")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "visible@example.com", rows[1][3])
}

func TestLeadsCSV(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin@example.com", "admin")
	createLead(t, db, admin, admin, "csv@example.com")

	raw, err := svc.LeadsCSV(ctx, admin)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "csv@example.com")
	assert.Contains(t, string(raw), "First Name")
}
