package jobs

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/enttest"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

type fakeMailer struct {
	mu        sync.Mutex
	reminders []string
}

func (f *fakeMailer) SendLeadAssignmentEmail(toEmail, toName string, l *ent.Lead) error {
	return nil
}

func (f *fakeMailer) SendActivityReminderEmail(toEmail, toName string, a *ent.Activity, l *ent.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reminders = append(f.reminders, toEmail)
	return nil
}

func (f *fakeMailer) SendWelcomeEmail(toEmail, toName string) error {
	return nil
}

func TestSendActivityReminders(t *testing.T) {
	db := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	owner, err := db.User.Create().
		SetEmail("owner@example.com").
		SetPasswordHash("x").
		SetFirstName("Owner").
		SetLastName("User").
		SetRole(user.RoleSalesExecutive).
		Save(ctx)
	require.NoError(t, err)

	l, err := db.Lead.Create().
		SetFirstName("Lead").
		SetLastName("Person").
		SetEmail("lead@example.com").
		SetCreatedByID(owner.ID).
		SetAssignedToID(owner.ID).
		Save(ctx)
	require.NoError(t, err)

	// Due tomorrow morning: reminded.
	_, err = db.Activity.Create().
		SetType("meeting").
		SetTitle("Demo").
		SetLeadID(l.ID).
		SetUserID(owner.ID).
		SetScheduledAt(time.Now().Add(3 * time.Hour)).
		Save(ctx)
	require.NoError(t, err)

	// Due next week: not reminded.
	_, err = db.Activity.Create().
		SetType("call").
		SetTitle("Follow-up").
		SetLeadID(l.ID).
		SetUserID(owner.ID).
		SetScheduledAt(time.Now().Add(7 * 24 * time.Hour)).
		Save(ctx)
	require.NoError(t, err)

	// No schedule at all: not reminded.
	_, err = db.Activity.Create().
		SetType("note").
		SetTitle("Just a note").
		SetLeadID(l.ID).
		SetUserID(owner.ID).
		Save(ctx)
	require.NoError(t, err)

	mailer := &fakeMailer{}
	cm := NewCronManager(db, mailer, nil, logger.Default())

	require.NoError(t, cm.SendActivityReminders(ctx))
	assert.Equal(t, []string{"owner@example.com"}, mailer.reminders)
}

func TestSendActivityReminders_SkipsInactiveOwner(t *testing.T) {
	db := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	owner, err := db.User.Create().
		SetEmail("gone@example.com").
		SetPasswordHash("x").
		SetFirstName("Gone").
		SetLastName("User").
		SetRole(user.RoleSalesExecutive).
		SetIsActive(false).
		Save(ctx)
	require.NoError(t, err)

	l, err := db.Lead.Create().
		SetFirstName("Lead").
		SetLastName("Person").
		SetEmail("lead@example.com").
		SetCreatedByID(owner.ID).
		SetAssignedToID(owner.ID).
		Save(ctx)
	require.NoError(t, err)

	_, err = db.Activity.Create().
		SetType("meeting").
		SetTitle("Demo").
		SetLeadID(l.ID).
		SetUserID(owner.ID).
		SetScheduledAt(time.Now().Add(time.Hour)).
		Save(ctx)
	require.NoError(t, err)

	mailer := &fakeMailer{}
	cm := NewCronManager(db, mailer, nil, logger.Default())

	require.NoError(t, cm.SendActivityReminders(ctx))
	assert.Empty(t, mailer.reminders)
}
