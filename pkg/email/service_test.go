package email

import (
	"testing"
	"time"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/stretchr/testify/assert"
)

func TestConsoleModeSendsNothing(t *testing.T) {
	svc := NewService("noreply@salespipe.io", "SalesPipe", "http://localhost:3000", "")

	l := &ent.Lead{
		ID:        1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Status:    "new",
	}
	scheduled := time.Now().Add(2 * time.Hour)
	a := &ent.Activity{
		ID:          1,
		Type:        "meeting",
		Title:       "Demo",
		ScheduledAt: &scheduled,
	}

	assert.NoError(t, svc.SendLeadAssignmentEmail("rep@example.com", "Rep", l))
	assert.NoError(t, svc.SendActivityReminderEmail("rep@example.com", "Rep", a, l))
	assert.NoError(t, svc.SendWelcomeEmail("rep@example.com", "Rep"))
}
