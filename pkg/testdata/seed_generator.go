package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/activity"
	"github.com/jordanlanch/salespipe/ent/lead"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/auth"
)

// SeedConfig configures demo data generation
type SeedConfig struct {
	Managers        int
	SalesReps       int
	LeadsPerRep     int
	ActivityChance  float64 // 0.0-1.0 probability of extra activities per lead
	DefaultPassword string
}

// DefaultSeedConfig returns a config suitable for local development
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Managers:        2,
		SalesReps:       6,
		LeadsPerRep:     25,
		ActivityChance:  0.7,
		DefaultPassword: "password123",
	}
}

// Lead sources weighted toward the common acquisition channels
var leadSources = []string{
	"website", "website", "website",
	"referral", "referral",
	"cold_call", "cold_call",
	"linkedin", "trade_show", "webinar", "email_campaign",
}

// Status distribution: most leads sit early in the pipeline
var statusPool = []lead.Status{
	lead.StatusNew, lead.StatusNew, lead.StatusNew,
	lead.StatusContacted, lead.StatusContacted,
	lead.StatusQualified, lead.StatusQualified,
	lead.StatusProposal,
	lead.StatusNegotiation,
	lead.StatusWon,
	lead.StatusLost,
}

var activityTypes = []activity.Type{
	activity.TypeNote, activity.TypeNote,
	activity.TypeCall, activity.TypeCall,
	activity.TypeEmail,
	activity.TypeMeeting,
}

var activityTitles = map[activity.Type][]string{
	activity.TypeNote:    {"Internal note", "Research notes", "Competitor mentioned", "Budget discussion notes"},
	activity.TypeCall:    {"Intro call", "Follow-up call", "Pricing call", "Left voicemail"},
	activity.TypeEmail:   {"Sent intro email", "Sent proposal", "Sent case study", "Follow-up email"},
	activity.TypeMeeting: {"Discovery meeting", "Product demo", "Contract review", "Quarterly check-in"},
}

// SeedUsers creates one admin plus the configured managers and sales reps.
// Returns the full user set with the admin first.
func SeedUsers(ctx context.Context, client *ent.Client, cfg SeedConfig) ([]*ent.User, error) {
	hash, err := auth.HashPassword(cfg.DefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := make([]*ent.User, 0, 1+cfg.Managers+cfg.SalesReps)

	admin, err := client.User.Create().
		SetEmail("admin@salespipe.io").
		SetPasswordHash(hash).
		SetFirstName("Ada").
		SetLastName("Admin").
		SetRole(user.RoleAdmin).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	users = append(users, admin)

	for i := 0; i < cfg.Managers; i++ {
		u, err := seedUser(ctx, client, hash, user.RoleManager)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	for i := 0; i < cfg.SalesReps; i++ {
		u, err := seedUser(ctx, client, hash, user.RoleSalesExecutive)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

func seedUser(ctx context.Context, client *ent.Client, hash string, role user.Role) (*ent.User, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	email := fmt.Sprintf("%s.%s%d@salespipe.io",
		strings.ToLower(first), strings.ToLower(last), rand.Intn(1000))

	u, err := client.User.Create().
		SetEmail(email).
		SetPasswordHash(hash).
		SetFirstName(first).
		SetLastName(last).
		SetRole(role).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s user: %w", role, err)
	}
	return u, nil
}

// GenerateLead builds one lead creator with realistic prospect data.
// The creator is picked from the elevated users, the assignee from the reps.
func GenerateLead(client *ent.Client, creator, assignee *ent.User) *ent.LeadCreate {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	company := gofakeit.Company()
	domain := strings.ToLower(strings.ReplaceAll(company, " ", ""))
	domain = strings.ReplaceAll(domain, ",", "")
	domain = strings.ReplaceAll(domain, "'", "")
	if len(domain) > 20 {
		domain = domain[:20]
	}

	status := statusPool[rand.Intn(len(statusPool))]
	created := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())

	create := client.Lead.Create().
		SetFirstName(first).
		SetLastName(last).
		SetEmail(fmt.Sprintf("%s.%s@%s.com", strings.ToLower(first), strings.ToLower(last), domain)).
		SetCompany(company).
		SetTitle(gofakeit.JobTitle()).
		SetStatus(status).
		SetSource(leadSources[rand.Intn(len(leadSources))]).
		SetEstimatedValue(float64(rand.Intn(95)+5) * 1000).
		SetCreatedBy(creator).
		SetCreatedAt(created).
		SetStatusChangedAt(created)

	if rand.Float64() < 0.8 {
		create.SetPhone(gofakeit.Phone())
	}
	if rand.Float64() < 0.3 {
		create.SetNotes(gofakeit.Sentence(12))
	}
	if assignee != nil {
		create.SetAssignedTo(assignee)
	}

	return create
}

// SeedLeads distributes leads across the sales reps and records a creation
// activity for each, mirroring what the API does on lead creation.
func SeedLeads(ctx context.Context, client *ent.Client, users []*ent.User, cfg SeedConfig) ([]*ent.Lead, error) {
	var elevated, reps []*ent.User
	for _, u := range users {
		if u.Role == user.RoleSalesExecutive {
			reps = append(reps, u)
		} else {
			elevated = append(elevated, u)
		}
	}
	if len(elevated) == 0 || len(reps) == 0 {
		return nil, fmt.Errorf("seed requires at least one elevated user and one sales rep")
	}

	var out []*ent.Lead
	for _, rep := range reps {
		for i := 0; i < cfg.LeadsPerRep; i++ {
			creator := elevated[rand.Intn(len(elevated))]
			l, err := GenerateLead(client, creator, rep).Save(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to create seed lead: %w", err)
			}

			_, err = client.Activity.Create().
				SetType(activity.TypeStatusChange).
				SetTitle("Lead Created").
				SetLead(l).
				SetUser(creator).
				SetMetadata(map[string]interface{}{"status": string(l.Status)}).
				SetCreatedAt(l.CreatedAt).
				Save(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to create creation activity: %w", err)
			}

			if rand.Float64() < cfg.ActivityChance {
				if err := seedActivities(ctx, client, l, rep); err != nil {
					return nil, err
				}
			}

			out = append(out, l)
		}
	}
	return out, nil
}

func seedActivities(ctx context.Context, client *ent.Client, l *ent.Lead, owner *ent.User) error {
	n := rand.Intn(3) + 1
	for i := 0; i < n; i++ {
		typ := activityTypes[rand.Intn(len(activityTypes))]
		titles := activityTitles[typ]

		create := client.Activity.Create().
			SetType(typ).
			SetTitle(titles[rand.Intn(len(titles))]).
			SetLead(l).
			SetUser(owner).
			SetCreatedAt(gofakeit.DateRange(l.CreatedAt, time.Now()))

		if rand.Float64() < 0.5 {
			create.SetDescription(gofakeit.Sentence(10))
		}
		if typ == activity.TypeMeeting || typ == activity.TypeCall {
			if rand.Float64() < 0.4 {
				create.SetScheduledAt(gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 0, 14)))
			}
		}

		if _, err := create.Save(ctx); err != nil {
			return fmt.Errorf("failed to create seed activity: %w", err)
		}
	}
	return nil
}

// Seed populates an empty database with a full demo data set.
func Seed(ctx context.Context, client *ent.Client, cfg SeedConfig) error {
	users, err := SeedUsers(ctx, client, cfg)
	if err != nil {
		return err
	}

	if _, err := SeedLeads(ctx, client, users, cfg); err != nil {
		return err
	}
	return nil
}
