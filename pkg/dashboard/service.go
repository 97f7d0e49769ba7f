package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/activity"
	"github.com/jordanlanch/salespipe/ent/lead"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/domain"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/jordanlanch/salespipe/pkg/models"
	"github.com/jordanlanch/salespipe/pkg/policy"
)

// pipelineOrder fixes the stage ordering for the open pipeline view.
// Won and lost leads are excluded from the pipeline entirely.
var pipelineOrder = []string{"new", "contacted", "qualified", "proposal", "negotiation"}

// Service computes dashboard aggregates over the actor's visibility
// scope. Headline stats are cached in Redis for a short window and
// invalidated by every lead mutation.
type Service struct {
	db       *ent.Client
	policy   *policy.Evaluator
	cache    domain.CacheRepository
	log      logger.Logger
	cacheTTL time.Duration
}

// NewService creates a new dashboard service. cache may be nil.
func NewService(db *ent.Client, pol *policy.Evaluator, cache domain.CacheRepository, log logger.Logger, cacheTTL time.Duration) *Service {
	return &Service{
		db:       db,
		policy:   pol,
		cache:    cache,
		log:      log,
		cacheTTL: cacheTTL,
	}
}

// Stats returns the headline numbers: lead counts, pipeline value, won
// value, today's activity count and the conversion rate.
func (s *Service) Stats(ctx context.Context, actor *ent.User) (*models.DashboardStats, error) {
	cacheKey := fmt.Sprintf("dashboard:stats:%s", scopeKey(actor))
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && raw != "" {
			var cached models.DashboardStats
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	leadQ := func() *ent.LeadQuery {
		q := s.db.Lead.Query()
		if !elevated(actor) {
			q = q.Where(lead.AssignedToID(actor.ID))
		}
		return q
	}

	total, err := leadQ().Count(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to count leads: %w", err))
	}

	counts := map[lead.Status]int{}
	for _, st := range []lead.Status{lead.StatusNew, lead.StatusQualified, lead.StatusWon, lead.StatusLost} {
		n, err := leadQ().Where(lead.StatusEQ(st)).Count(ctx)
		if err != nil {
			return nil, domain.NewInternalError(fmt.Errorf("failed to count %s leads: %w", st, err))
		}
		counts[st] = n
	}

	// Lost leads carry no pipeline value.
	totalValue, err := sumEstimatedValue(ctx, leadQ().Where(lead.StatusNEQ(lead.StatusLost)))
	if err != nil {
		return nil, err
	}
	wonValue, err := sumEstimatedValue(ctx, leadQ().Where(lead.StatusEQ(lead.StatusWon)))
	if err != nil {
		return nil, err
	}

	activityQ := s.db.Activity.Query().Where(activity.CreatedAtGTE(startOfToday()))
	if !elevated(actor) {
		scope, err := s.policy.VisibilityScope(ctx, actor)
		if err != nil {
			return nil, domain.NewInternalError(err)
		}
		activityQ = activityQ.Where(activity.LeadIDIn(scope.LeadIDs...))
	}
	activitiesToday, err := activityQ.Count(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to count activities: %w", err))
	}

	conversion := 0.0
	if total > 0 {
		conversion = math.Round(float64(counts[lead.StatusWon])/float64(total)*100*100) / 100
	}

	stats := &models.DashboardStats{
		TotalLeads:      total,
		NewLeads:        counts[lead.StatusNew],
		QualifiedLeads:  counts[lead.StatusQualified],
		WonLeads:        counts[lead.StatusWon],
		LostLeads:       counts[lead.StatusLost],
		TotalValue:      totalValue,
		WonValue:        wonValue,
		ActivitiesToday: activitiesToday,
		ConversionRate:  conversion,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(raw), s.cacheTTL); err != nil {
				s.log.Warn("dashboard stats cache write failed", "error", err)
			}
		}
	}

	return stats, nil
}

// LeadsByStatus returns lead counts grouped by status.
func (s *Service) LeadsByStatus(ctx context.Context, actor *ent.User) ([]models.StatusCount, error) {
	q := s.db.Lead.Query()
	if !elevated(actor) {
		q = q.Where(lead.AssignedToID(actor.ID))
	}

	var rows []struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	}
	if err := q.GroupBy(lead.FieldStatus).
		Aggregate(ent.Count()).
		Scan(ctx, &rows); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to group leads by status: %w", err))
	}

	out := make([]models.StatusCount, len(rows))
	for i, r := range rows {
		out[i] = models.StatusCount{Status: r.Status, Count: r.Count}
	}
	return out, nil
}

// LeadsBySource returns lead counts grouped by source. Leads with no
// source are skipped.
func (s *Service) LeadsBySource(ctx context.Context, actor *ent.User) ([]models.SourceCount, error) {
	q := s.db.Lead.Query().Where(lead.SourceNEQ(""))
	if !elevated(actor) {
		q = q.Where(lead.AssignedToID(actor.ID))
	}

	var rows []struct {
		Source string `json:"source"`
		Count  int    `json:"count"`
	}
	if err := q.GroupBy(lead.FieldSource).
		Aggregate(ent.Count()).
		Scan(ctx, &rows); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to group leads by source: %w", err))
	}

	out := make([]models.SourceCount, len(rows))
	for i, r := range rows {
		out[i] = models.SourceCount{Source: r.Source, Count: r.Count}
	}
	return out, nil
}

// SalesPipeline returns open leads per stage in fixed stage order with
// the value held at each stage. Won and lost leads are excluded.
func (s *Service) SalesPipeline(ctx context.Context, actor *ent.User) ([]models.PipelineStage, error) {
	q := s.db.Lead.Query().Where(lead.StatusNotIn(lead.StatusWon, lead.StatusLost))
	if !elevated(actor) {
		q = q.Where(lead.AssignedToID(actor.ID))
	}

	var rows []struct {
		Status string  `json:"status"`
		Count  int     `json:"count"`
		Sum    float64 `json:"sum"`
	}
	if err := q.GroupBy(lead.FieldStatus).
		Aggregate(ent.Count(), ent.Sum(lead.FieldEstimatedValue)).
		Scan(ctx, &rows); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to aggregate pipeline: %w", err))
	}

	byStatus := make(map[string]models.PipelineStage, len(rows))
	for _, r := range rows {
		byStatus[r.Status] = models.PipelineStage{Status: r.Status, Count: r.Count, TotalValue: r.Sum}
	}

	out := make([]models.PipelineStage, 0, len(pipelineOrder))
	for _, st := range pipelineOrder {
		stage, ok := byStatus[st]
		if !ok {
			stage = models.PipelineStage{Status: st}
		}
		out = append(out, stage)
	}
	return out, nil
}

// RecentActivities returns the latest activities visible to the actor.
func (s *Service) RecentActivities(ctx context.Context, actor *ent.User, limit int) ([]models.ActivityResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	q := s.db.Activity.Query().
		WithLead().
		WithUser().
		Order(ent.Desc(activity.FieldCreatedAt)).
		Limit(limit)
	if !elevated(actor) {
		scope, err := s.policy.VisibilityScope(ctx, actor)
		if err != nil {
			return nil, domain.NewInternalError(err)
		}
		q = q.Where(activity.LeadIDIn(scope.LeadIDs...))
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to query recent activities: %w", err))
	}

	out := make([]models.ActivityResponse, len(rows))
	for i, a := range rows {
		out[i] = models.ActivityResponse{
			ID:          a.ID,
			Type:        string(a.Type),
			Title:       a.Title,
			Description: a.Description,
			LeadID:      a.LeadID,
			UserID:      a.UserID,
			ScheduledAt: a.ScheduledAt,
			Metadata:    a.Metadata,
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
		}
		if a.Edges.User != nil {
			out[i].User = &models.UserSummary{
				ID:        a.Edges.User.ID,
				FirstName: a.Edges.User.FirstName,
				LastName:  a.Edges.User.LastName,
				Email:     a.Edges.User.Email,
			}
		}
		if a.Edges.Lead != nil {
			out[i].Lead = &models.LeadSummary{
				ID:        a.Edges.Lead.ID,
				FirstName: a.Edges.Lead.FirstName,
				LastName:  a.Edges.Lead.LastName,
				Email:     a.Edges.Lead.Email,
				Status:    string(a.Edges.Lead.Status),
			}
		}
	}
	return out, nil
}

// TeamPerformance aggregates assigned-lead outcomes per active user.
// Restricted to admins and managers.
func (s *Service) TeamPerformance(ctx context.Context, actor *ent.User) ([]models.TeamMemberPerformance, error) {
	if !elevated(actor) {
		return nil, domain.NewForbiddenError("Access denied")
	}

	users, err := s.db.User.Query().
		Where(user.IsActive(true)).
		Order(ent.Asc(user.FieldFirstName)).
		All(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to query users: %w", err))
	}

	type aggRow struct {
		AssignedToID int     `json:"assigned_to_id"`
		Count        int     `json:"count"`
		Sum          float64 `json:"sum"`
	}

	var allRows []aggRow
	if err := s.db.Lead.Query().
		Where(lead.AssignedToIDNotNil()).
		GroupBy(lead.FieldAssignedToID).
		Aggregate(ent.Count(), ent.Sum(lead.FieldEstimatedValue)).
		Scan(ctx, &allRows); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to aggregate leads: %w", err))
	}

	var wonRows []aggRow
	if err := s.db.Lead.Query().
		Where(lead.AssignedToIDNotNil(), lead.StatusEQ(lead.StatusWon)).
		GroupBy(lead.FieldAssignedToID).
		Aggregate(ent.Count(), ent.Sum(lead.FieldEstimatedValue)).
		Scan(ctx, &wonRows); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to aggregate won leads: %w", err))
	}

	allByUser := make(map[int]aggRow, len(allRows))
	for _, r := range allRows {
		allByUser[r.AssignedToID] = r
	}
	wonByUser := make(map[int]aggRow, len(wonRows))
	for _, r := range wonRows {
		wonByUser[r.AssignedToID] = r
	}

	out := make([]models.TeamMemberPerformance, len(users))
	for i, u := range users {
		all := allByUser[u.ID]
		won := wonByUser[u.ID]
		out[i] = models.TeamMemberPerformance{
			User: models.UserSummary{
				ID:        u.ID,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Email:     u.Email,
			},
			Role:       string(u.Role),
			TotalLeads: all.Count,
			TotalValue: all.Sum,
			WonLeads:   won.Count,
			WonValue:   won.Sum,
		}
	}
	return out, nil
}

// sumEstimatedValue sums estimated_value with a COALESCE so an empty
// result set scans as 0 instead of NULL.
func sumEstimatedValue(ctx context.Context, q *ent.LeadQuery) (float64, error) {
	total, err := q.Aggregate(func(s *sql.Selector) string {
		return sql.As(fmt.Sprintf("COALESCE(SUM(%s), 0)", lead.FieldEstimatedValue), "total_value")
	}).Float64(ctx)
	if err != nil {
		return 0, domain.NewInternalError(fmt.Errorf("failed to sum lead value: %w", err))
	}
	return total, nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func scopeKey(actor *ent.User) string {
	if elevated(actor) {
		return "all"
	}
	return fmt.Sprintf("user:%d", actor.ID)
}

func elevated(actor *ent.User) bool {
	return actor.Role == user.RoleAdmin || actor.Role == user.RoleManager
}
