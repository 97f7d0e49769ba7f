package activities

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/activity"
	"github.com/jordanlanch/salespipe/pkg/domain"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/jordanlanch/salespipe/pkg/models"
	"github.com/jordanlanch/salespipe/pkg/policy"
)

// Service manages lead activity records: notes, calls, meetings, emails
// and status-change audit entries.
type Service struct {
	db       *ent.Client
	policy   *policy.Evaluator
	emitter  domain.EventEmitter
	log      logger.Logger
	validate *validator.Validate
}

// NewService creates a new activity service
func NewService(db *ent.Client, pol *policy.Evaluator, emitter domain.EventEmitter, log logger.Logger) *Service {
	return &Service{
		db:       db,
		policy:   pol,
		emitter:  emitter,
		log:      log,
		validate: validator.New(),
	}
}

// Create records a new activity on a lead the actor can view.
func (s *Service) Create(ctx context.Context, actor *ent.User, req models.CreateActivityRequest) (*models.ActivityResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewFieldValidationError("Validation failed", fieldErrors(err))
	}

	l, err := s.db.Lead.Get(ctx, req.LeadID)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, domain.NewNotFoundError("lead")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to fetch lead: %w", err))
	}

	if !s.policy.CanView(actor, l) {
		return nil, domain.NewForbiddenError("Access denied")
	}

	create := s.db.Activity.Create().
		SetType(activity.Type(req.Type)).
		SetTitle(req.Title).
		SetDescription(req.Description).
		SetLeadID(req.LeadID).
		SetUserID(actor.ID)
	if req.ScheduledAt != nil {
		create.SetScheduledAt(*req.ScheduledAt)
	}
	if req.Metadata != nil {
		create.SetMetadata(req.Metadata)
	}

	a, err := create.Save(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to create activity: %w", err))
	}

	resp, err := s.reload(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	s.emit(domain.EventActivityCreated, map[string]interface{}{
		"activity":   resp,
		"created_by": userSummary(actor),
	})

	s.log.Info("activity created", "activity_id", a.ID, "lead_id", req.LeadID, "actor", actor.Email)
	return resp, nil
}

// GetByID returns a single activity with its lead and author expanded.
// Visibility follows the underlying lead.
func (s *Service) GetByID(ctx context.Context, actor *ent.User, id int) (*models.ActivityResponse, error) {
	a, err := s.db.Activity.Query().
		Where(activity.ID(id)).
		WithLead().
		WithUser().
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, domain.NewNotFoundError("activity")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to fetch activity: %w", err))
	}

	if a.Edges.Lead != nil && !s.policy.CanView(actor, a.Edges.Lead) {
		return nil, domain.NewForbiddenError("Access denied")
	}

	resp := toActivityResponse(a)
	return &resp, nil
}

// List returns activities visible to the actor with filters and
// pagination. Sales executives only see activities on their assigned
// leads.
func (s *Service) List(ctx context.Context, actor *ent.User, req models.ListActivitiesRequest) (*models.ActivityListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	if req.Limit > 100 {
		req.Limit = 100
	}

	query := s.db.Activity.Query().
		WithLead().
		WithUser()

	if req.Type != "" {
		query = query.Where(activity.TypeEQ(activity.Type(req.Type)))
	}
	if req.LeadID > 0 {
		query = query.Where(activity.LeadID(req.LeadID))
	}
	if req.UserID > 0 {
		query = query.Where(activity.UserID(req.UserID))
	}

	scope, err := s.policy.VisibilityScope(ctx, actor)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	if !scope.Unrestricted {
		query = query.Where(activity.LeadIDIn(scope.LeadIDs...))
	}

	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to count activities: %w", err))
	}

	query = applySort(query, req.SortBy, req.SortOrder)

	offset := (req.Page - 1) * req.Limit
	rows, err := query.Limit(req.Limit).Offset(offset).All(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to query activities: %w", err))
	}

	data := make([]models.ActivityResponse, len(rows))
	for i, a := range rows {
		data[i] = toActivityResponse(a)
	}

	return &models.ActivityListResponse{
		Data: data,
		Pagination: models.PaginationInfo{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: (total + req.Limit - 1) / req.Limit,
		},
	}, nil
}

// ListByLead returns the full activity history for one lead, newest
// first, after a visibility check.
func (s *Service) ListByLead(ctx context.Context, actor *ent.User, leadID int) ([]models.ActivityResponse, error) {
	l, err := s.db.Lead.Get(ctx, leadID)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, domain.NewNotFoundError("lead")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to fetch lead: %w", err))
	}

	if !s.policy.CanView(actor, l) {
		return nil, domain.NewForbiddenError("Access denied")
	}

	rows, err := s.db.Activity.Query().
		Where(activity.LeadID(leadID)).
		WithUser().
		Order(ent.Desc(activity.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to query activities: %w", err))
	}

	data := make([]models.ActivityResponse, len(rows))
	for i, a := range rows {
		data[i] = toActivityResponse(a)
	}
	return data, nil
}

// Update patches an activity. Only the author or an admin may change it.
func (s *Service) Update(ctx context.Context, actor *ent.User, id int, req models.UpdateActivityRequest) (*models.ActivityResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewFieldValidationError("Validation failed", fieldErrors(err))
	}

	a, err := s.db.Activity.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, domain.NewNotFoundError("activity")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to fetch activity: %w", err))
	}

	if !s.policy.CanTouchActivity(actor, a) {
		return nil, domain.NewForbiddenError("Access denied")
	}

	upd := s.db.Activity.UpdateOneID(id)
	if req.Type != nil {
		upd.SetType(activity.Type(*req.Type))
	}
	if req.Title != nil {
		upd.SetTitle(*req.Title)
	}
	if req.Description != nil {
		upd.SetDescription(*req.Description)
	}
	if req.ScheduledAt != nil {
		upd.SetScheduledAt(*req.ScheduledAt)
	}
	if req.Metadata != nil {
		upd.SetMetadata(req.Metadata)
	}

	if _, err := upd.Save(ctx); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to update activity: %w", err))
	}

	resp, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}

	s.emit(domain.EventActivityUpdated, map[string]interface{}{
		"activity":   resp,
		"updated_by": userSummary(actor),
	})

	s.log.Info("activity updated", "activity_id", id, "actor", actor.Email)
	return resp, nil
}

// Delete removes an activity. Only the author or an admin may delete it.
func (s *Service) Delete(ctx context.Context, actor *ent.User, id int) error {
	a, err := s.db.Activity.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return domain.NewNotFoundError("activity")
		}
		return domain.NewInternalError(fmt.Errorf("failed to fetch activity: %w", err))
	}

	if !s.policy.CanTouchActivity(actor, a) {
		return domain.NewForbiddenError("Access denied")
	}

	if err := s.db.Activity.DeleteOneID(id).Exec(ctx); err != nil {
		return domain.NewInternalError(fmt.Errorf("failed to delete activity: %w", err))
	}

	s.emit(domain.EventActivityDeleted, map[string]interface{}{
		"activity_id": id,
		"lead_id":     a.LeadID,
		"deleted_by":  userSummary(actor),
	})

	s.log.Info("activity deleted", "activity_id", id, "actor", actor.Email)
	return nil
}

func (s *Service) reload(ctx context.Context, id int) (*models.ActivityResponse, error) {
	a, err := s.db.Activity.Query().
		Where(activity.ID(id)).
		WithLead().
		WithUser().
		Only(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to reload activity: %w", err))
	}
	resp := toActivityResponse(a)
	return &resp, nil
}

func (s *Service) emit(event string, payload interface{}) {
	if s.emitter == nil {
		return
	}
	s.emitter.Emit(event, payload)
}

func applySort(q *ent.ActivityQuery, sortBy, sortOrder string) *ent.ActivityQuery {
	field, ok := map[string]string{
		"created_at":   activity.FieldCreatedAt,
		"updated_at":   activity.FieldUpdatedAt,
		"scheduled_at": activity.FieldScheduledAt,
		"type":         activity.FieldType,
	}[sortBy]
	if !ok {
		field = activity.FieldCreatedAt
	}
	if strings.EqualFold(sortOrder, "asc") {
		return q.Order(ent.Asc(field))
	}
	return q.Order(ent.Desc(field))
}

func userSummary(u *ent.User) *models.UserSummary {
	if u == nil {
		return nil
	}
	return &models.UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func toActivityResponse(a *ent.Activity) models.ActivityResponse {
	resp := models.ActivityResponse{
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
		resp.User = userSummary(a.Edges.User)
	}
	if a.Edges.Lead != nil {
		resp.Lead = &models.LeadSummary{
			ID:        a.Edges.Lead.ID,
			FirstName: a.Edges.Lead.FirstName,
			LastName:  a.Edges.Lead.LastName,
			Email:     a.Edges.Lead.Email,
			Status:    string(a.Edges.Lead.Status),
		}
	}
	return resp
}

func fieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
	return fields
}
