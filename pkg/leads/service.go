package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/activity"
	"github.com/jordanlanch/salespipe/ent/lead"
	"github.com/jordanlanch/salespipe/pkg/domain"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/jordanlanch/salespipe/pkg/models"
	"github.com/jordanlanch/salespipe/pkg/phone"
	"github.com/jordanlanch/salespipe/pkg/policy"
)

// ValidStatuses lists the pipeline statuses in stage order.
var ValidStatuses = []string{"new", "contacted", "qualified", "proposal", "negotiation", "won", "lost"}

// Service orchestrates the lead lifecycle: creation, updates, deletion,
// assignment and status transitions. Every mutation and its synthesized
// audit activities commit in a single transaction; realtime events and
// assignment emails are dispatched only after commit and never fail the
// originating operation.
type Service struct {
	db          *ent.Client
	policy      *policy.Evaluator
	emitter     domain.EventEmitter
	mailer      domain.Mailer
	cache       domain.CacheRepository
	log         logger.Logger
	validate    *validator.Validate
	phoneRegion string
}

// NewService creates a new lead service. emitter, mailer and cache may
// be nil (tests, seed tooling); the service degrades to store-only.
func NewService(db *ent.Client, pol *policy.Evaluator, emitter domain.EventEmitter, mailer domain.Mailer, cache domain.CacheRepository, log logger.Logger, phoneRegion string) *Service {
	return &Service{
		db:          db,
		policy:      pol,
		emitter:     emitter,
		mailer:      mailer,
		cache:       cache,
		log:         log,
		validate:    validator.New(),
		phoneRegion: phoneRegion,
	}
}

// List returns leads visible to the actor with filters, substring
// search, sorting and pagination. Sales executives are always pinned to
// their own assigned leads regardless of the requested filter.
func (s *Service) List(ctx context.Context, actor *ent.User, req models.ListLeadsRequest) (*models.LeadListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	if req.Limit > 100 {
		req.Limit = 100
	}

	query := s.db.Lead.Query().
		WithAssignedTo().
		WithCreatedBy()

	if req.Status != "" {
		if !isValidStatus(req.Status) {
			return nil, domain.NewValidationError(statusListMessage())
		}
		query = query.Where(lead.StatusEQ(lead.Status(req.Status)))
	}
	if req.AssignedToID > 0 {
		query = query.Where(lead.AssignedToID(req.AssignedToID))
	}

	scope, err := s.policy.VisibilityScope(ctx, actor)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	if !scope.Unrestricted {
		query = query.Where(lead.AssignedToID(actor.ID))
	}

	if req.Search != "" {
		query = query.Where(lead.Or(
			lead.FirstNameContainsFold(req.Search),
			lead.LastNameContainsFold(req.Search),
			lead.EmailContainsFold(req.Search),
			lead.CompanyContainsFold(req.Search),
		))
	}

	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to count leads: %w", err))
	}

	query = applySort(query, req.SortBy, req.SortOrder)

	offset := (req.Page - 1) * req.Limit
	rows, err := query.Limit(req.Limit).Offset(offset).All(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to query leads: %w", err))
	}

	data := make([]models.LeadResponse, len(rows))
	for i, l := range rows {
		data[i] = toLeadResponse(l)
	}

	return &models.LeadListResponse{
		Data: data,
		Pagination: models.PaginationInfo{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: (total + req.Limit - 1) / req.Limit,
		},
	}, nil
}

// GetByID returns one lead with assignee, creator and activity history
// expanded. Visibility is enforced through the policy evaluator.
func (s *Service) GetByID(ctx context.Context, actor *ent.User, id int) (*models.LeadResponse, error) {
	l, err := s.db.Lead.Query().
		Where(lead.ID(id)).
		WithAssignedTo().
		WithCreatedBy().
		WithActivities(func(q *ent.ActivityQuery) {
			q.WithUser().Order(ent.Desc(activity.FieldCreatedAt))
		}).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, domain.NewNotFoundError("lead")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to fetch lead: %w", err))
	}

	if !s.policy.CanView(actor, l) {
		return nil, domain.NewForbiddenError("Access denied")
	}

	resp := toLeadResponse(l)
	return &resp, nil
}

// Create persists a new lead. The assignee defaults to the creator when
// omitted. A "Lead Created" status-change activity is written in the
// same transaction; when the lead is assigned to someone else, that
// user gets an assignment email after commit.
func (s *Service) Create(ctx context.Context, actor *ent.User, req models.CreateLeadRequest) (*models.LeadResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewFieldValidationError("Validation failed", fieldErrors(err))
	}

	status := req.Status
	if status == "" {
		status = "new"
	}

	assigneeID := actor.ID
	if req.AssignedToID != nil {
		assigneeID = *req.AssignedToID
	}

	var assignee *ent.User
	if assigneeID == actor.ID {
		assignee = actor
	} else {
		var err error
		assignee, err = s.db.User.Get(ctx, assigneeID)
		if err != nil {
			if ent.IsNotFound(err) {
				return nil, domain.NewNotFoundError("assigned user")
			}
			return nil, domain.NewInternalError(fmt.Errorf("failed to fetch assignee: %w", err))
		}
		if !assignee.IsActive {
			return nil, domain.NewValidationError("Cannot assign a lead to an inactive user")
		}
	}

	estimatedValue := 0.0
	if req.EstimatedValue != nil {
		estimatedValue = *req.EstimatedValue
	}

	tx, err := s.db.Tx(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to start transaction: %w", err))
	}

	l, err := tx.Lead.Create().
		SetFirstName(req.FirstName).
		SetLastName(req.LastName).
		SetEmail(req.Email).
		SetPhone(phone.Normalize(req.Phone, s.phoneRegion)).
		SetCompany(req.Company).
		SetTitle(req.Title).
		SetStatus(lead.Status(status)).
		SetSource(req.Source).
		SetEstimatedValue(estimatedValue).
		SetNotes(req.Notes).
		SetAssignedToID(assigneeID).
		SetCreatedByID(actor.ID).
		Save(ctx)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewInternalError(fmt.Errorf("failed to create lead: %w", err))
	}

	_, err = tx.Activity.Create().
		SetType(activity.TypeStatusChange).
		SetTitle("Lead Created").
		SetDescription(fmt.Sprintf("Lead %q was created", leadFullName(l))).
		SetLeadID(l.ID).
		SetUserID(actor.ID).
		SetMetadata(map[string]interface{}{"status": string(l.Status)}).
		Save(ctx)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewInternalError(fmt.Errorf("failed to create audit activity: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	created, err := s.reload(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	resp := toLeadResponse(created)

	s.emit(domain.EventLeadCreated, map[string]interface{}{
		"lead":       resp,
		"created_by": userSummary(actor),
	})

	if assignee.ID != actor.ID {
		s.sendAssignmentEmail(assignee, created)
	}
	s.invalidateDashboards()

	s.log.Info("lead created", "lead_id", created.ID, "actor", actor.Email)
	return &resp, nil
}

// Update applies a partial patch. A status change and an assignee
// change each synthesize their own audit activity (status first, then
// assignment) inside the mutation's transaction. The new assignee gets
// an assignment email after commit.
func (s *Service) Update(ctx context.Context, actor *ent.User, id int, req models.UpdateLeadRequest) (*models.LeadResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewFieldValidationError("Validation failed", fieldErrors(err))
	}

	l, err := s.db.Lead.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, domain.NewNotFoundError("lead")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to fetch lead: %w", err))
	}

	if !s.policy.CanMutate(actor, l) {
		return nil, domain.NewForbiddenError("Access denied")
	}

	oldStatus := l.Status
	oldAssignedTo := l.AssignedToID

	statusChanged := req.Status != nil && lead.Status(*req.Status) != oldStatus
	assigneeChanged := req.AssignedToID != nil && (oldAssignedTo == nil || *oldAssignedTo != *req.AssignedToID)

	var newAssignee *ent.User
	if assigneeChanged {
		newAssignee, err = s.db.User.Get(ctx, *req.AssignedToID)
		if err != nil {
			if ent.IsNotFound(err) {
				return nil, domain.NewNotFoundError("assigned user")
			}
			return nil, domain.NewInternalError(fmt.Errorf("failed to fetch assignee: %w", err))
		}
		if !newAssignee.IsActive {
			return nil, domain.NewValidationError("Cannot assign a lead to an inactive user")
		}
	}

	tx, err := s.db.Tx(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to start transaction: %w", err))
	}

	upd := tx.Lead.UpdateOneID(id)
	if req.FirstName != nil {
		upd.SetFirstName(*req.FirstName)
	}
	if req.LastName != nil {
		upd.SetLastName(*req.LastName)
	}
	if req.Email != nil {
		upd.SetEmail(*req.Email)
	}
	if req.Phone != nil {
		upd.SetPhone(phone.Normalize(*req.Phone, s.phoneRegion))
	}
	if req.Company != nil {
		upd.SetCompany(*req.Company)
	}
	if req.Title != nil {
		upd.SetTitle(*req.Title)
	}
	if req.Source != nil {
		upd.SetSource(*req.Source)
	}
	if req.EstimatedValue != nil {
		upd.SetEstimatedValue(*req.EstimatedValue)
	}
	if req.Notes != nil {
		upd.SetNotes(*req.Notes)
	}
	if statusChanged {
		upd.SetStatus(lead.Status(*req.Status)).SetStatusChangedAt(time.Now())
	}
	if assigneeChanged {
		upd.SetAssignedToID(*req.AssignedToID)
	}

	updated, err := upd.Save(ctx)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewInternalError(fmt.Errorf("failed to update lead: %w", err))
	}

	// Status activity is written before the reassignment activity when a
	// single patch changes both.
	if statusChanged {
		_, err = tx.Activity.Create().
			SetType(activity.TypeStatusChange).
			SetTitle("Status Updated").
			SetDescription(fmt.Sprintf("Status changed from %q to %q", oldStatus, *req.Status)).
			SetLeadID(id).
			SetUserID(actor.ID).
			SetMetadata(map[string]interface{}{
				"old_status": string(oldStatus),
				"new_status": *req.Status,
			}).
			Save(ctx)
		if err != nil {
			tx.Rollback()
			return nil, domain.NewInternalError(fmt.Errorf("failed to create status activity: %w", err))
		}
	}

	if assigneeChanged {
		_, err = tx.Activity.Create().
			SetType(activity.TypeStatusChange).
			SetTitle("Lead Reassigned").
			SetDescription(fmt.Sprintf("Lead reassigned to %s", userFullName(newAssignee))).
			SetLeadID(id).
			SetUserID(actor.ID).
			SetMetadata(map[string]interface{}{
				"old_assigned_to": oldAssignedTo,
				"new_assigned_to": *req.AssignedToID,
			}).
			Save(ctx)
		if err != nil {
			tx.Rollback()
			return nil, domain.NewInternalError(fmt.Errorf("failed to create reassignment activity: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	reloaded, err := s.reload(ctx, updated.ID)
	if err != nil {
		return nil, err
	}

	resp := toLeadResponse(reloaded)

	s.emit(domain.EventLeadUpdated, map[string]interface{}{
		"lead":       resp,
		"updated_by": userSummary(actor),
	})

	if assigneeChanged {
		s.sendAssignmentEmail(newAssignee, reloaded)
	}
	s.invalidateDashboards()

	s.log.Info("lead updated", "lead_id", id, "actor", actor.Email)
	return &resp, nil
}

// Delete removes a lead and all of its activities in one transaction.
func (s *Service) Delete(ctx context.Context, actor *ent.User, id int) error {
	l, err := s.db.Lead.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return domain.NewNotFoundError("lead")
		}
		return domain.NewInternalError(fmt.Errorf("failed to fetch lead: %w", err))
	}

	if !s.policy.CanDelete(actor, l) {
		return domain.NewForbiddenError("Access denied")
	}

	tx, err := s.db.Tx(ctx)
	if err != nil {
		return domain.NewInternalError(fmt.Errorf("failed to start transaction: %w", err))
	}

	if _, err := tx.Activity.Delete().Where(activity.LeadID(id)).Exec(ctx); err != nil {
		tx.Rollback()
		return domain.NewInternalError(fmt.Errorf("failed to delete lead activities: %w", err))
	}

	if err := tx.Lead.DeleteOneID(id).Exec(ctx); err != nil {
		tx.Rollback()
		return domain.NewInternalError(fmt.Errorf("failed to delete lead: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return domain.NewInternalError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	s.emit(domain.EventLeadDeleted, map[string]interface{}{
		"lead_id":    id,
		"deleted_by": userSummary(actor),
	})
	s.invalidateDashboards()

	s.log.Info("lead deleted", "lead_id", id, "actor", actor.Email)
	return nil
}

// Assign unconditionally reassigns a lead to the given user. There is
// no CanMutate gate here: reassignment is an explicit administrative
// action available to any authenticated user.
func (s *Service) Assign(ctx context.Context, actor *ent.User, id int, req models.AssignLeadRequest) (*models.LeadResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewFieldValidationError("Validation failed", fieldErrors(err))
	}

	l, err := s.db.Lead.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, domain.NewNotFoundError("lead")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to fetch lead: %w", err))
	}

	assignee, err := s.db.User.Get(ctx, req.AssignedToID)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to fetch user: %w", err))
	}
	if !assignee.IsActive {
		return nil, domain.NewValidationError("Cannot assign a lead to an inactive user")
	}

	oldAssignedTo := l.AssignedToID

	tx, err := s.db.Tx(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to start transaction: %w", err))
	}

	if _, err := tx.Lead.UpdateOneID(id).SetAssignedToID(assignee.ID).Save(ctx); err != nil {
		tx.Rollback()
		return nil, domain.NewInternalError(fmt.Errorf("failed to assign lead: %w", err))
	}

	_, err = tx.Activity.Create().
		SetType(activity.TypeStatusChange).
		SetTitle("Lead Reassigned").
		SetDescription(fmt.Sprintf("Lead reassigned to %s", userFullName(assignee))).
		SetLeadID(id).
		SetUserID(actor.ID).
		SetMetadata(map[string]interface{}{
			"old_assigned_to": oldAssignedTo,
			"new_assigned_to": assignee.ID,
		}).
		Save(ctx)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewInternalError(fmt.Errorf("failed to create reassignment activity: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	reloaded, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toLeadResponse(reloaded)

	s.emit(domain.EventLeadAssigned, map[string]interface{}{
		"lead":        resp,
		"assigned_to": userSummary(assignee),
		"assigned_by": userSummary(actor),
	})
	s.sendAssignmentEmail(assignee, reloaded)
	s.invalidateDashboards()

	s.log.Info("lead assigned", "lead_id", id, "assignee", assignee.Email, "actor", actor.Email)
	return &resp, nil
}

// SetStatus transitions the lead to the given status. Setting the
// current status again is a no-op: no activity is written and no event
// is emitted.
func (s *Service) SetStatus(ctx context.Context, actor *ent.User, id int, req models.UpdateLeadStatusRequest) (*models.LeadResponse, error) {
	if !isValidStatus(req.Status) {
		return nil, domain.NewValidationError(statusListMessage())
	}

	l, err := s.db.Lead.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, domain.NewNotFoundError("lead")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to fetch lead: %w", err))
	}

	if !s.policy.CanMutate(actor, l) {
		return nil, domain.NewForbiddenError("Access denied")
	}

	oldStatus := l.Status
	if oldStatus == lead.Status(req.Status) {
		reloaded, err := s.reload(ctx, id)
		if err != nil {
			return nil, err
		}
		resp := toLeadResponse(reloaded)
		return &resp, nil
	}

	tx, err := s.db.Tx(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to start transaction: %w", err))
	}

	if _, err := tx.Lead.UpdateOneID(id).
		SetStatus(lead.Status(req.Status)).
		SetStatusChangedAt(time.Now()).
		Save(ctx); err != nil {
		tx.Rollback()
		return nil, domain.NewInternalError(fmt.Errorf("failed to update lead status: %w", err))
	}

	_, err = tx.Activity.Create().
		SetType(activity.TypeStatusChange).
		SetTitle("Status Updated").
		SetDescription(fmt.Sprintf("Status changed from %q to %q", oldStatus, req.Status)).
		SetLeadID(id).
		SetUserID(actor.ID).
		SetMetadata(map[string]interface{}{
			"old_status": string(oldStatus),
			"new_status": req.Status,
		}).
		Save(ctx)
	if err != nil {
		tx.Rollback()
		return nil, domain.NewInternalError(fmt.Errorf("failed to create status activity: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	reloaded, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toLeadResponse(reloaded)

	s.emit(domain.EventLeadStatusUpdated, map[string]interface{}{
		"lead":       resp,
		"old_status": string(oldStatus),
		"new_status": req.Status,
		"updated_by": userSummary(actor),
	})
	s.invalidateDashboards()

	s.log.Info("lead status updated", "lead_id", id, "old_status", oldStatus, "new_status", req.Status)
	return &resp, nil
}

func (s *Service) reload(ctx context.Context, id int) (*ent.Lead, error) {
	l, err := s.db.Lead.Query().
		Where(lead.ID(id)).
		WithAssignedTo().
		WithCreatedBy().
		Only(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to reload lead: %w", err))
	}
	return l, nil
}

// emit broadcasts a realtime event; it is a no-op without an emitter.
func (s *Service) emit(event string, payload interface{}) {
	if s.emitter == nil {
		return
	}
	s.emitter.Emit(event, payload)
}

// sendAssignmentEmail dispatches the assignment notice asynchronously.
// Failures are logged and discarded.
func (s *Service) sendAssignmentEmail(assignee *ent.User, l *ent.Lead) {
	if s.mailer == nil {
		return
	}
	go func() {
		if err := s.mailer.SendLeadAssignmentEmail(assignee.Email, userFullName(assignee), l); err != nil {
			s.log.Warn("assignment email failed", "lead_id", l.ID, "to", assignee.Email, "error", err)
		}
	}()
}

func (s *Service) invalidateDashboards() {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.cache.DeletePattern(ctx, "dashboard:*"); err != nil {
		s.log.Warn("dashboard cache invalidation failed", "error", err)
	}
}

func applySort(q *ent.LeadQuery, sortBy, sortOrder string) *ent.LeadQuery {
	field, ok := map[string]string{
		"created_at":      lead.FieldCreatedAt,
		"updated_at":      lead.FieldUpdatedAt,
		"first_name":      lead.FieldFirstName,
		"last_name":       lead.FieldLastName,
		"status":          lead.FieldStatus,
		"estimated_value": lead.FieldEstimatedValue,
	}[sortBy]
	if !ok {
		field = lead.FieldCreatedAt
	}
	if strings.EqualFold(sortOrder, "asc") {
		return q.Order(ent.Asc(field))
	}
	return q.Order(ent.Desc(field))
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func statusListMessage() string {
	return fmt.Sprintf("Status must be one of: %s", strings.Join(ValidStatuses, ", "))
}

func leadFullName(l *ent.Lead) string {
	return l.FirstName + " " + l.LastName
}

func userFullName(u *ent.User) string {
	return u.FirstName + " " + u.LastName
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

func toLeadResponse(l *ent.Lead) models.LeadResponse {
	resp := models.LeadResponse{
		ID:              l.ID,
		FirstName:       l.FirstName,
		LastName:        l.LastName,
		Email:           l.Email,
		Phone:           l.Phone,
		Company:         l.Company,
		Title:           l.Title,
		Status:          string(l.Status),
		StatusChangedAt: l.StatusChangedAt,
		Source:          l.Source,
		EstimatedValue:  l.EstimatedValue,
		Notes:           l.Notes,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}

	if l.Edges.AssignedTo != nil {
		resp.AssignedTo = userSummary(l.Edges.AssignedTo)
	}
	if l.Edges.CreatedBy != nil {
		resp.CreatedBy = userSummary(l.Edges.CreatedBy)
	}
	if l.Edges.Activities != nil {
		resp.Activities = make([]models.ActivityResponse, len(l.Edges.Activities))
		for i, a := range l.Edges.Activities {
			resp.Activities[i] = toActivityResponse(a)
		}
	}

	return resp
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
