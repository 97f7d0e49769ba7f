package users

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/lead"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/domain"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/jordanlanch/salespipe/pkg/models"
)

// Service manages user accounts. Listing is open to all authenticated
// users (assignment pickers need it); destructive operations are
// admin-only.
type Service struct {
	db       *ent.Client
	log      logger.Logger
	validate *validator.Validate
}

// NewService creates a new user service
func NewService(db *ent.Client, log logger.Logger) *Service {
	return &Service{
		db:       db,
		log:      log,
		validate: validator.New(),
	}
}

// List returns users with optional role filter and name/email search.
func (s *Service) List(ctx context.Context, req models.ListUsersRequest) (*models.UserListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	if req.Limit > 100 {
		req.Limit = 100
	}

	query := s.db.User.Query()
	if req.Role != "" {
		query = query.Where(user.RoleEQ(user.Role(req.Role)))
	}
	if req.Search != "" {
		query = query.Where(user.Or(
			user.FirstNameContainsFold(req.Search),
			user.LastNameContainsFold(req.Search),
			user.EmailContainsFold(req.Search),
		))
	}

	total, err := query.Clone().Count(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to count users: %w", err))
	}

	offset := (req.Page - 1) * req.Limit
	rows, err := query.
		Order(ent.Asc(user.FieldFirstName), ent.Asc(user.FieldLastName)).
		Limit(req.Limit).
		Offset(offset).
		All(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to query users: %w", err))
	}

	data := make([]models.UserResponse, len(rows))
	for i, u := range rows {
		data[i] = ToUserResponse(u)
	}

	return &models.UserListResponse{
		Data: data,
		Pagination: models.PaginationInfo{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: (total + req.Limit - 1) / req.Limit,
		},
	}, nil
}

// GetByID returns one user. Sales executives may only read themselves.
func (s *Service) GetByID(ctx context.Context, actor *ent.User, id int) (*models.UserResponse, error) {
	if actor.ID != id && actor.Role == user.RoleSalesExecutive {
		return nil, domain.NewForbiddenError("Access denied")
	}

	u, err := s.db.User.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to fetch user: %w", err))
	}

	resp := ToUserResponse(u)
	return &resp, nil
}

// Update patches a user. Anyone may rename themselves; email, role and
// is_active changes require an admin.
func (s *Service) Update(ctx context.Context, actor *ent.User, id int, req models.UpdateUserRequest) (*models.UserResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewFieldValidationError("Validation failed", fieldErrors(err))
	}

	isAdmin := actor.Role == user.RoleAdmin
	if actor.ID != id && !isAdmin {
		return nil, domain.NewForbiddenError("Access denied")
	}
	if !isAdmin && (req.Email != nil || req.Role != nil || req.IsActive != nil) {
		return nil, domain.NewForbiddenError("Only admins can change email, role or active status")
	}

	if _, err := s.db.User.Get(ctx, id); err != nil {
		if ent.IsNotFound(err) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to fetch user: %w", err))
	}

	upd := s.db.User.UpdateOneID(id)
	if req.FirstName != nil {
		upd.SetFirstName(*req.FirstName)
	}
	if req.LastName != nil {
		upd.SetLastName(*req.LastName)
	}
	if req.Email != nil {
		upd.SetEmail(*req.Email)
	}
	if req.Role != nil {
		upd.SetRole(user.Role(*req.Role))
	}
	if req.IsActive != nil {
		upd.SetIsActive(*req.IsActive)
	}

	u, err := upd.Save(ctx)
	if err != nil {
		if ent.IsConstraintError(err) {
			return nil, domain.NewConflictError("Email is already in use")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to update user: %w", err))
	}

	s.log.Info("user updated", "user_id", id, "actor", actor.Email)
	resp := ToUserResponse(u)
	return &resp, nil
}

// Delete removes a user. Admin only. Assigned leads survive with their
// assignee cleared; activities keep their author reference removed by
// the same transaction.
func (s *Service) Delete(ctx context.Context, actor *ent.User, id int) error {
	if actor.Role != user.RoleAdmin {
		return domain.NewForbiddenError("Access denied")
	}
	if actor.ID == id {
		return domain.NewValidationError("You cannot delete your own account")
	}

	if _, err := s.db.User.Get(ctx, id); err != nil {
		if ent.IsNotFound(err) {
			return domain.NewNotFoundError("user")
		}
		return domain.NewInternalError(fmt.Errorf("failed to fetch user: %w", err))
	}

	tx, err := s.db.Tx(ctx)
	if err != nil {
		return domain.NewInternalError(fmt.Errorf("failed to start transaction: %w", err))
	}

	if _, err := tx.Lead.Update().
		Where(lead.AssignedToID(id)).
		ClearAssignedTo().
		Save(ctx); err != nil {
		tx.Rollback()
		return domain.NewInternalError(fmt.Errorf("failed to unassign leads: %w", err))
	}

	if err := tx.User.DeleteOneID(id).Exec(ctx); err != nil {
		tx.Rollback()
		if ent.IsConstraintError(err) {
			return domain.NewConflictError("User still owns leads or activities and cannot be deleted")
		}
		return domain.NewInternalError(fmt.Errorf("failed to delete user: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return domain.NewInternalError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	s.log.Info("user deleted", "user_id", id, "actor", actor.Email)
	return nil
}

// ToUserResponse converts an ent user to its API shape.
func ToUserResponse(u *ent.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		LastLogin: u.LastLoginAt,
		CreatedAt: u.CreatedAt,
	}
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
