package models

import "time"

// LeadSummary is the compact lead expansion embedded in activity responses.
type LeadSummary struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}

// ActivityResponse represents an activity in API responses
type ActivityResponse struct {
	ID          int                    `json:"id"`
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	LeadID      int                    `json:"lead_id"`
	UserID      int                    `json:"user_id"`
	Lead        *LeadSummary           `json:"lead,omitempty"`
	User        *UserSummary           `json:"user,omitempty"`
	ScheduledAt *time.Time             `json:"scheduled_at,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ActivityListResponse is a paginated list of activities
type ActivityListResponse struct {
	Data       []ActivityResponse `json:"data"`
	Pagination PaginationInfo     `json:"pagination"`
}

// CreateActivityRequest represents a request to record an activity
type CreateActivityRequest struct {
	LeadID      int                    `json:"lead_id" validate:"required,gt=0"`
	Type        string                 `json:"type" validate:"required,oneof=note call meeting email status_change"`
	Title       string                 `json:"title" validate:"required"`
	Description string                 `json:"description,omitempty"`
	ScheduledAt *time.Time             `json:"scheduled_at,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateActivityRequest represents a partial activity update
type UpdateActivityRequest struct {
	Type        *string                `json:"type,omitempty" validate:"omitempty,oneof=note call meeting email status_change"`
	Title       *string                `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string                `json:"description,omitempty"`
	ScheduledAt *time.Time             `json:"scheduled_at,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// ListActivitiesRequest captures list filters and pagination
type ListActivitiesRequest struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Type      string `query:"type"`
	LeadID    int    `query:"lead_id"`
	UserID    int    `query:"user_id"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
}
