package models

import "time"

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// UserSummary is the compact user expansion embedded in lead and
// activity responses.
type UserSummary struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID              int                `json:"id"`
	FirstName       string             `json:"first_name"`
	LastName        string             `json:"last_name"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone,omitempty"`
	Company         string             `json:"company,omitempty"`
	Title           string             `json:"title,omitempty"`
	Status          string             `json:"status"`
	StatusChangedAt time.Time          `json:"status_changed_at"`
	Source          string             `json:"source,omitempty"`
	EstimatedValue  float64            `json:"estimated_value"`
	Notes           string             `json:"notes,omitempty"`
	AssignedTo      *UserSummary       `json:"assigned_to,omitempty"`
	CreatedBy       *UserSummary       `json:"created_by,omitempty"`
	Activities      []ActivityResponse `json:"activities,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// LeadListResponse is a paginated list of leads
type LeadListResponse struct {
	Data       []LeadResponse `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// CreateLeadRequest represents a request to create a lead
type CreateLeadRequest struct {
	FirstName      string   `json:"first_name" validate:"required"`
	LastName       string   `json:"last_name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone,omitempty"`
	Company        string   `json:"company,omitempty"`
	Title          string   `json:"title,omitempty"`
	Status         string   `json:"status,omitempty" validate:"omitempty,oneof=new contacted qualified proposal negotiation won lost"`
	Source         string   `json:"source,omitempty"`
	EstimatedValue *float64 `json:"estimated_value,omitempty" validate:"omitempty,gte=0"`
	Notes          string   `json:"notes,omitempty"`
	AssignedToID   *int     `json:"assigned_to_id,omitempty" validate:"omitempty,gt=0"`
}

// UpdateLeadRequest represents a partial lead update. Nil fields are
// left untouched.
type UpdateLeadRequest struct {
	FirstName      *string  `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName       *string  `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Email          *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string  `json:"phone,omitempty"`
	Company        *string  `json:"company,omitempty"`
	Title          *string  `json:"title,omitempty"`
	Status         *string  `json:"status,omitempty" validate:"omitempty,oneof=new contacted qualified proposal negotiation won lost"`
	Source         *string  `json:"source,omitempty"`
	EstimatedValue *float64 `json:"estimated_value,omitempty" validate:"omitempty,gte=0"`
	Notes          *string  `json:"notes,omitempty"`
	AssignedToID   *int     `json:"assigned_to_id,omitempty" validate:"omitempty,gt=0"`
}

// AssignLeadRequest represents an explicit reassignment request
type AssignLeadRequest struct {
	AssignedToID int `json:"assigned_to_id" validate:"required,gt=0"`
}

// UpdateLeadStatusRequest represents a status-only update
type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListLeadsRequest captures list filters, sorting and pagination
type ListLeadsRequest struct {
	Page         int    `query:"page"`
	Limit        int    `query:"limit"`
	Status       string `query:"status"`
	AssignedToID int    `query:"assigned_to_id"`
	Search       string `query:"search"`
	SortBy       string `query:"sort_by"`
	SortOrder    string `query:"sort_order"`
}
