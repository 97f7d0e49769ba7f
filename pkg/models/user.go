package models

// UserListResponse is a paginated list of users
type UserListResponse struct {
	Data       []UserResponse `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// ListUsersRequest captures user list filters and pagination
type ListUsersRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Role   string `query:"role"`
	Search string `query:"search"`
}

// UpdateUserRequest represents a partial user update. Email, role and
// is_active changes require an admin actor.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=admin manager sales_executive"`
	IsActive  *bool   `json:"is_active,omitempty"`
}
