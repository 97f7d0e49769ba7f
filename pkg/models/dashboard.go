package models

// DashboardStats holds the headline dashboard numbers for one actor's
// visibility scope.
type DashboardStats struct {
	TotalLeads      int     `json:"total_leads"`
	NewLeads        int     `json:"new_leads"`
	QualifiedLeads  int     `json:"qualified_leads"`
	WonLeads        int     `json:"won_leads"`
	LostLeads       int     `json:"lost_leads"`
	TotalValue      float64 `json:"total_value"`
	WonValue        float64 `json:"won_value"`
	ActivitiesToday int     `json:"activities_today"`
	ConversionRate  float64 `json:"conversion_rate"`
}

// StatusCount is a leads-per-status aggregate row
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// SourceCount is a leads-per-source aggregate row
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// PipelineStage is one stage of the open sales pipeline
type PipelineStage struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
}

// TeamMemberPerformance aggregates one user's assigned-lead outcomes
type TeamMemberPerformance struct {
	User       UserSummary `json:"user"`
	Role       string      `json:"role"`
	TotalLeads int         `json:"total_leads"`
	TotalValue float64     `json:"total_value"`
	WonLeads   int         `json:"won_leads"`
	WonValue   float64     `json:"won_value"`
}
