package domain

// Realtime event names broadcast to connected clients.
const (
	EventLeadCreated       = "lead:created"
	EventLeadUpdated       = "lead:updated"
	EventLeadDeleted       = "lead:deleted"
	EventLeadAssigned      = "lead:assigned"
	EventLeadStatusUpdated = "lead:statusUpdated"

	EventActivityCreated = "activity:created"
	EventActivityUpdated = "activity:updated"
	EventActivityDeleted = "activity:deleted"
)
