package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyUserID     = "user_id"
	ContextKeyMemberRole = "member_role"
	ContextKeyOrgID      = "organization_id"
)

const MinPasswordLength = 8

// Defaults applied at creation time.
const (
	DefaultProjectStatus = "planning"
	DefaultProjectColor  = "#3B82F6"
	DefaultTaskStatus    = "todo"
	DefaultTaskPriority  = "medium"
)

// TaskStatusDone triggers the completed_at side effect on update.
const TaskStatusDone = "done"
