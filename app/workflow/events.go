package workflow

// Identity-provider lifecycle events. The provider is the source of
// truth for users and workspaces; these events are the only writers of
// those rows.
const (
	EventUserCreated = "identity/user.created"
	EventUserUpdated = "identity/user.updated"
	EventUserDeleted = "identity/user.deleted"

	EventOrganizationCreated = "identity/organization.created"
	EventOrganizationUpdated = "identity/organization.updated"
	EventOrganizationDeleted = "identity/organization.deleted"
)

// In-app events.
const (
	EventTaskAssigned = "app/task.assigned"
)

// UserPayload carries identity user lifecycle data.
type UserPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// OrganizationPayload carries identity organization lifecycle data.
type OrganizationPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedBy string `json:"created_by"`
	ImageURL  string `json:"image_url"`
}

// TaskAssignedPayload starts the assignment notification workflow.
type TaskAssignedPayload struct {
	TaskID string `json:"taskId"`
	Origin string `json:"origin"`
}
