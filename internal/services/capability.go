package services

import "github.com/adanyl0v/go-taskboard/internal/models"

// Capabilities is what a viewer may do on the board. Every gate in the
// application consults ResolveCapabilities instead of checking roles inline.
type Capabilities struct {
	ViewAll  bool
	QuickAdd bool
	FullEdit bool
	Delete   bool
	// ChangeAnyStatus allows status changes on tasks the viewer isn't
	// assigned to.
	ChangeAnyStatus bool
}

func ResolveCapabilities(viewer models.Viewer) Capabilities {
	switch viewer.Role {
	case models.RoleAdmin:
		return Capabilities{
			ViewAll:         true,
			QuickAdd:        true,
			FullEdit:        true,
			Delete:          true,
			ChangeAnyStatus: true,
		}
	default:
		return Capabilities{}
	}
}

// CanSee reports whether task is visible to viewer.
func CanSee(viewer models.Viewer, task *models.Task) bool {
	return ResolveCapabilities(viewer).ViewAll || task.IsAssignedTo(viewer.ID)
}

// CanChangeStatus reports whether viewer may move task to another status.
func CanChangeStatus(viewer models.Viewer, task *models.Task) bool {
	return ResolveCapabilities(viewer).ChangeAnyStatus || task.IsAssignedTo(viewer.ID)
}
