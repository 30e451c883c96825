package ledger

import "github.com/aquaworks/AquaDesk/app/models"

// Actor identifies the user performing a ledger operation.
type Actor struct {
	ID   uint
	Role string
}

// Action names a privileged ledger capability.
type Action string

const (
	ActionRecord      Action = "record"       // create readings, receipts, expenses, settlements
	ActionPost        Action = "post"         // draft -> posted
	ActionUnpost      Action = "unpost"       // posted -> draft
	ActionModify      Action = "modify"       // edit/delete draft records
	ActionClosePeriod Action = "close_period" // advance the period-close cutoff
	ActionManageUsers Action = "manage_users"
)

// capabilities is the single source of truth for role permissions. Every
// mutating operation consults Can instead of comparing role strings inline.
var capabilities = map[string]map[Action]bool{
	models.ROLE_ADMIN: {
		ActionRecord:      true,
		ActionPost:        true,
		ActionUnpost:      true,
		ActionModify:      true,
		ActionClosePeriod: true,
		ActionManageUsers: true,
	},
	models.ROLE_ACCOUNTANT: {
		ActionRecord: true,
		ActionPost:   true,
		ActionModify: true,
	},
	models.ROLE_CLERK: {
		ActionRecord: true,
		ActionModify: true,
	},
}

// Can reports whether the actor's role grants the action.
func (a Actor) Can(action Action) bool {
	grants, ok := capabilities[a.Role]
	if !ok {
		return false
	}
	return grants[action]
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.ROLE_ADMIN
}

func (a Actor) require(action Action) error {
	if !a.Can(action) {
		return permissionf("role %q may not %s", a.Role, action)
	}
	return nil
}
