package domain

// Permission names a capability a staff account may hold. The permission set
// travels inside the JWT and is threaded through every operation as part of
// the Actor, never read from ambient state.
type Permission string

const (
	// PermCoopManage allows ordinary member-office administration: editing
	// members and shares, converting draft users, generating documents.
	PermCoopManage Permission = "coop.manage"
	// PermCoopAdmin allows destructive corrections such as deleting a share
	// ownership record.
	PermCoopAdmin Permission = "coop.admin"
	// PermAccountsManage allows creating login accounts for members.
	PermAccountsManage Permission = "accounts.manage"
	// PermWelcomeDeskView allows the welcome desk search and recording
	// welcome session attendance.
	PermWelcomeDeskView Permission = "welcomedesk.view"
)

// Actor identifies the authenticated caller of an operation together with
// the permissions it holds. Mutations record Actor.UserID in audit entries.
type Actor struct {
	UserID      string       `json:"userID"`
	Username    string       `json:"username"`
	Permissions []Permission `json:"permissions"`
}

// HasPermission reports whether the actor holds the given permission.
// Holding coop.admin implies coop.manage.
func (a Actor) HasPermission(p Permission) bool {
	for _, held := range a.Permissions {
		if held == p {
			return true
		}
		if p == PermCoopManage && held == PermCoopAdmin {
			return true
		}
	}
	return false
}
