package models

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

type Member struct {
	ID     string
	Name   string
	Email  string
	Avatar string
	Role   Role
	// PasswordHash is an argon2id hash of the demo password.
	PasswordHash string
}

type Project struct {
	ID   string
	Name string
}

// Viewer is whoever is looking at the board right now.
type Viewer struct {
	ID   string
	Role Role
}
