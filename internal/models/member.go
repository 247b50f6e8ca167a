package models

type MemberRole string

const (
	MemberRoleAdmin   MemberRole = "admin"
	MemberRoleManager MemberRole = "manager"
	MemberRoleMember  MemberRole = "member"
)

// Member is a user record. Exactly one member per dataset should be the
// current user.
type Member struct {
	Base
	Name          string     `json:"name" validate:"required"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Role          MemberRole `json:"role" validate:"required,oneof=admin manager member"`
	TeamIDs       []string   `json:"teamIds"`
	IsCurrentUser bool       `json:"isCurrentUser"`
}
