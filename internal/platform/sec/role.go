// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Roles

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator" // reviews verification requests
	RoleMember    UserRole = "member"
)

var roleRank = map[UserRole]int{
	RoleMember:    1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// AtLeast reports whether r ranks at or above target. Unknown roles rank
// below every known one.
func (r UserRole) AtLeast(target UserRole) bool {
	return roleRank[r] >= roleRank[target]
}

// ParseRole maps a stored value to a known role; anything else is a member.
func ParseRole(value string) UserRole {
	if _, ok := roleRank[UserRole(value)]; ok {
		return UserRole(value)
	}
	return RoleMember
}
