// Package access answers section authorization questions for the assistant.
package access

import "foodops-assistant/internal/models"

// Checker decides whether a user may view data scoped to a section. The
// dispatcher always consults it before touching the database.
type Checker interface {
	CanAccessSection(user *models.UserInfo, section int) bool
}

// RoleChecker is the production rule: privileged roles see every section,
// everyone else only their assigned list.
type RoleChecker struct{}

func NewRoleChecker() *RoleChecker {
	return &RoleChecker{}
}

func (c *RoleChecker) CanAccessSection(user *models.UserInfo, section int) bool {
	if user == nil {
		return false
	}

	switch user.Role {
	case "admin", "manager":
		return true
	}

	return user.HasSection(section)
}
