// Package authz enforces the fixed two-role access model. Roles are static
// (employee, manager) and a manager inherits every employee permission.
package authz

import "github.com/casbin/casbin/v2"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// NewEnforcer loads the role model and policy from disk.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath, policyPath)
}
