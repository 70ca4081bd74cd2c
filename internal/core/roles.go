package core

import "fmt"

// Role identifies a well-known object in a scene.
// Components look collaborators up by role once, at scene setup.
type Role int

const (
	RolePlayer Role = iota + 1
	RoleCamera
	RoleGround
	RoleObstacles
	RoleDecor
	RoleScore
)

// String returns the role name used in diagnostics.
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleCamera:
		return "camera"
	case RoleGround:
		return "ground"
	case RoleObstacles:
		return "obstacles"
	case RoleDecor:
		return "decor"
	case RoleScore:
		return "score"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Roles maps roles to the objects filling them in one scene.
type Roles struct {
	byRole map[Role]any
}

// NewRoles creates an empty role set.
func NewRoles() *Roles {
	return &Roles{byRole: make(map[Role]any)}
}

// Bind assigns obj to the role, replacing any previous binding.
// Binding nil removes the role.
func (r *Roles) Bind(role Role, obj any) {
	if obj == nil {
		delete(r.byRole, role)
		return
	}
	r.byRole[role] = obj
}

// Lookup returns the object bound to role.
func (r *Roles) Lookup(role Role) (any, bool) {
	obj, ok := r.byRole[role]
	return obj, ok
}

// Resolve returns the object bound to role as T.
// Fails with ErrMissingDependency when the role is unbound and
// ErrMissingComponent when the bound object is not a T.
func Resolve[T any](r *Roles, role Role) (T, error) {
	var zero T
	obj, ok := r.Lookup(role)
	if !ok {
		return zero, fmt.Errorf("core: role %s: %w", role, ErrMissingDependency)
	}
	typed, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("core: role %s is %T: %w", role, obj, ErrMissingComponent)
	}
	return typed, nil
}
