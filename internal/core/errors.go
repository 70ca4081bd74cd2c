package core

import "errors"

// Configuration errors shared by all components.
var (
	// ErrMissingDependency means a required reference (player, template list)
	// was absent at initialization. The owning component disables itself.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrMissingComponent means a collided object lacks an expected capability.
	// The event is skipped and state stays unchanged.
	ErrMissingComponent = errors.New("missing component")
)
