// Package camera implements the offset follow camera.
package camera

import "github.com/vovakirdan/tui-runner/internal/core"

// Target is anything the camera can follow.
type Target interface {
	Position() core.Vec3
}

// Follow keeps a fixed offset from its target.
type Follow struct {
	offset core.Vec3
	target Target
	pos    core.Vec3
}

// NewFollow creates a camera placed at offset from the origin.
func NewFollow(offset core.Vec3) *Follow {
	return &Follow{offset: offset, pos: offset}
}

// Attach sets the target and snaps to it. A nil target leaves the camera
// where it is.
func (f *Follow) Attach(t Target) {
	f.target = t
	f.Update()
}

// Update moves the camera to target + offset. No-op without a target.
func (f *Follow) Update() {
	if f.target == nil {
		return
	}
	f.pos = f.target.Position().Add(f.offset)
}

// Position returns the camera position.
func (f *Follow) Position() core.Vec3 { return f.pos }

// Offset returns the follow offset.
func (f *Follow) Offset() core.Vec3 { return f.offset }
