// Package stream implements the sliding-window spawner shared by every
// procedurally streamed layer of a run (ground tiles, obstacles, decor).
//
// A Spawner keeps content covering [ref-Behind, ref+Ahead] around a moving
// reference point on the travel axis. It spawns batches at fixed (or drawn)
// steps as the reference advances and releases items that fall behind.
package stream

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/logging"
)

// epsilon absorbs float drift when comparing accumulated positions.
const epsilon = 1e-9

// Anchor is the moving reference point a spawner streams around.
type Anchor interface {
	// Travel returns the anchor's position along the travel axis.
	Travel() float64
}

// Window describes the streaming range around the anchor.
type Window struct {
	Interval     float64 `yaml:"interval"`      // Distance between two spawn batches
	Ahead        float64 `yaml:"ahead"`         // Look-ahead distance that must be filled
	Behind       float64 `yaml:"behind"`        // Items further behind than this are released
	CleanupEvery int     `yaml:"cleanup_every"` // Cleanup cadence in frames (0 or 1 = every frame)
}

// Item is one tracked spawned instance and its position on the travel axis.
type Item[T any] struct {
	Pos   float64
	Value T
}

// BatchFunc produces the items of one spawn batch at pos. It may return none.
type BatchFunc[T any] func(pos float64) []Item[T]

// Stats counts spawner activity over its lifetime.
type Stats struct {
	Batches  int // Batches emitted (including primed ones)
	Spawned  int // Items tracked
	Released int // Items released by cleanup or Clear
}

// Option configures a Spawner.
type Option[T any] func(*Spawner[T])

// WithLogger sets the logger used for diagnostics.
func WithLogger[T any](l *log.Logger) Option[T] {
	return func(s *Spawner[T]) {
		s.logger = logging.OrDiscard(l)
	}
}

// WithIntervalFunc makes the step between batches variable.
// The step is drawn once and kept until a batch consumes it.
func WithIntervalFunc[T any](fn func() float64) Option[T] {
	return func(s *Spawner[T]) {
		s.intervalFn = fn
	}
}

// WithRelease registers a hook called exactly once for every released item.
func WithRelease[T any](fn func(T)) Option[T] {
	return func(s *Spawner[T]) {
		s.release = fn
	}
}

// Spawner is a generic sliding-window spawner. It is not safe for concurrent
// use; a scene drives it from its single tick loop.
type Spawner[T any] struct {
	name       string
	win        Window
	batch      BatchFunc[T]
	intervalFn func() float64
	release    func(T)
	logger     *log.Logger

	anchor   Anchor
	started  bool
	disabled bool
	err      error

	next       float64
	pending    float64
	hasPending bool
	frame      int

	items []Item[T]
	stats Stats
}

// New creates a spawner. It fails with core.ErrMissingDependency when batch
// is nil and with a configuration error when the window is unusable.
func New[T any](name string, win Window, batch BatchFunc[T], opts ...Option[T]) (*Spawner[T], error) {
	if batch == nil {
		return nil, fmt.Errorf("stream: %s: spawn batch: %w", name, core.ErrMissingDependency)
	}

	s := &Spawner[T]{
		name:   name,
		win:    win,
		batch:  batch,
		logger: logging.Discard(),
		items:  make([]Item[T], 0, 32),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.intervalFn == nil && win.Interval <= 0 {
		return nil, fmt.Errorf("stream: %s: interval must be positive, got %v", name, win.Interval)
	}
	if win.Ahead < 0 || win.Behind < 0 {
		return nil, fmt.Errorf("stream: %s: window distances must be non-negative", name)
	}

	return s, nil
}

// Name returns the spawner name used in diagnostics.
func (s *Spawner[T]) Name() string {
	return s.name
}

// Window returns the streaming window.
func (s *Spawner[T]) Window() Window {
	return s.win
}

// Start binds the anchor and sets the first stream position.
// A nil anchor disables the spawner for the rest of its lifetime.
func (s *Spawner[T]) Start(anchor Anchor, origin float64) error {
	if s.disabled {
		return s.err
	}
	if anchor == nil {
		err := fmt.Errorf("stream: %s: player reference: %w", s.name, core.ErrMissingDependency)
		s.Disable(err)
		return err
	}

	s.anchor = anchor
	s.next = origin
	s.hasPending = false
	s.started = true
	return nil
}

// Prime spawns count batches at first, first+Interval, ... and moves the
// stream position to the last one. Used for the initial fill.
func (s *Spawner[T]) Prime(first float64, count int) {
	if s.disabled || count <= 0 {
		return
	}
	step := s.win.Interval
	if step <= 0 {
		step = s.step()
		s.hasPending = false
	}
	pos := first
	for i := 0; i < count; i++ {
		pos = first + float64(i)*step
		s.spawn(pos)
	}
	s.next = pos
}

// Force emits count batches at the following steps regardless of the
// look-ahead. Used for initial spawn attempts placed from a start distance.
func (s *Spawner[T]) Force(count int) int {
	batches := 0
	for i := 0; i < count && !s.disabled; i++ {
		step := s.step()
		if step <= 0 {
			s.Disable(fmt.Errorf("stream: %s: drawn interval must be positive, got %v", s.name, step))
			break
		}
		s.next += step
		s.hasPending = false
		s.spawn(s.next)
		batches++
	}
	return batches
}

// Update runs one frame: Advance every frame, Cleanup on the configured cadence.
// It does nothing before Start or once disabled.
func (s *Spawner[T]) Update() {
	if s.disabled || !s.started {
		return
	}

	ref := s.anchor.Travel()
	s.Advance(ref)

	s.frame++
	every := s.win.CleanupEvery
	if every <= 1 || s.frame%every == 0 {
		s.Cleanup(ref)
	}
}

// Advance emits one batch per step while the step stays within the look-ahead
// (next+step <= ref+Ahead). Calling it again with the same ref spawns nothing.
// Returns the number of batches emitted.
func (s *Spawner[T]) Advance(ref float64) int {
	if s.disabled {
		return 0
	}

	limit := ref + s.win.Ahead
	batches := 0
	for {
		step := s.step()
		if step <= 0 {
			s.Disable(fmt.Errorf("stream: %s: drawn interval must be positive, got %v", s.name, step))
			return batches
		}
		if s.next+step > limit+epsilon {
			return batches
		}
		s.next += step
		s.hasPending = false
		s.spawn(s.next)
		batches++
	}
}

// Cleanup releases every tracked item positioned before ref-Behind.
// Returns the number of released items.
func (s *Spawner[T]) Cleanup(ref float64) int {
	cutoff := ref - s.win.Behind
	kept := s.items[:0]
	released := 0
	for _, it := range s.items {
		if it.Pos < cutoff {
			s.releaseItem(it)
			released++
			continue
		}
		kept = append(kept, it)
	}
	// Drop references held by the tail of the backing array.
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = Item[T]{}
	}
	s.items = kept

	if released > 0 {
		s.logger.Debug("released items", "spawner", s.name, "count", released, "cutoff", cutoff)
	}
	return released
}

// Clear releases every tracked item.
func (s *Spawner[T]) Clear() {
	for _, it := range s.items {
		s.releaseItem(it)
	}
	s.items = s.items[:0]
}

// Remove releases tracked items matching pred ahead of the cleanup sweep.
// Returns the number removed.
func (s *Spawner[T]) Remove(pred func(Item[T]) bool) int {
	kept := s.items[:0]
	removed := 0
	for _, it := range s.items {
		if pred(it) {
			s.releaseItem(it)
			removed++
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	return removed
}

// Disable stops the spawner permanently and logs the reason.
func (s *Spawner[T]) Disable(err error) {
	if s.disabled {
		return
	}
	s.disabled = true
	s.err = err
	s.logger.Error("spawner disabled", "spawner", s.name, "error", err)
}

// Enabled reports whether the spawner is still operating.
func (s *Spawner[T]) Enabled() bool {
	return !s.disabled
}

// Err returns the reason the spawner was disabled, if any.
func (s *Spawner[T]) Err() error {
	return s.err
}

// Items returns the live tracked items. The slice must not be modified.
func (s *Spawner[T]) Items() []Item[T] {
	return s.items
}

// Len returns the number of live tracked items.
func (s *Spawner[T]) Len() int {
	return len(s.items)
}

// Next returns the current stream position (the last spawned step).
func (s *Spawner[T]) Next() float64 {
	return s.next
}

// SetNext moves the stream position, dropping any pending drawn step.
func (s *Spawner[T]) SetNext(pos float64) {
	s.next = pos
	s.hasPending = false
}

// Stats returns lifetime counters.
func (s *Spawner[T]) Stats() Stats {
	return s.stats
}

// step returns the pending step, drawing a new one if needed.
func (s *Spawner[T]) step() float64 {
	if s.intervalFn == nil {
		return s.win.Interval
	}
	if !s.hasPending {
		s.pending = s.intervalFn()
		s.hasPending = true
	}
	return s.pending
}

func (s *Spawner[T]) spawn(pos float64) {
	batch := s.batch(pos)
	s.stats.Batches++
	s.stats.Spawned += len(batch)
	s.items = append(s.items, batch...)
}

func (s *Spawner[T]) releaseItem(it Item[T]) {
	s.stats.Released++
	if s.release != nil {
		s.release(it.Value)
	}
}
