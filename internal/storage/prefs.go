package storage

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// Prefs object and property names.
const (
	bestObject = "best"
	DefaultApp = "tui-runner"
)

// Prefs stores small per-user values (the best score) through gdata.
// A nil manager keeps values in memory only.
type Prefs struct {
	manager *gdata.Manager
	scene   string

	mu  sync.Mutex
	mem map[string]int
}

// OpenPrefs opens the per-user data directory of app. The best score is kept
// per scene.
func OpenPrefs(app, scene string) (*Prefs, error) {
	if app == "" {
		app = DefaultApp
	}
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open prefs %q: %w", app, err)
	}
	return &Prefs{manager: m, scene: scene}, nil
}

// MemoryPrefs returns prefs that are never written to disk.
func MemoryPrefs(scene string) *Prefs {
	return &Prefs{scene: scene, mem: make(map[string]int)}
}

// BestScore returns the stored best score, 0 when none was saved.
func (p *Prefs) BestScore() (int, error) {
	return p.Int(bestObject)
}

// SetBestScore stores a new best score.
func (p *Prefs) SetBestScore(score int) error {
	return p.SetInt(bestObject, score)
}

// Int returns the integer stored under object for this scene.
func (p *Prefs) Int(object string) (int, error) {
	if p.manager == nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.mem[object], nil
	}

	if !p.manager.ObjectPropExists(object, p.scene) {
		return 0, nil
	}
	data, err := p.manager.LoadObjectProp(object, p.scene)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load %s/%s: %w", object, p.scene, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("storage: corrupt %s/%s: %w", object, p.scene, err)
	}
	return v, nil
}

// SetInt stores v under object for this scene.
func (p *Prefs) SetInt(object string, v int) error {
	if p.manager == nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.mem == nil {
			p.mem = make(map[string]int)
		}
		p.mem[object] = v
		return nil
	}

	if err := p.manager.SaveObjectProp(object, p.scene, []byte(strconv.Itoa(v))); err != nil {
		return fmt.Errorf("storage: cannot save %s/%s: %w", object, p.scene, err)
	}
	return nil
}
