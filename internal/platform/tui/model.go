package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/logging"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// Options configures a Model.
type Options struct {
	Env     registry.Env
	Store   *storage.Store // nil disables run history
	Runtime core.RuntimeConfig
	Scene   string // scene loaded first

	// ScreenshotDir receives ctrl+s dumps. Empty uses ~/.runner/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model driving one scene at a time. Scenes ask for
// a change through StepResult.NextScene; the model creates and loads it.
type Model struct {
	env        registry.Env
	store      *storage.Store
	logger     *log.Logger
	scene      registry.Scene
	screen     *core.Screen
	config     core.RuntimeConfig
	fixedSeed  bool
	shotDir    string
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	runSaved   bool // Whether the run has been saved for the current game over
}

// NewModel creates the model and its first scene.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Runtime
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	scene, err := registry.Create(opts.Scene, opts.Env)
	if err != nil {
		return Model{}, err
	}

	return Model{
		env:        opts.Env,
		store:      opts.Store,
		logger:     logging.OrDiscard(opts.Env.Logger),
		scene:      scene,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		fixedSeed:  fixed,
		shotDir:    opts.ScreenshotDir,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}, nil
}

// Init loads the first scene and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.scene.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes one simulation tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.reload()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.scene.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	if result.NextScene != "" {
		m.load(result.NextScene)
	}

	return m, tickCmd(m.config.TickRate)
}

// load replaces the current scene by the named one.
func (m *Model) load(id string) {
	scene, err := registry.Create(id, m.env)
	if err != nil {
		m.logger.Error("cannot load scene", "scene", id, "error", err)
		return
	}
	m.logger.Info("scene change", "from", m.scene.ID(), "to", id)
	m.scene = scene
	m.reload()
}

// reload resets the current scene, with a fresh seed unless one was fixed.
func (m *Model) reload() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.scene.Reset(m.config)
	m.gameState = m.scene.State()
	m.runSaved = false
}

func (m *Model) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	_, err := m.store.SaveRun(storage.RunRecord{
		SceneID:  m.scene.ID(),
		Score:    m.gameState.Score,
		Distance: m.gameState.Distance,
		Duration: m.gameState.Elapsed,
		Seed:     m.config.Seed,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.scene.Render(m.screen)

	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("screenshot skipped", "error", err)
			return
		}
		dir = filepath.Join(home, ".runner", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.scene.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
	}
}

// Scene returns the active scene.
func (m Model) Scene() registry.Scene {
	return m.scene
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.scene.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program on the local terminal.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
