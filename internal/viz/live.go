package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sourcespace/internal/backdrop"
	"github.com/san-kum/sourcespace/internal/config"
	"github.com/san-kum/sourcespace/internal/export"
	"github.com/san-kum/sourcespace/internal/frame"
	"github.com/san-kum/sourcespace/internal/metrics"
	"github.com/san-kum/sourcespace/internal/palette"
)

const (
	historyCapacity = 600
	hudHeight       = 2
	statsWidth      = 36
	defaultGIFPath  = "sourcespace.gif"
)

// Options configures a Model.
type Options struct {
	Config  *config.Config
	Logger  *log.Logger
	GIFPath string
}

// viewport is shared with the scene so Mount sizes the surface to the
// latest window.
type viewport struct {
	cols, rows int
}

// Model is the live backdrop program.
type Model struct {
	cfg      *config.Config
	scene    *backdrop.Scene
	src      *frame.TeaSource
	view     *viewport
	series   *metrics.Series
	recorder *export.Recorder
	logger   *log.Logger
	gifPath  string

	theme         string
	width, height int
	paused        bool
	showStats     bool
	recording     bool
	status        string
}

func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	gifPath := opts.GIFPath
	if gifPath == "" {
		gifPath = defaultGIFPath
	}

	src := frame.NewTeaSource(cfg.FPS)
	view := &viewport{}
	scene := backdrop.New(backdrop.Options{
		Field:    cfg.Field(),
		Stars:    cfg.Stars.Count,
		FPS:      cfg.FPS,
		Source:   src,
		Viewport: func() (int, int) { return view.cols, view.rows },
		NewRand:  cfg.Streams(),
		Logger:   logger,
	})

	return Model{
		cfg:      cfg,
		scene:    scene,
		src:      src,
		view:     view,
		series:   metrics.NewSeries(historyCapacity, metrics.Defaults()...),
		recorder: export.NewRecorder(cfg.FPS),
		logger:   logger.WithPrefix("viz"),
		gifPath:  gifPath,
		theme:    palette.Normalize(cfg.Theme),
	}
}

// Scene exposes the underlying scene.
func (m Model) Scene() *backdrop.Scene { return m.scene }

// Init waits for the first WindowSizeMsg before mounting.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
		if m.scene.Phase() == backdrop.Uninitialized && !m.paused {
			m.mount()
		}
		return m, m.src.Cmd()

	case frame.FrameMsg:
		if m.src.Deliver(msg) {
			m.afterFrame()
		}
		return m, m.src.Cmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			m.scene.Unmount()
			return m, tea.Quit
		case "t":
			m.theme = palette.Next(m.theme)
			if m.scene.Phase() == backdrop.Active {
				if err := m.scene.SetTheme(m.theme); err != nil {
					m.logger.Error("theme change failed", "err", err)
				}
				m.series.Reset()
			}
		case " ":
			if m.paused {
				m.paused = false
				m.mount()
			} else {
				m.paused = true
				m.scene.Unmount()
			}
		case "s":
			m.showStats = !m.showStats
			m.relayout()
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.recorder.Reset()
				m.status = "recording"
			}
		}
		return m, m.src.Cmd()
	}
	return m, nil
}

func (m *Model) mount() {
	if err := m.scene.Mount(m.theme); err != nil {
		m.logger.Error("mount failed", "err", err)
		return
	}
	m.series.Reset()
}

// relayout sizes the canvas to the window minus the HUD and, when shown,
// the stats panel.
func (m *Model) relayout() {
	cols, rows := m.width, m.height-hudHeight
	if m.showStats {
		cols -= statsWidth
	}
	m.view.cols, m.view.rows = max(cols, 0), max(rows, 0)
	m.scene.Resize(m.view.cols, m.view.rows)
}

func (m *Model) afterFrame() {
	f, ctrl, drv := m.scene.Field(), m.scene.Controller(), m.scene.Driver()
	if f == nil || ctrl == nil || drv == nil {
		return
	}
	w, h := ctrl.Size()
	m.series.Observe(metrics.NewSample(drv.Frames(), f, w, h))

	if m.recording && !m.recorder.Capture(m.scene.Canvas()) {
		m.stopRecording()
	}
}

func (m *Model) stopRecording() {
	m.recording = false
	if err := m.recorder.Save(m.gifPath); err != nil {
		m.logger.Error("gif save failed", "path", m.gifPath, "err", err)
		m.status = "gif failed"
		return
	}
	m.logger.Info("gif saved", "path", m.gifPath, "frames", m.recorder.Len())
	m.status = fmt.Sprintf("saved %s", m.gifPath)
	m.recorder.Reset()
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "initialising..."
	}
	theme := m.scene.Theme()
	if m.paused {
		theme = palette.Lookup(m.theme)
	}
	st := newStyles(theme)

	body := m.renderCanvas(theme)
	if m.showStats {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderStats(st))
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderHUD(theme, st))
}

func (m Model) renderCanvas(theme palette.Theme) string {
	if c := m.scene.Canvas(); c != nil && !m.paused {
		return c.Render()
	}
	blank := lipgloss.NewStyle().
		Background(theme.Background).
		Width(m.view.cols).
		Height(m.view.rows)
	return blank.Render("")
}

func (m Model) renderHUD(theme palette.Theme, st styles) string {
	left := st.title.Render(fmt.Sprintf("%s %s", theme.Emoji, theme.Name)) +
		st.subtle.Render("  "+theme.Description)

	var right string
	switch {
	case m.recording:
		right = st.recording.Render(fmt.Sprintf("● REC %d", m.recorder.Len()))
	case m.paused:
		right = st.paused.Render("paused")
	case m.status != "":
		right = st.subtle.Render(m.status)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	line := left + st.subtle.Render(strings.Repeat(" ", max(gap, 1))) + right
	help := st.keyHint.Render("t theme · space pause · s stats · g gif · q quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		st.hud.Width(m.width).Render(line),
		st.hud.Width(m.width).Render(help))
}

func (m Model) renderStats(st styles) string {
	var b strings.Builder
	b.WriteString(st.title.Render("constellation") + "\n\n")

	points := m.series.Points()
	row := func(label, value string) {
		b.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	particles := 0
	if f := m.scene.Field(); f != nil {
		particles = f.Len()
	}
	row("particles", fmt.Sprintf("%d", particles))
	if len(points) > 0 {
		last := points[len(points)-1]
		row("frame", fmt.Sprintf("%d", last.Frame))
		row("edges", fmt.Sprintf("%d", last.Edges))
		row("energy", fmt.Sprintf("%.3f", last.Energy))
		row("mean speed", fmt.Sprintf("%.3f", last.MeanSpeed))
		row("escapes", fmt.Sprintf("%d", last.Escapes))
	}

	if hist := m.series.EdgeHistory(); len(hist) > 1 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(5),
			asciigraph.Width(statsWidth-14),
			asciigraph.Caption("edges"))
		b.WriteString("\n" + st.graph.Render(chart))
	}

	return st.panel.
		Width(statsWidth - 2).
		Height(max(m.view.rows-2, 0)).
		Render(b.String())
}
