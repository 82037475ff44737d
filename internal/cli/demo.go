package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltip/pkg/geom"
	"github.com/matzehuels/tooltip/pkg/observability"
	"github.com/matzehuels/tooltip/pkg/placement"
	"github.com/matzehuels/tooltip/pkg/scheduler"
	"github.com/matzehuels/tooltip/pkg/tooltip"
)

const (
	demoStatusLines = 2
	demoWidth       = 80
	demoHeight      = 24

	targetButton tooltip.TargetID = "button"
	targetStatus tooltip.TargetID = "status"
)

// demoCommand creates the demo command, an interactive terminal playground.
func (c *CLI) demoCommand() *cobra.Command {
	var configPath, place string
	var auto bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Move a target around the terminal and watch tooltips follow",
		Long: `Run an interactive demo that uses the terminal as the viewport.

Keys:
  arrows, hjkl   move the target
  tab/shift+tab  cycle the requested placement
  a              toggle auto-flip
  space          show or hide the tooltip
  x              remove or restore the status target
  q              quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := loadConfig(configPath, logger)
			if err != nil {
				return err
			}
			if place != "" {
				cfg.Place = place
			}
			if cmd.Flags().Changed("auto") {
				cfg.Auto = auto
			}

			st := newStats()
			observability.SetPlacementHooks(st)
			observability.SetSchedulerHooks(st)
			defer observability.Reset()

			m, err := newDemoModel(cfg, logger, st)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/tooltip/config.toml)")
	cmd.Flags().StringVarP(&place, "place", "p", "", "initial placement (default from config)")
	cmd.Flags().BoolVarP(&auto, "auto", "a", true, "start with auto-flip on")
	_ = cmd.RegisterFlagCompletionFunc("place", completePlacements)

	return cmd
}

// =============================================================================
// Frames
// =============================================================================

// frameMsg is delivered when a requested frame is due.
type frameMsg struct{}

// teaFrames implements scheduler.FrameRequester on top of the bubbletea
// event loop. Callbacks queue up during Update and run when the next
// frameMsg arrives, so the scheduler only ever runs on the program's
// goroutine.
type teaFrames struct {
	pending []func()
	ticking bool
}

func (f *teaFrames) RequestFrame(fn func()) {
	f.pending = append(f.pending, fn)
}

// cmd returns a tick for pending callbacks, or nil when one is already
// outstanding or nothing is queued.
func (f *teaFrames) cmd() tea.Cmd {
	if f.ticking || len(f.pending) == 0 {
		return nil
	}
	f.ticking = true
	return tea.Tick(scheduler.DefaultFrameDelay, func(time.Time) tea.Msg { return frameMsg{} })
}

func (f *teaFrames) run() {
	fns := f.pending
	f.pending = nil
	f.ticking = false
	for _, fn := range fns {
		fn()
	}
}

// =============================================================================
// Host
// =============================================================================

// termHost is a tooltip.Host whose coordinate space is terminal cells.
type termHost struct {
	viewport geom.Rect
	targets  map[tooltip.TargetID]geom.Rect
	mounted  map[*tooltip.Tooltip]bool
	moves    map[*tooltip.Tooltip]placement.Result
	classes  map[*tooltip.Tooltip][]string
}

func newTermHost(width, height int) *termHost {
	return &termHost{
		viewport: terminalViewport(width, height),
		targets:  map[tooltip.TargetID]geom.Rect{},
		mounted:  map[*tooltip.Tooltip]bool{},
		moves:    map[*tooltip.Tooltip]placement.Result{},
		classes:  map[*tooltip.Tooltip][]string{},
	}
}

func terminalViewport(width, height int) geom.Rect {
	return geom.NewRect(0, 0, float64(width), float64(max(height-demoStatusLines, 1)))
}

func (h *termHost) Viewport() geom.Rect { return h.viewport }

// Measure returns the content size plus a rounded border and one cell of
// horizontal padding.
func (h *termHost) Measure(t *tooltip.Tooltip) geom.Size {
	return geom.Size{
		Width:  float64(lipgloss.Width(t.Content()) + 4),
		Height: float64(lipgloss.Height(t.Content()) + 2),
	}
}

// DefaultSpacing keeps one empty cell between target and tooltip.
func (h *termHost) DefaultSpacing(*tooltip.Tooltip) (float64, bool) { return 1, true }

func (h *termHost) TargetRect(id tooltip.TargetID) (geom.Rect, bool) {
	r, ok := h.targets[id]
	return r, ok
}

func (h *termHost) Mount(t *tooltip.Tooltip)   { h.mounted[t] = true }
func (h *termHost) Unmount(t *tooltip.Tooltip) { delete(h.mounted, t) }

func (h *termHost) Move(t *tooltip.Tooltip, res placement.Result) { h.moves[t] = res }

func (h *termHost) UpdateClasses(t *tooltip.Tooltip, d tooltip.ClassDiff) {
	cl := slices.DeleteFunc(h.classes[t], func(c string) bool { return slices.Contains(d.Remove, c) })
	for _, c := range d.Add {
		if !slices.Contains(cl, c) {
			cl = append(cl, c)
		}
	}
	h.classes[t] = cl
}

// =============================================================================
// Model
// =============================================================================

// demoModel is the bubbletea model behind the demo command.
type demoModel struct {
	host   *termHost
	frames *teaFrames
	sched  *scheduler.Scheduler
	stats  *stats
	logger *log.Logger

	main   *tooltip.Tooltip
	status *tooltip.Tooltip

	width, height int
	placeIdx      int
	statusRemoved bool
	err           error
}

func newDemoModel(cfg tooltip.Config, logger *log.Logger, st *stats) (*demoModel, error) {
	req, err := cfg.Placement()
	if err != nil {
		return nil, err
	}

	m := &demoModel{
		host:     newTermHost(demoWidth, demoHeight),
		frames:   &teaFrames{},
		stats:    st,
		logger:   logger,
		width:    demoWidth,
		height:   demoHeight,
		placeIdx: slices.Index(placement.All(), req),
	}
	m.sched = scheduler.New(m.frames, scheduler.WithLogger(logger))
	m.host.targets[targetButton] = geom.NewRect(34, 10, 12, 3)
	m.host.targets[targetStatus] = m.statusTarget()

	if m.main, err = tooltip.New(m.host, "Save changes\nctrl+s", cfg,
		tooltip.WithLogger(logger), tooltip.WithScheduler(m.sched)); err != nil {
		return nil, err
	}

	statusCfg := cfg
	statusCfg.Place = "right"
	statusCfg.Auto = true
	statusCfg.TypeClass = "warning"
	if m.status, err = tooltip.New(m.host, "Offline", statusCfg,
		tooltip.WithLogger(logger), tooltip.WithScheduler(m.sched)); err != nil {
		return nil, err
	}

	for _, a := range []struct {
		t  *tooltip.Tooltip
		id tooltip.TargetID
	}{{m.main, targetButton}, {m.status, targetStatus}} {
		if err := a.t.Attach(a.id); err != nil {
			return nil, err
		}
		if err := a.t.Show(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// statusTarget pins the status target to the bottom-right corner.
func (m *demoModel) statusTarget() geom.Rect {
	vp := m.host.viewport
	return geom.NewRect(vp.Right-10, vp.Bottom-3, 8, 1)
}

func (m *demoModel) Init() tea.Cmd {
	return nil
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.main.Destroy()
			m.status.Destroy()
			return m, tea.Quit
		case "up", "k":
			m.moveTarget(0, -1)
		case "down", "j":
			m.moveTarget(0, 1)
		case "left", "h":
			m.moveTarget(-2, 0)
		case "right", "l":
			m.moveTarget(2, 0)
		case "tab":
			m.cyclePlacement(1)
		case "shift+tab":
			m.cyclePlacement(-1)
		case "a":
			m.err = m.main.SetAuto(!m.main.Config().Auto)
		case " ", "space":
			m.err = m.main.Toggle()
		case "x":
			m.toggleStatusTarget()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.host.viewport = terminalViewport(msg.Width, msg.Height)
		if !m.statusRemoved {
			m.host.targets[targetStatus] = m.statusTarget()
		}
		m.sched.NotifyViewportChanged()
	case frameMsg:
		m.frames.run()
	}

	return m, m.frames.cmd()
}

// moveTarget shifts the button by (dx, dy) cells, keeping it inside the
// viewport. Like a scroll, the move is reported as a viewport change.
func (m *demoModel) moveTarget(dx, dy float64) {
	r := m.host.targets[targetButton]
	vp := m.host.viewport
	left := min(max(r.Left+dx, vp.Left), vp.Right-r.Width)
	top := min(max(r.Top+dy, vp.Top), vp.Bottom-r.Height)
	m.host.targets[targetButton] = geom.NewRect(left, top, r.Width, r.Height)
	m.sched.NotifyViewportChanged()
}

func (m *demoModel) cyclePlacement(step int) {
	all := placement.All()
	m.placeIdx = (m.placeIdx + step + len(all)) % len(all)
	m.err = m.main.Place(all[m.placeIdx].String())
}

// toggleStatusTarget removes the status target from the host, which makes
// its tooltip detach on the next frame, or puts it back and re-attaches.
func (m *demoModel) toggleStatusTarget() {
	if !m.statusRemoved {
		delete(m.host.targets, targetStatus)
		m.statusRemoved = true
		m.sched.NotifyViewportChanged()
		return
	}
	m.statusRemoved = false
	m.host.targets[targetStatus] = m.statusTarget()
	if m.err = m.status.Attach(targetStatus); m.err == nil {
		m.err = m.status.Show()
	}
}

// =============================================================================
// View
// =============================================================================

var demoCanvasStyle = lipgloss.NewStyle().Foreground(colorWhite)

func (m *demoModel) View() string {
	vp := m.host.viewport
	c := newCanvas(int(vp.Width), int(vp.Height))

	ids := make([]tooltip.TargetID, 0, len(m.host.targets))
	for id := range m.host.targets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		r := m.host.targets[id]
		c.box(int(r.Left), int(r.Top), int(r.Width), int(r.Height), string(id))
	}
	for _, t := range []*tooltip.Tooltip{m.main, m.status} {
		if !m.host.mounted[t] {
			continue
		}
		res, ok := m.host.moves[t]
		if !ok {
			continue
		}
		size := t.Size()
		c.box(res.X, res.Y, int(size.Width), int(size.Height), "")
		for i, line := range strings.Split(t.Content(), "\n") {
			c.text(res.X+2, res.Y+1+i, line)
		}
	}

	var b strings.Builder
	b.WriteString(demoCanvasStyle.Render(c.String()))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("arrows move  tab placement  a auto  space show/hide  x status target  q quit"))
	return b.String()
}

func (m *demoModel) statusLine() string {
	if m.err != nil {
		return StyleError.Render(m.err.Error())
	}

	req := m.main.Requested().String()
	shown := req
	if p := m.main.Placement(); p != nil && p.String() != req {
		shown = req + " " + iconArrow + " " + StyleWarning.Render(p.String())
	}
	auto := StyleDim.Render("off")
	if m.main.Config().Auto {
		auto = StyleSuccess.Render("on")
	}

	snap := m.stats.snapshot()
	return fmt.Sprintf("%s %s  %s %s  %s %s  %s",
		StyleTitle.Render("place"), shown,
		StyleTitle.Render("auto"), auto,
		StyleTitle.Render("classes"), strings.Join(m.host.classes[m.main], " "),
		StyleDim.Render(fmt.Sprintf("frames %d  coalesced %d  flips %d", snap.Frames, snap.Coalesced, snap.Flips)),
	)
}

// canvas is a fixed-size grid of cells. Drawing outside the grid is
// clipped.
type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, max(h, 0))
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", max(w, 0)))
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(x, y int, r rune) {
	if x >= 0 && y >= 0 && x < c.w && y < c.h {
		c.cells[y][x] = r
	}
}

func (c *canvas) text(x, y int, s string) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r)
	}
}

// box draws a rounded border of w by h cells with an optional label in the
// top edge. Boxes smaller than 2x2 are drawn as a single row of dots.
func (c *canvas) box(x, y, w, h int, label string) {
	if w < 2 || h < 2 {
		for i := range max(w, 1) {
			c.set(x+i, y, '·')
		}
		return
	}
	for i := 1; i < w-1; i++ {
		c.set(x+i, y, '─')
		c.set(x+i, y+h-1, '─')
	}
	for j := 1; j < h-1; j++ {
		c.set(x, y+j, '│')
		c.set(x+w-1, y+j, '│')
		for i := 1; i < w-1; i++ {
			c.set(x+i, y+j, ' ')
		}
	}
	c.set(x, y, '╭')
	c.set(x+w-1, y, '╮')
	c.set(x, y+h-1, '╰')
	c.set(x+w-1, y+h-1, '╯')
	if label != "" && len(label) <= w-2 {
		c.text(x+1, y, label)
	}
}

func (c *canvas) String() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
