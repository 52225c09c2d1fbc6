package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ecodyn/lotkasim/internal/dynamo"
	"github.com/ecodyn/lotkasim/internal/integrators"
	"github.com/ecodyn/lotkasim/internal/physics"
)

const (
	liveWidth       = 60
	liveHeight      = 18
	historyCapacity = 600
	liveDt          = 0.02
	liveTol         = 1e-6
)

type TickMsg time.Time

// Model animates the predator-prey system, stepping it live with the
// adaptive solver and drawing the phase trail alongside a scrolling
// population graph. Parameters can be adjusted mid-run.
type Model struct {
	dyn   *physics.LotkaVolterra
	integ dynamo.AdaptiveIntegrator

	state        dynamo.State
	initialState dynamo.State
	t, dt        float64

	canvas *Canvas

	preyHistory     []float64
	predatorHistory []float64
	trail           []physics.Point

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int

	running  bool
	showHelp bool
	failed   error
}

func NewModel(dyn *physics.LotkaVolterra, x0 dynamo.State) Model {
	params := dyn.GetParams()
	initialParams := make(map[string]float64, len(params))
	keys := make([]string, 0, len(params))
	for k, v := range params {
		keys = append(keys, k)
		initialParams[k] = v
	}
	sort.Strings(keys)

	return Model{
		dyn:             dyn,
		integ:           integrators.NewRK45(),
		state:           x0.Clone(),
		initialState:    x0.Clone(),
		dt:              liveDt,
		canvas:          NewCanvas(liveWidth, liveHeight),
		preyHistory:     make([]float64, 0, historyCapacity),
		predatorHistory: make([]float64, 0, historyCapacity),
		trail:           make([]physics.Point, 0, historyCapacity),
		params:          params,
		initialParams:   initialParams,
		paramKeys:       keys,
		running:         true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			if len(m.paramKeys) > 0 {
				m.selected = (m.selected + 1) % len(m.paramKeys)
			}
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.failed == nil {
			// A few solver steps per frame keeps the motion smooth
			// without tying orbit speed to the frame rate.
			for i := 0; i < 4; i++ {
				m.step()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	next, taken, suggest, err := m.integ.StepAdaptive(m.dyn, m.state, m.t, m.dt, liveTol)
	if err != nil {
		m.failed = err
		m.running = false
		return
	}
	m.state = next
	m.t += taken
	if suggest > 1e-4 && suggest < 0.1 {
		m.dt = suggest
	}

	m.preyHistory = appendBounded(m.preyHistory, m.state[0])
	m.predatorHistory = appendBounded(m.predatorHistory, m.state[1])

	m.trail = append(m.trail, physics.Point{Prey: m.state[0], Predator: m.state[1]})
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key] * factor
	if err := m.dyn.SetParam(key, val); err != nil {
		return
	}
	m.params[key] = val
}

func (m *Model) reset() {
	m.t = 0
	m.dt = liveDt
	m.state = m.initialState.Clone()
	m.preyHistory = m.preyHistory[:0]
	m.predatorHistory = m.predatorHistory[:0]
	m.trail = m.trail[:0]
	m.failed = nil
	for k, v := range m.initialParams {
		m.params[k] = v
		m.dyn.SetParam(k, v)
	}
}

func (m Model) View() string {
	m.drawPhase()

	var s strings.Builder
	s.WriteString(headerStyle.Render("LOTKA-VOLTERRA") + "\n")

	left := canvasStyle.Render(m.canvas.String())
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, statsStyle.Render(m.stats())))

	if len(m.preyHistory) >= 2 {
		graph := asciigraph.PlotMany(
			[][]float64{m.preyHistory, m.predatorHistory},
			asciigraph.Width(liveWidth+30),
			asciigraph.Height(7),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
			asciigraph.SeriesLegends("prey", "predator"),
		)
		s.WriteString("\n" + graphStyle.Render(graph))
	}

	if m.showHelp {
		s.WriteString("\n" + helpStyle.Render(
			"space pause/resume  r reset  tab select param  up/down adjust  q quit"))
	} else {
		s.WriteString("\n" + helpStyle.Render("? help  q quit"))
	}
	return s.String()
}

func (m *Model) drawPhase() {
	m.canvas.Clear()
	if len(m.trail) < 2 {
		return
	}

	minX, maxX := m.trail[0].Prey, m.trail[0].Prey
	minY, maxY := m.trail[0].Predator, m.trail[0].Predator
	for _, p := range m.trail {
		minX, maxX = math.Min(minX, p.Prey), math.Max(maxX, p.Prey)
		minY, maxY = math.Min(minY, p.Predator), math.Max(maxY, p.Predator)
	}
	eq := m.dyn.Equilibria().Coexistence
	coFinite := !math.IsInf(eq.Prey, 0) && !math.IsInf(eq.Predator, 0)
	if coFinite {
		minX, maxX = math.Min(minX, eq.Prey), math.Max(maxX, eq.Prey)
		minY, maxY = math.Min(minY, eq.Predator), math.Max(maxY, eq.Predator)
	}
	m.canvas.SetWindow(minX, maxX, minY, maxY)

	for i := 1; i < len(m.trail); i++ {
		m.canvas.PlotLine(m.trail[i-1].Prey, m.trail[i-1].Predator, m.trail[i].Prey, m.trail[i].Predator)
	}
	if coFinite {
		m.canvas.Mark(eq.Prey, eq.Predator)
	}
}

func (m Model) stats() string {
	var s strings.Builder
	status := statusRunning.Render("RUNNING")
	if m.failed != nil {
		status = statusPaused.Render("SOLVER FAILED")
	} else if !m.running {
		status = statusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.2f", m.t)) + "\n")
	s.WriteString(labelStyle.Render("prey") + valueStyle.Render(fmt.Sprintf("%.4f", m.state[0])) + "\n")
	s.WriteString(labelStyle.Render("predator") + valueStyle.Render(fmt.Sprintf("%.4f", m.state[1])) + "\n")

	inv := m.dyn.Invariant(m.state)
	if !math.IsNaN(inv) {
		s.WriteString(labelStyle.Render("invariant") + valueStyle.Render(fmt.Sprintf("%.6f", inv)) + "\n")
	}

	s.WriteString("\n")
	for i, key := range m.paramKeys {
		line := fmt.Sprintf("%-8s %.4f", key, m.params[key])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString(valueStyle.Render("  "+line) + "\n")
		}
	}

	if m.failed != nil {
		s.WriteString("\n" + statusPaused.Render(m.failed.Error()))
	}
	return s.String()
}

func appendBounded(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

// Run starts the live view and blocks until the user quits.
func Run(dyn *physics.LotkaVolterra, x0 dynamo.State) error {
	p := tea.NewProgram(NewModel(dyn, x0))
	_, err := p.Run()
	return err
}
