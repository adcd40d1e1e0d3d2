package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/addrscope/pkg/explorer"
	"github.com/matzehuels/addrscope/pkg/graph"
	"github.com/matzehuels/addrscope/pkg/layout"
	"github.com/matzehuels/addrscope/pkg/render/nodelink"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	nodeNotOpenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(nodelink.ColorNotOpen))
	nodeOpenedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(nodelink.ColorOpened))
	linkStyle        = lipgloss.NewStyle().Foreground(colorDim)
	canvasStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

const (
	canvasMinWidth  = 20
	canvasMinHeight = 8

	// dragStep is how far one key press moves a grabbed node, in layout units.
	dragStep = 25.0

	glyphNotOpen  = "◉"
	glyphOpened   = "●"
	glyphSelected = "◎"
	glyphLink     = "·"
)

// =============================================================================
// exploreModel - Interactive explorer
// =============================================================================

// frameMsg drives one layout tick.
type frameMsg time.Time

// exploreModel is the bubbletea model of the explore command. The model
// runs on bubbletea's single update goroutine, which makes it the session's
// only writer.
type exploreModel struct {
	ctx      context.Context
	session  *explorer.Session
	interval time.Duration

	frame    layout.Frame
	cursor   int
	grabbed  string
	status   string
	width    int
	height   int
	quitting bool
}

func newExploreModel(ctx context.Context, s *explorer.Session, interval time.Duration) exploreModel {
	return exploreModel{
		ctx:      ctx,
		session:  s,
		interval: interval,
		frame:    s.Frame(),
		width:    80,
		height:   24,
		status:   "enter reveals, space grabs",
	}
}

func (m exploreModel) Init() tea.Cmd {
	return m.nextFrame()
}

func (m exploreModel) nextFrame() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if !m.session.Simulation().Settled() {
			m.session.Tick()
		}
		m.frame = m.session.Frame()
		return m, m.nextFrame()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m exploreModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.grabbed != "" {
			_ = m.session.DragEnd(m.grabbed)
		}
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.grabbed == "" && m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.grabbed == "" && m.cursor < len(m.frame.Nodes)-1 {
			m.cursor++
		}
	case "enter":
		m.click()
	case " ":
		m.toggleGrab()
	case "w":
		m.move(0, -dragStep)
	case "s":
		m.move(0, dragStep)
	case "a":
		m.move(-dragStep, 0)
	case "d":
		m.move(dragStep, 0)
	}
	m.frame = m.session.Frame()
	return m, nil
}

func (m *exploreModel) selected() (layout.NodePosition, bool) {
	if m.cursor < 0 || m.cursor >= len(m.frame.Nodes) {
		return layout.NodePosition{}, false
	}
	return m.frame.Nodes[m.cursor], true
}

func (m *exploreModel) click() {
	n, ok := m.selected()
	if !ok {
		return
	}
	out, err := m.session.Click(m.ctx, n.Address)
	switch {
	case err != nil:
		m.status = "error: " + err.Error()
	case out.Ignored != "":
		m.status = fmt.Sprintf("%s: %s", graph.ShortAddress(n.Address), out.Ignored)
	case out.Revealed:
		m.status = fmt.Sprintf("%s revealed step %d (+%d nodes)", graph.ShortAddress(n.Address), out.Step, len(out.Merge.AddedNodes))
	default:
		m.status = fmt.Sprintf("%s opened", graph.ShortAddress(n.Address))
	}
}

func (m *exploreModel) toggleGrab() {
	if m.grabbed != "" {
		m.status = graph.ShortAddress(m.grabbed) + " released"
		if err := m.session.DragEnd(m.grabbed); err != nil {
			m.status = "error: " + err.Error()
		}
		m.grabbed = ""
		return
	}
	n, ok := m.selected()
	if !ok {
		return
	}
	if err := m.session.DragStart(n.Address); err != nil {
		m.status = "error: " + err.Error()
		return
	}
	m.grabbed = n.Address
	m.status = graph.ShortAddress(n.Address) + " grabbed, w/a/s/d to move"
}

func (m *exploreModel) move(dx, dy float64) {
	if m.grabbed == "" {
		return
	}
	n := m.session.Graph().Node(m.grabbed)
	if n == nil {
		return
	}
	if err := m.session.DragMove(m.grabbed, n.X+dx, n.Y+dy); err != nil {
		m.status = "error: " + err.Error()
	}
}

func (m exploreModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render("addrscope"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  step %d · %d nodes · %d links · tick %d · alpha %.3f",
		m.session.Step(), len(m.frame.Nodes), len(m.frame.Links), m.frame.Tick, m.frame.Alpha)))
	b.WriteString("\n")

	listWidth := 34
	cw := max(m.width-listWidth-4, canvasMinWidth)
	ch := max(m.height-6, canvasMinHeight)
	canvas := canvasStyle.Render(drawCanvas(m.frame, cw, ch, m.cursor))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", m.nodeList()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ⏎ click  space grab  wasd move  q quit"))
	return b.String()
}

func (m exploreModel) nodeList() string {
	var b strings.Builder
	for i, n := range m.frame.Nodes {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		glyph := nodeOpenedStyle.Render(glyphOpened)
		if n.NotOpen {
			glyph = nodeNotOpenStyle.Render(glyphNotOpen)
		}
		label := n.Label
		if n.Pinned {
			label += " (pinned)"
		}
		line := fmt.Sprintf("%s%s %s", cursor, glyph, label)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Canvas
// =============================================================================

// drawCanvas rasterizes a frame into a w×h character grid, scaled to fit
// the frame bounds.
func drawCanvas(f layout.Frame, w, h, selected int) string {
	grid := make([][]string, h)
	for i := range grid {
		grid[i] = make([]string, w)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	minX, minY, maxX, maxY := f.Bounds()
	spanX := math.Max(maxX-minX, 1)
	spanY := math.Max(maxY-minY, 1)
	cell := func(x, y float64) (int, int) {
		cx := int(math.Round((x - minX) / spanX * float64(w-1)))
		cy := int(math.Round((y - minY) / spanY * float64(h-1)))
		return min(max(cx, 0), w-1), min(max(cy, 0), h-1)
	}

	for _, s := range f.Links {
		x1, y1 := cell(s.X1, s.Y1)
		x2, y2 := cell(s.X2, s.Y2)
		steps := max(abs(x2-x1), abs(y2-y1))
		for i := 1; i < steps; i++ {
			t := float64(i) / float64(steps)
			x := x1 + int(math.Round(t*float64(x2-x1)))
			y := y1 + int(math.Round(t*float64(y2-y1)))
			grid[y][x] = linkStyle.Render(glyphLink)
		}
	}

	for i, n := range f.Nodes {
		x, y := cell(n.X, n.Y)
		switch {
		case i == selected:
			grid[y][x] = listSelectedStyle.Render(glyphSelected)
		case n.NotOpen:
			grid[y][x] = nodeNotOpenStyle.Render(glyphNotOpen)
		default:
			grid[y][x] = nodeOpenedStyle.Render(glyphOpened)
		}
	}

	rows := make([]string, h)
	for i, row := range grid {
		rows[i] = strings.Join(row, "")
	}
	return strings.Join(rows, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
