// Package explorer ties the graph, the disclosure controller and the layout
// simulation of one view together.
//
// A [Session] is the synchronous core and is driven directly by tests and
// the terminal UI. A [Loop] owns a Session on a single goroutine, ticking
// it on a frame timer and running submitted commands between ticks, so a
// merge is never observed half-applied by the layout.
package explorer

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/addrscope/pkg/disclosure"
	"github.com/matzehuels/addrscope/pkg/graph"
	"github.com/matzehuels/addrscope/pkg/layout"
	"github.com/matzehuels/addrscope/pkg/reveal"
)

// Options configures a session.
type Options struct {
	// Layout holds the simulation constants. Zero value means
	// layout.DefaultConfig().
	Layout layout.Config
	// RevealAlpha is the energy the layout is reheated to after a reveal.
	RevealAlpha float64
	// Logger receives session events. Nil means log.Default().
	Logger *log.Logger
}

// Session is one explorable view. It is not safe for concurrent use.
type Session struct {
	graph      *graph.State
	controller *disclosure.Controller
	sim        *layout.Simulation
	logger     *log.Logger
}

// NewSession loads the bootstrap graph from provider and starts a layout
// over it.
func NewSession(ctx context.Context, provider reveal.Provider, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Layout == (layout.Config{}) {
		opts.Layout = layout.DefaultConfig()
	}
	if err := opts.Layout.Validate(); err != nil {
		return nil, err
	}

	boot, err := provider.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	g := graph.NewState()
	res := g.Merge(boot, nil)
	for _, l := range res.Dangling {
		opts.Logger.Warn("dropped dangling bootstrap link", "source", l.Source, "target", l.Target)
	}

	sim := layout.New(g, opts.Layout)
	ctrl := disclosure.NewController(g, provider, sim, opts.Logger)
	if opts.RevealAlpha > 0 {
		ctrl.SetRevealAlpha(opts.RevealAlpha)
	}

	opts.Logger.Debug("session started", "nodes", g.Len(), "links", g.LinkCount())
	return &Session{graph: g, controller: ctrl, sim: sim, logger: opts.Logger}, nil
}

// Graph returns the live graph.
func (s *Session) Graph() *graph.State { return s.graph }

// Simulation returns the layout simulation.
func (s *Session) Simulation() *layout.Simulation { return s.sim }

// Step returns the current disclosure step.
func (s *Session) Step() int { return s.controller.State().Current }

// Click applies a node click.
func (s *Session) Click(ctx context.Context, address string) (disclosure.Outcome, error) {
	return s.controller.NodeClicked(ctx, address)
}

// DragStart pins address at its current position.
func (s *Session) DragStart(address string) error { return s.sim.DragStart(address) }

// DragMove pins address at (x, y).
func (s *Session) DragMove(address string, x, y float64) error {
	return s.sim.DragMove(address, x, y)
}

// DragEnd releases address.
func (s *Session) DragEnd(address string) error { return s.sim.DragEnd(address) }

// Tick advances the layout by one step and reports whether it is still active.
func (s *Session) Tick() bool { return s.sim.Tick() }

// Settle ticks until the layout settles or max ticks were applied.
func (s *Session) Settle(max int) int { return s.sim.Run(max) }

// Frame returns the current positions.
func (s *Session) Frame() layout.Frame { return s.sim.Frame() }

// View is a serializable summary of a session.
type View struct {
	Step  int             `json:"step"`
	Done  bool            `json:"done"`
	Graph graph.WireGraph `json:"graph"`
	Frame layout.Frame    `json:"frame"`
}

// View captures the session's graph and frame.
func (s *Session) View() View {
	st := s.controller.State()
	return View{
		Step:  st.Current,
		Done:  st.Done(),
		Graph: graph.ToWire(s.graph.Snapshot()),
		Frame: s.sim.Frame(),
	}
}
