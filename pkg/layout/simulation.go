package layout

import (
	"math"
	"time"

	"github.com/matzehuels/addrscope/pkg/graph"
	"github.com/matzehuels/addrscope/pkg/observability"
)

// Source is the live graph a simulation reads on every tick.
// [graph.State] implements it.
type Source interface {
	Nodes() []*graph.Node
	Links() []graph.Link
	Node(address string) *graph.Node
}

const (
	initialRadius = 10
	initialAngle  = math.Pi * 0.7639320225002102 // π(3-√5)
)

type velocity struct{ vx, vy float64 }

// Simulation is a force-directed layout over a [Source]. It is not safe for
// concurrent use; callers serialize ticks with merges and drags.
type Simulation struct {
	cfg Config
	src Source

	alpha       float64
	alphaTarget float64
	settled     bool
	ticks       int
	heatedAt    time.Time

	vel    map[string]*velocity
	placed map[string]struct{}
	drags  map[string]struct{}
	random lcg
}

// New creates a simulation over src at full energy and places every node
// that has no position yet.
func New(src Source, cfg Config) *Simulation {
	s := &Simulation{
		cfg:      cfg,
		src:      src,
		alpha:    1,
		heatedAt: time.Now(),
		vel:      make(map[string]*velocity),
		placed:   make(map[string]struct{}),
		drags:    make(map[string]struct{}),
		random:   newLCG(),
	}
	s.place(src.Nodes())
	return s
}

// Config returns the simulation constants.
func (s *Simulation) Config() Config { return s.cfg }

// Alpha returns the current energy.
func (s *Simulation) Alpha() float64 { return s.alpha }

// AlphaTarget returns the energy the simulation decays toward.
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// Settled reports whether alpha has dropped below the minimum.
func (s *Simulation) Settled() bool { return s.settled }

// Ticks returns the number of ticks applied so far.
func (s *Simulation) Ticks() int { return s.ticks }

// Dragging reports how many drags are active.
func (s *Simulation) Dragging() int { return len(s.drags) }

// Reseed places nodes added to the source since they were last seen.
// Ticks do this too; calling it right after a merge gives the new nodes a
// position before the next tick.
func (s *Simulation) Reseed() { s.place(s.src.Nodes()) }

// Reheat sets alpha and resumes ticking.
func (s *Simulation) Reheat(alpha float64) {
	s.alpha = alpha
	s.restart()
	observability.Layout().OnReheat(alpha)
}

// Tick advances the simulation by one step and reports whether it is still
// active. A settled simulation does nothing until reheated.
func (s *Simulation) Tick() bool {
	if s.settled {
		return false
	}
	s.step()
	s.ticks++
	observability.Layout().OnTick(s.alpha)

	if s.alpha < s.cfg.AlphaMin {
		s.settled = true
		observability.Layout().OnSettled(s.ticks, time.Since(s.heatedAt))
		return false
	}
	return true
}

// Run ticks until the simulation settles or max ticks were applied, and
// returns the number of ticks applied.
func (s *Simulation) Run(max int) int {
	start := s.ticks
	for s.ticks-start < max && s.Tick() {
	}
	return s.ticks - start
}

func (s *Simulation) restart() {
	if s.settled {
		s.heatedAt = time.Now()
	}
	s.settled = false
}

func (s *Simulation) step() {
	s.alpha += (s.alphaTarget - s.alpha) * s.cfg.AlphaDecay

	nodes := s.src.Nodes()
	s.place(nodes)

	links := s.resolve(nodes)
	s.applyLinks(links)
	s.applyCharge(nodes)
	s.applyCenter(nodes)

	friction := 1 - s.cfg.VelocityDecay
	for _, n := range nodes {
		v := s.velocity(n.Address)
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			v.vx, v.vy = 0, 0
			continue
		}
		v.vx *= friction
		v.vy *= friction
		n.X += v.vx
		n.Y += v.vy
	}
}

// place gives unseen nodes an initial position: pinned nodes start at their
// pin, nodes that already carry coordinates keep them, the rest go on a
// spiral around the anchor.
func (s *Simulation) place(nodes []*graph.Node) {
	for i, n := range nodes {
		if _, ok := s.placed[n.Address]; ok {
			continue
		}
		s.placed[n.Address] = struct{}{}
		s.vel[n.Address] = &velocity{}

		switch {
		case n.Pinned():
			n.X, n.Y = *n.FX, *n.FY
		case n.HasPosition():
		default:
			r := initialRadius * math.Sqrt(0.5+float64(i))
			a := float64(i) * initialAngle
			n.X = s.cfg.AnchorX + r*math.Cos(a)
			n.Y = s.cfg.AnchorY + r*math.Sin(a)
		}
	}
}

func (s *Simulation) velocity(address string) *velocity {
	v, ok := s.vel[address]
	if !ok {
		v = &velocity{}
		s.vel[address] = v
	}
	return v
}
