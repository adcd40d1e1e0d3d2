package layout

import (
	"math"

	"github.com/matzehuels/addrscope/pkg/graph"
)

// resolvedLink is a link whose endpoints were found in the current node
// slice. Links with a missing endpoint are skipped for the tick.
type resolvedLink struct {
	source, target *graph.Node
	strength, bias float64
}

func (s *Simulation) resolve(nodes []*graph.Node) []resolvedLink {
	links := s.src.Links()
	if len(links) == 0 {
		return nil
	}

	byAddr := make(map[string]*graph.Node, len(nodes))
	for _, n := range nodes {
		byAddr[n.Address] = n
	}

	count := make(map[string]int, len(nodes))
	out := make([]resolvedLink, 0, len(links))
	for _, l := range links {
		src, tgt := byAddr[l.Source], byAddr[l.Target]
		if src == nil || tgt == nil {
			continue
		}
		count[l.Source]++
		count[l.Target]++
		out = append(out, resolvedLink{source: src, target: tgt})
	}

	for i := range out {
		cs, ct := count[out[i].source.Address], count[out[i].target.Address]
		out[i].strength = 1 / float64(min(cs, ct))
		out[i].bias = float64(cs) / float64(cs+ct)
	}
	return out
}

// applyLinks pulls linked nodes toward the rest length. Each link's
// correction is split between its endpoints by degree, so hubs move less.
func (s *Simulation) applyLinks(links []resolvedLink) {
	for _, l := range links {
		sv, tv := s.velocity(l.source.Address), s.velocity(l.target.Address)

		x := l.target.X + tv.vx - l.source.X - sv.vx
		y := l.target.Y + tv.vy - l.source.Y - sv.vy
		if x == 0 {
			x = s.random.jiggle()
		}
		if y == 0 {
			y = s.random.jiggle()
		}
		d := math.Sqrt(x*x + y*y)
		k := (d - s.cfg.LinkDistance) / d * s.alpha * l.strength
		x *= k
		y *= k

		tv.vx -= x * l.bias
		tv.vy -= y * l.bias
		sv.vx += x * (1 - l.bias)
		sv.vy += y * (1 - l.bias)
	}
}

// applyCharge applies the many-body force between every pair of nodes.
func (s *Simulation) applyCharge(nodes []*graph.Node) {
	if s.cfg.ChargeStrength == 0 {
		return
	}
	min2 := s.cfg.DistanceMin * s.cfg.DistanceMin

	for _, a := range nodes {
		va := s.velocity(a.Address)
		for _, b := range nodes {
			if a == b {
				continue
			}
			x := b.X - a.X
			y := b.Y - a.Y
			l := x*x + y*y
			if x == 0 {
				x = s.random.jiggle()
				l += x * x
			}
			if y == 0 {
				y = s.random.jiggle()
				l += y * y
			}
			if l < min2 {
				l = math.Sqrt(min2 * l)
			}
			w := s.cfg.ChargeStrength * s.alpha / l
			va.vx += x * w
			va.vy += y * w
		}
	}
}

// applyCenter shifts all nodes so their mean moves onto the anchor.
func (s *Simulation) applyCenter(nodes []*graph.Node) {
	if len(nodes) == 0 || s.cfg.CenterStrength == 0 {
		return
	}
	var sx, sy float64
	for _, n := range nodes {
		sx += n.X
		sy += n.Y
	}
	n := float64(len(nodes))
	dx := (sx/n - s.cfg.AnchorX) * s.cfg.CenterStrength
	dy := (sy/n - s.cfg.AnchorY) * s.cfg.CenterStrength
	for _, node := range nodes {
		node.X -= dx
		node.Y -= dy
	}
}

// lcg is a linear congruential generator for the tiny offsets that separate
// coincident nodes. It is seeded identically for every simulation.
type lcg struct{ state uint32 }

func newLCG() lcg { return lcg{state: 1} }

func (g *lcg) next() float64 {
	g.state = 1664525*g.state + 1013904223
	return float64(g.state) / 4294967296
}

func (g *lcg) jiggle() float64 {
	return (g.next() - 0.5) * 1e-6
}
