package layout

import (
	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/graph"
)

// DragStart pins the node at its current position and, if no other drag is
// active, raises the alpha target so the graph keeps moving.
func (s *Simulation) DragStart(address string) error {
	n, err := s.node(address)
	if err != nil {
		return err
	}
	if len(s.drags) == 0 {
		s.alphaTarget = s.cfg.DragAlphaTarget
		s.restart()
	}
	s.drags[address] = struct{}{}
	n.Pin(n.X, n.Y)
	return nil
}

// DragMove pins the node at the pointer position. The node's position is
// updated immediately, so it holds the last pointer position even if the
// drag ends before another tick.
func (s *Simulation) DragMove(address string, x, y float64) error {
	n, err := s.node(address)
	if err != nil {
		return err
	}
	n.Pin(x, y)
	n.X, n.Y = x, y
	v := s.velocity(address)
	v.vx, v.vy = 0, 0
	return nil
}

// DragEnd releases the node. When the last active drag ends the alpha
// target drops back to zero and the simulation cools down.
func (s *Simulation) DragEnd(address string) error {
	n, err := s.node(address)
	if err != nil {
		return err
	}
	n.Unpin()
	if _, ok := s.drags[address]; !ok {
		return nil
	}
	delete(s.drags, address)
	if len(s.drags) == 0 {
		s.alphaTarget = 0
	}
	return nil
}

func (s *Simulation) node(address string) (*graph.Node, error) {
	n := s.src.Node(address)
	if n == nil {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node with address %s", address)
	}
	return n, nil
}
