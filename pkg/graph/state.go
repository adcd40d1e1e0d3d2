package graph

import "fmt"

// State is the live graph: the deduplicated node set and link set.
//
// Nodes are held by pointer so the layout engine and the disclosure
// controller observe and mutate the same objects. The slices returned by
// [State.Nodes] and [State.Links] are the live backing arrays; callers must
// re-read them after a merge and must not append to them.
//
// State is not safe for concurrent use. Mutations go through [State.Merge].
type State struct {
	nodes     []*Node
	index     map[string]*Node
	links     []Link
	linkIndex map[LinkKey]struct{}
}

// NewState creates an empty graph state.
func NewState() *State {
	return &State{
		index:     make(map[string]*Node),
		linkIndex: make(map[LinkKey]struct{}),
	}
}

// NewStateFrom creates a state holding the bootstrap graph g.
// Duplicate nodes and links in g are collapsed the same way a merge would.
func NewStateFrom(g Subgraph) *State {
	s := NewState()
	s.Merge(g, nil)
	return s
}

// Nodes returns the live node slice.
func (s *State) Nodes() []*Node { return s.nodes }

// Links returns the live link slice.
func (s *State) Links() []Link { return s.links }

// Node returns the node with the given address, or nil.
func (s *State) Node(address string) *Node { return s.index[address] }

// HasLink reports whether the ordered pair source→target is present.
func (s *State) HasLink(source, target string) bool {
	_, ok := s.linkIndex[LinkKey{Source: source, Target: target}]
	return ok
}

// Len returns the number of nodes.
func (s *State) Len() int { return len(s.nodes) }

// LinkCount returns the number of links.
func (s *State) LinkCount() int { return len(s.links) }

// Snapshot returns a deep copy of the current state as a subgraph.
func (s *State) Snapshot() Subgraph {
	out := Subgraph{
		Nodes: make([]Node, len(s.nodes)),
		Links: make([]Link, len(s.links)),
	}
	for i, n := range s.nodes {
		out.Nodes[i] = n.Clone()
	}
	copy(out.Links, s.links)
	return out
}

// Validate checks the state invariants: unique addresses, unique ordered
// link pairs, and links that only reference present nodes.
func (s *State) Validate() error {
	seen := make(map[string]bool, len(s.nodes))
	for _, n := range s.nodes {
		if seen[n.Address] {
			return fmt.Errorf("duplicate node address %s", n.Address)
		}
		seen[n.Address] = true
	}
	pairs := make(map[LinkKey]bool, len(s.links))
	for _, l := range s.links {
		if pairs[l.Key()] {
			return fmt.Errorf("duplicate link %s→%s", l.Source, l.Target)
		}
		pairs[l.Key()] = true
		if !seen[l.Source] {
			return fmt.Errorf("link %s→%s: unknown source", l.Source, l.Target)
		}
		if !seen[l.Target] {
			return fmt.Errorf("link %s→%s: unknown target", l.Source, l.Target)
		}
	}
	return nil
}

func (s *State) addNode(n Node) {
	node := &n
	s.nodes = append(s.nodes, node)
	s.index[node.Address] = node
}

func (s *State) addLink(l Link) {
	s.links = append(s.links, l)
	s.linkIndex[l.Key()] = struct{}{}
}
