package graph

import "slices"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node classification tags.
const (
	TypeUnmarked      = "unmarked"
	TypeCEX           = "cex"
	TypeStakingPool   = "stakingpool"
	TypeGambling      = "gambling"
	TypeSmartContract = "smartcontract"
)

// DefaultLinkLabel is the label given to links synthesized by [State.Merge]
// when a revealed subgraph carries no links of its own.
const DefaultLinkLabel = "new link"

// =============================================================================
// Node - Addressed Vertex
// =============================================================================

// Node is a uniquely addressed vertex of the relationship graph.
//
// Address is the only stable identifier; every other attribute is display
// data. X/Y and FX/FY belong to the layout engine: X/Y is the current
// simulated position and FX/FY, when both are non-nil, pins the node.
type Node struct {
	Address     string   `json:"address"`
	Type        string   `json:"type"`
	AddressName string   `json:"address_name"`
	RiskScore   float64  `json:"risk_score"`
	Creator     bool     `json:"creator"`
	CreatorAddr string   `json:"creator_addr"`
	UpdatedAt   string   `json:"updated_at"`
	CreatedAt   string   `json:"created_at"`
	Tokens      []any    `json:"tokens"`
	Balance     float64  `json:"balance"`
	Networks    []string `json:"networks"`

	// NotOpen is true while the node can still trigger a reveal.
	NotOpen bool `json:"not_open"`

	X  float64  `json:"x,omitempty"`
	Y  float64  `json:"y,omitempty"`
	FX *float64 `json:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty"`
}

// Clone returns a copy of n that shares no slices or pins with it.
func (n Node) Clone() Node {
	out := n
	out.Tokens = slices.Clone(n.Tokens)
	out.Networks = slices.Clone(n.Networks)
	if n.FX != nil {
		fx := *n.FX
		out.FX = &fx
	}
	if n.FY != nil {
		fy := *n.FY
		out.FY = &fy
	}
	return out
}

// DisplayLabel returns the address name if set, otherwise a shortened address.
func (n *Node) DisplayLabel() string {
	if n.AddressName != "" {
		return n.AddressName
	}
	return ShortAddress(n.Address)
}

// Pinned reports whether the node is fixed at (FX, FY).
func (n *Node) Pinned() bool { return n.FX != nil && n.FY != nil }

// Pin fixes the node at (x, y).
func (n *Node) Pin(x, y float64) {
	n.FX, n.FY = &x, &y
}

// Unpin releases the node back to the simulation.
func (n *Node) Unpin() {
	n.FX, n.FY = nil, nil
}

// HasPosition reports whether the node carries a non-origin position.
func (n *Node) HasPosition() bool { return n.X != 0 || n.Y != 0 }

// ShortAddress abbreviates long hex addresses as 0x1234…abcd.
func ShortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// =============================================================================
// Link - Directed, Address-Keyed Edge
// =============================================================================

// Link is a directed edge keyed by the ordered (Source, Target) address pair.
// Links are held in resolved form; the string-or-node union of the wire
// format is handled by [WireLink].
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// Key returns the dedup key of the link.
func (l Link) Key() LinkKey { return LinkKey{Source: l.Source, Target: l.Target} }

// LinkKey is the ordered address pair that identifies a link.
// a→b and b→a are distinct keys.
type LinkKey struct {
	Source string
	Target string
}

// =============================================================================
// Subgraph - Unit of Merge
// =============================================================================

// Subgraph is a node/link list merged into a [State] as one unit.
type Subgraph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Clone returns a deep copy of s.
func (s Subgraph) Clone() Subgraph {
	out := Subgraph{
		Nodes: make([]Node, len(s.Nodes)),
		Links: slices.Clone(s.Links),
	}
	for i, n := range s.Nodes {
		out.Nodes[i] = n.Clone()
	}
	if out.Links == nil {
		out.Links = []Link{}
	}
	return out
}

// Addresses returns the node addresses of s in order.
func (s Subgraph) Addresses() []string {
	out := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		out[i] = n.Address
	}
	return out
}
