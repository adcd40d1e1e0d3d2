package graph

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/addrscope/pkg/errors"
)

// =============================================================================
// Endpoint - String-or-Node Union
// =============================================================================

// Endpoint is one end of a link as it appears on the wire: either a bare
// address string or an embedded node object. It only exists at the
// serialization boundary; [WireLink.Normalize] resolves it to an address.
type Endpoint struct {
	Address string
	Node    *Node
}

// AddressEndpoint returns an endpoint referencing addr by string.
func AddressEndpoint(addr string) *Endpoint { return &Endpoint{Address: addr} }

// NodeEndpoint returns an endpoint referencing n by object.
func NodeEndpoint(n *Node) *Endpoint { return &Endpoint{Node: n} }

// Resolve returns the address the endpoint refers to.
func (e *Endpoint) Resolve() string {
	if e == nil {
		return ""
	}
	if e.Node != nil {
		return e.Node.Address
	}
	return e.Address
}

// UnmarshalJSON accepts either "0xabc" or {"address": "0xabc", ...}.
func (e *Endpoint) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = Endpoint{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = Endpoint{Address: s}
		return nil
	}
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	*e = Endpoint{Node: &n}
	return nil
}

// MarshalJSON writes the endpoint in the representation it was given.
func (e Endpoint) MarshalJSON() ([]byte, error) {
	if e.Node != nil {
		return json.Marshal(e.Node)
	}
	return json.Marshal(e.Address)
}

// =============================================================================
// WireLink / WireGraph - External Representation
// =============================================================================

// WireLink is a link as supplied by the hosting application. Endpoints may
// use either the source/target or the from/to field names.
type WireLink struct {
	Source *Endpoint `json:"source,omitempty"`
	Target *Endpoint `json:"target,omitempty"`
	From   *Endpoint `json:"from,omitempty"`
	To     *Endpoint `json:"to,omitempty"`
	Label  string    `json:"label"`
}

// Normalize resolves the link to its internal address-keyed form.
// source/target take precedence over from/to when both are present.
func (w WireLink) Normalize() (Link, error) {
	src := w.Source.Resolve()
	if src == "" {
		src = w.From.Resolve()
	}
	tgt := w.Target.Resolve()
	if tgt == "" {
		tgt = w.To.Resolve()
	}
	if src == "" || tgt == "" {
		return Link{}, fmt.Errorf("link %q: missing endpoint", w.Label)
	}
	return Link{Source: src, Target: tgt, Label: w.Label}, nil
}

// WireGraph is the JSON node-link document exchanged with the host:
//
//	{
//	  "nodes": [{"address": "0xa", "not_open": true}, {"address": "0xb"}],
//	  "links": [{"from": "0xa", "to": "0xb", "label": "transfer"}]
//	}
type WireGraph struct {
	Nodes []Node     `json:"nodes"`
	Links []WireLink `json:"links"`
}

// Subgraph normalizes the document into a [Subgraph]. Node addresses
// must pass [errors.ValidateAddress], the same rule clicks are checked
// against, so every loaded node can be clicked.
func (w WireGraph) Subgraph() (Subgraph, error) {
	out := Subgraph{
		Nodes: make([]Node, len(w.Nodes)),
		Links: make([]Link, 0, len(w.Links)),
	}
	for i, n := range w.Nodes {
		if err := errors.ValidateAddress(n.Address); err != nil {
			return Subgraph{}, fmt.Errorf("node %d: %w", i, err)
		}
		out.Nodes[i] = n.Clone()
	}
	for i, wl := range w.Links {
		l, err := wl.Normalize()
		if err != nil {
			return Subgraph{}, fmt.Errorf("link %d: %w", i, err)
		}
		out.Links = append(out.Links, l)
	}
	return out, nil
}

// ToWire converts s to its wire form using source/target address strings.
func ToWire(s Subgraph) WireGraph {
	out := WireGraph{
		Nodes: make([]Node, len(s.Nodes)),
		Links: make([]WireLink, len(s.Links)),
	}
	for i, n := range s.Nodes {
		out.Nodes[i] = n.Clone()
	}
	for i, l := range s.Links {
		out.Links[i] = WireLink{
			Source: AddressEndpoint(l.Source),
			Target: AddressEndpoint(l.Target),
			Label:  l.Label,
		}
	}
	return out
}
