package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(addr string) Node {
	return Node{Address: addr, Type: TypeUnmarked, NotOpen: true}
}

func link(src, tgt string) Link {
	return Link{Source: src, Target: tgt, Label: "l"}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name        string
		base        Subgraph
		sub         Subgraph
		trigger     string
		wantNodes   []string
		wantLinks   []LinkKey
		wantAdded   int
		wantDangled int
	}{
		{
			name:      "Empty",
			base:      Subgraph{},
			sub:       Subgraph{},
			wantNodes: nil,
		},
		{
			name:      "AppendsNewNodesAndLinks",
			base:      Subgraph{Nodes: []Node{node("a")}},
			sub:       Subgraph{Nodes: []Node{node("b")}, Links: []Link{link("a", "b")}},
			wantNodes: []string{"a", "b"},
			wantLinks: []LinkKey{{"a", "b"}},
			wantAdded: 1,
		},
		{
			name:      "ExistingNodeWins",
			base:      Subgraph{Nodes: []Node{{Address: "a", AddressName: "first"}}},
			sub:       Subgraph{Nodes: []Node{{Address: "a", AddressName: "second"}}},
			wantNodes: []string{"a"},
		},
		{
			name:      "ReverseLinkIsDistinct",
			base:      Subgraph{Nodes: []Node{node("a"), node("b")}, Links: []Link{link("a", "b")}},
			sub:       Subgraph{Links: []Link{link("b", "a"), link("a", "b")}},
			wantNodes: []string{"a", "b"},
			wantLinks: []LinkKey{{"a", "b"}, {"b", "a"}},
		},
		{
			name:      "SelfLinkAllowed",
			base:      Subgraph{Nodes: []Node{node("a")}},
			sub:       Subgraph{Links: []Link{link("a", "a")}},
			wantNodes: []string{"a"},
			wantLinks: []LinkKey{{"a", "a"}},
		},
		{
			name:      "SynthesizesFromTrigger",
			base:      Subgraph{Nodes: []Node{node("t")}},
			sub:       Subgraph{Nodes: []Node{node("x"), node("y")}},
			trigger:   "t",
			wantNodes: []string{"t", "x", "y"},
			wantLinks: []LinkKey{{"t", "x"}, {"t", "y"}},
			wantAdded: 2,
		},
		{
			name:      "SynthesisSkipsTrigger",
			base:      Subgraph{Nodes: []Node{node("t")}},
			sub:       Subgraph{Nodes: []Node{node("t"), node("x")}},
			trigger:   "t",
			wantNodes: []string{"t", "x"},
			wantLinks: []LinkKey{{"t", "x"}},
			wantAdded: 1,
		},
		{
			name:      "SynthesisLinksToExistingNodes",
			base:      Subgraph{Nodes: []Node{node("t"), node("e")}},
			sub:       Subgraph{Nodes: []Node{node("e"), node("x")}},
			trigger:   "t",
			wantNodes: []string{"t", "e", "x"},
			wantLinks: []LinkKey{{"t", "e"}, {"t", "x"}},
			wantAdded: 1,
		},
		{
			name:      "NoSynthesisWithoutTrigger",
			base:      Subgraph{Nodes: []Node{node("t")}},
			sub:       Subgraph{Nodes: []Node{node("x")}},
			wantNodes: []string{"t", "x"},
			wantAdded: 1,
		},
		{
			name:        "DanglingLinkDropped",
			base:        Subgraph{Nodes: []Node{node("a")}},
			sub:         Subgraph{Links: []Link{link("a", "ghost")}},
			wantNodes:   []string{"a"},
			wantDangled: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStateFrom(tt.base)
			var trigger *Node
			if tt.trigger != "" {
				trigger = s.Node(tt.trigger)
				require.NotNil(t, trigger)
			}

			res := s.Merge(tt.sub, trigger)

			var gotNodes []string
			for _, n := range s.Nodes() {
				gotNodes = append(gotNodes, n.Address)
			}
			var gotLinks []LinkKey
			for _, l := range s.Links() {
				gotLinks = append(gotLinks, l.Key())
			}
			assert.Equal(t, tt.wantNodes, gotNodes)
			assert.Equal(t, tt.wantLinks, gotLinks)
			assert.Len(t, res.AddedNodes, tt.wantAdded)
			assert.Len(t, res.Dangling, tt.wantDangled)
			assert.NoError(t, s.Validate())
		})
	}
}

func TestMergeKeepsFirstAttributes(t *testing.T) {
	s := NewStateFrom(Subgraph{Nodes: []Node{{Address: "a", AddressName: "first", NotOpen: false}}})
	s.Merge(Subgraph{Nodes: []Node{{Address: "a", AddressName: "second", NotOpen: true}}}, nil)

	got := s.Node("a")
	if got.AddressName != "first" || got.NotOpen {
		t.Errorf("existing node was modified: %+v", got)
	}
}

func TestMergeDoesNotAliasSubgraph(t *testing.T) {
	sub := Subgraph{Nodes: []Node{{Address: "a", Networks: []string{"Ethereum"}}}}
	s := NewState()
	s.Merge(sub, nil)

	sub.Nodes[0].Networks[0] = "Tron"
	sub.Nodes[0].AddressName = "mutated"

	got := s.Node("a")
	if got.Networks[0] != "Ethereum" || got.AddressName != "" {
		t.Errorf("state node aliases subgraph: %+v", got)
	}
}

func TestMergeDoesNotModifyTrigger(t *testing.T) {
	s := NewStateFrom(Subgraph{Nodes: []Node{node("t")}})
	trigger := s.Node("t")
	before := trigger.Clone()

	s.Merge(Subgraph{Nodes: []Node{node("x")}}, trigger)

	if trigger.NotOpen != before.NotOpen || trigger.AddressName != before.AddressName {
		t.Errorf("trigger changed: %+v", trigger)
	}
}

func TestMergeResultChanged(t *testing.T) {
	s := NewStateFrom(Subgraph{Nodes: []Node{node("a")}})
	if res := s.Merge(Subgraph{Nodes: []Node{node("a")}}, nil); res.Changed() {
		t.Error("re-merging an existing node should report no change")
	}
	if res := s.Merge(Subgraph{Nodes: []Node{node("b")}}, nil); !res.Changed() {
		t.Error("adding a node should report a change")
	}
}

func TestValidate(t *testing.T) {
	s := NewStateFrom(Subgraph{Nodes: []Node{node("a"), node("b")}, Links: []Link{link("a", "b")}})
	require.NoError(t, s.Validate())

	// Corrupt the state directly to exercise each check.
	s.links = append(s.links, link("a", "b"))
	assert.ErrorContains(t, s.Validate(), "duplicate link")

	s.links = []Link{link("a", "z")}
	assert.ErrorContains(t, s.Validate(), "unknown target")

	s.links = nil
	s.nodes = append(s.nodes, &Node{Address: "a"})
	assert.ErrorContains(t, s.Validate(), "duplicate node")
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := NewStateFrom(Subgraph{Nodes: []Node{node("a")}})
	snap := s.Snapshot()
	snap.Nodes[0].NotOpen = false

	if !s.Node("a").NotOpen {
		t.Error("snapshot mutation leaked into state")
	}
}

func TestNodePinning(t *testing.T) {
	n := node("a")
	if n.Pinned() {
		t.Fatal("new node should not be pinned")
	}
	n.Pin(10, 20)
	if !n.Pinned() || *n.FX != 10 || *n.FY != 20 {
		t.Errorf("Pin() = (%v, %v)", n.FX, n.FY)
	}
	clone := n.Clone()
	*clone.FX = 99
	if *n.FX != 10 {
		t.Error("Clone should not share pins")
	}
	n.Unpin()
	if n.Pinned() {
		t.Error("Unpin() left the node pinned")
	}
}

func TestDisplayLabel(t *testing.T) {
	named := Node{Address: "0x75e89d5979e4f6fba9f97c104c2f0afb3f1dcb88", AddressName: "MEXC"}
	if got := named.DisplayLabel(); got != "MEXC" {
		t.Errorf("DisplayLabel() = %q", got)
	}
	unnamed := Node{Address: "0x6a2b402b710c746de3fc064090ca1eab109a0e31"}
	if got := unnamed.DisplayLabel(); got != "0x6a2b…0e31" {
		t.Errorf("DisplayLabel() = %q", got)
	}
	if got := ShortAddress("0xabc"); got != "0xabc" {
		t.Errorf("ShortAddress(short) = %q", got)
	}
}

func TestReadSubgraphEndpointForms(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []LinkKey
	}{
		{
			name: "SourceTarget",
			json: `{"nodes":[{"address":"a"},{"address":"b"}],"links":[{"source":"a","target":"b","label":"x"}]}`,
			want: []LinkKey{{"a", "b"}},
		},
		{
			name: "FromTo",
			json: `{"nodes":[{"address":"a"},{"address":"b"}],"links":[{"from":"a","to":"b"}]}`,
			want: []LinkKey{{"a", "b"}},
		},
		{
			name: "NodeObjects",
			json: `{"nodes":[{"address":"a"},{"address":"b"}],"links":[{"source":{"address":"a"},"target":{"address":"b","type":"cex"}}]}`,
			want: []LinkKey{{"a", "b"}},
		},
		{
			name: "SourceWinsOverFrom",
			json: `{"nodes":[],"links":[{"source":"a","from":"z","target":"b"}]}`,
			want: []LinkKey{{"a", "b"}},
		},
		{
			name: "NoLinks",
			json: `{"nodes":[{"address":"a"}]}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := UnmarshalSubgraph([]byte(tt.json))
			require.NoError(t, err)
			var got []LinkKey
			for _, l := range sub.Links {
				got = append(got, l.Key())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSubgraphErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"Malformed", `{"nodes":`, "decode"},
		{"EmptyAddress", `{"nodes":[{"address":""}]}`, "address cannot be empty"},
		{"ControlCharacter", `{"nodes":[{"address":"0xa\u0000"}]}`, "invalid characters"},
		{"MissingEndpoint", `{"nodes":[],"links":[{"source":"a"}]}`, "missing endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSubgraph(strings.NewReader(tt.json))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadSubgraphOpaqueAddress(t *testing.T) {
	sub, err := ReadSubgraph(strings.NewReader(`{"nodes":[{"address":"wallet A"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"wallet A"}, sub.Addresses())
}

func TestGraphFileRoundTrip(t *testing.T) {
	s := NewStateFrom(Subgraph{
		Nodes: []Node{{Address: "a", Networks: []string{"Ethereum"}, NotOpen: true}, node("b")},
		Links: []Link{link("a", "b")},
	})
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, WriteGraphFile(s, path))

	sub, err := ReadSubgraphFile(path)
	require.NoError(t, err)
	reloaded := NewStateFrom(sub)
	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())

	_, err = ReadSubgraphFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalGraphUsesStringEndpoints(t *testing.T) {
	s := NewStateFrom(Subgraph{Nodes: []Node{node("a"), node("b")}, Links: []Link{link("a", "b")}})
	data, err := MarshalGraph(s)
	require.NoError(t, err)
	if !bytes.Contains(data, []byte(`"source": "a"`)) || !bytes.Contains(data, []byte(`"target": "b"`)) {
		t.Errorf("expected string endpoints, got:\n%s", data)
	}
}
