package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/addrscope/pkg/graph"
)

func ExampleState_Merge() {
	s := graph.NewStateFrom(graph.Subgraph{
		Nodes: []graph.Node{{Address: "0xa", NotOpen: true}, {Address: "0xb", NotOpen: true}},
		Links: []graph.Link{{Source: "0xa", Target: "0xb", Label: "Link 1"}},
	})

	// A bare node list is attached to the node that triggered the reveal.
	res := s.Merge(graph.Subgraph{
		Nodes: []graph.Node{{Address: "0xc"}, {Address: "0xb"}},
	}, s.Node("0xa"))

	fmt.Println("added nodes:", res.AddedNodes)
	for _, l := range s.Links() {
		fmt.Printf("%s -> %s (%s)\n", l.Source, l.Target, l.Label)
	}
	// Output:
	// added nodes: [0xc]
	// 0xa -> 0xb (Link 1)
	// 0xa -> 0xc (new link)
}

func ExampleReadSubgraph() {
	doc := `{
	  "nodes": [{"address": "0xa"}, {"address": "0xb"}],
	  "links": [{"from": "0xa", "to": {"address": "0xb"}, "label": "transfer"}]
	}`

	sub, err := graph.ReadSubgraph(strings.NewReader(doc))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("%+v\n", sub.Links[0])
	// Output:
	// {Source:0xa Target:0xb Label:transfer}
}
