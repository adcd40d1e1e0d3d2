// Package graph holds the live relationship graph and its merge algorithm.
//
// # Core Types
//
//   - [Node]: an addressed vertex; Address is the only identity
//   - [Link]: a directed edge keyed by its ordered (Source, Target) pair
//   - [Subgraph]: a node/link list merged as one unit
//   - [State]: the deduplicated live graph shared with the layout engine
//
// # Merging
//
// [State.Merge] appends the nodes of a subgraph whose address is new, then
// its links whose ordered pair is new. A subgraph without links is attached
// to the node that triggered the reveal by synthesized links:
//
//	s := graph.NewStateFrom(bootstrap)
//	res := s.Merge(step2, s.Node(clicked))
//	fmt.Println(res.AddedNodes, res.AddedLinks)
//
// Merging is idempotent and never creates a link to a missing node; such
// links are reported in [MergeResult.Dangling] instead.
//
// # Wire Format
//
// Hosts exchange graphs as JSON. Link endpoints are either address strings
// or embedded node objects, under source/target or from/to:
//
//	{
//	  "nodes": [{"address": "0xa"}, {"address": "0xb"}],
//	  "links": [{"from": "0xa", "to": {"address": "0xb"}, "label": "transfer"}]
//	}
//
// [ReadSubgraph] resolves the union once at ingestion; everything past the
// boundary works with addresses.
//
// # Concurrency
//
// [State] is not safe for concurrent use. The explorer package serializes
// merges and layout ticks on a single goroutine.
package graph
