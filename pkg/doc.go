// Package pkg provides the libraries behind addrscope, a progressive
// explorer for blockchain address graphs.
//
// # Overview
//
// A view starts from a small bootstrap graph. Clicking an address that has
// not been expanded yet reveals the next predefined subgraph, which is
// merged into the visible graph without duplicating nodes or links. A
// force-directed layout keeps running while the graph grows and while
// nodes are dragged.
//
// # Architecture
//
//	[reveal] bootstrap graph and step subgraphs (static, file, MongoDB)
//	     ↓
//	[disclosure] click state machine: which step to reveal next
//	     ↓
//	[graph] dedup-aware merge into the visible node and link sets
//	     ↓
//	[layout] force simulation: link, charge and centering forces, drag pins
//	     ↓
//	[explorer] one view: session plus a single-goroutine tick loop
//	     ↓
//	[render] frame snapshots as Graphviz SVG, PDF or PNG
//
// Supporting packages:
//
//   - [config]: TOML configuration
//   - [errors]: coded errors and input validation
//   - [cache]: file, Redis and null caches for upstream responses
//   - [integrations]: HTTP client base and the CoinGecko categories client
//   - [observability], [metrics]: hooks and their Prometheus implementation
//   - [buildinfo]: version information
package pkg
