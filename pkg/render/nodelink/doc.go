// Package nodelink draws a layout frame as a node-link diagram.
//
// [ToDOT] emits Graphviz DOT with every node pinned at its simulated
// position, so Graphviz only draws and does not lay out again. [RenderSVG]
// renders that DOT in process with the neato engine:
//
//	dot := nodelink.ToDOT(sim.Frame(), nodelink.Options{LinkLabels: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// Nodes that can still be expanded are filled orange; opened nodes are
// blue. Pinned nodes get a bold outline.
//
// This package uses [github.com/goccy/go-graphviz] for rendering. PDF and
// PNG output go through the parent render package and need librsvg.
package nodelink
