// Package render converts rendered graph snapshots between output formats.
//
// The [nodelink] subpackage draws a layout frame as a node-link diagram in
// SVG; [ToPDF] and [ToPNG] convert that SVG further using the external
// rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(nodelink.ToDOT(frame, nodelink.Options{}))
//	png, err := render.ToPNG(svg, 2.0)
package render
