// Package layout runs the force-directed simulation over a live graph.
//
// The simulation follows d3-force semantics: every tick decays the energy
// scalar alpha toward its target, applies a link force, an exact many-body
// repulsion and a centering force, then integrates velocities with friction.
// Ticking stops once alpha falls below its minimum and resumes when the graph
// changes ([Simulation.Reheat]) or a drag begins.
//
// The simulation re-reads the node and link slices of its [Source] on every
// tick, so nodes appended by a merge are picked up without rebuilding it.
// Nodes that have no position yet are placed on a phyllotaxis spiral around
// the anchor.
//
// # Dragging
//
// A drag pins a node. While any drag is active the simulation holds alpha
// near a non-zero floor so the rest of the graph keeps moving:
//
//	sim.DragStart(addr)
//	sim.DragMove(addr, 420, 180)
//	sim.DragEnd(addr)
//
// # Output
//
// [Simulation.Frame] captures node positions and link segments, including
// the midpoint used for label placement.
package layout
