// Package disclosure implements the step-wise reveal state machine.
//
// A view starts at step 1 with the bootstrap graph loaded. Each click on a
// node that is still expandable (not_open) opens that node and, while steps
// remain, merges the next step's subgraph into the live graph with the
// clicked node as trigger. After two successful reveals the machine is
// terminal: further clicks only open the clicked node.
//
// The step counter is global to a view, not per node. Whichever expandable
// node is clicked next triggers the next reveal.
//
// # Pure Transition
//
// [Transition] is the side-effect-free core:
//
//	next, eff := disclosure.Transition(cur, disclosure.Click{Address: a, NotOpen: true})
//
// # Controller
//
// [Controller] applies transitions to a [graph.State] using a
// [reveal.Provider], then asks its [Reseeder] (normally the layout
// simulation) to pick up the new nodes and reheat.
package disclosure
