package disclosure

import "github.com/matzehuels/addrscope/pkg/reveal"

// State is the disclosure progress of one view.
type State struct {
	// Current is the step whose subgraph was merged last, starting at 1.
	Current int
}

// Initial returns the state of a freshly bootstrapped view.
func Initial() State { return State{Current: reveal.StepBootstrap} }

// Done reports whether no reveal steps remain.
func (s State) Done() bool { return s.Current >= reveal.LastStep }

// Click is a node click as seen by the state machine.
type Click struct {
	Address string
	// NotOpen is the clicked node's not_open flag at click time.
	NotOpen bool
}

// Effect describes what applying a click must do.
type Effect struct {
	// Open is true when the clicked node must be marked opened.
	Open bool
	// Reveal is the step whose subgraph must be merged, or 0 for none.
	Reveal int
}

// None reports whether the effect leaves everything unchanged.
func (e Effect) None() bool { return !e.Open && e.Reveal == 0 }

// Transition computes the next state and the effect of click.
//
// A click on an already opened node is a no-op. Otherwise the node is opened
// and, unless the state is terminal, the next step is revealed and the
// counter advances by one.
func Transition(s State, c Click) (State, Effect) {
	if !c.NotOpen {
		return s, Effect{}
	}
	if s.Done() {
		return s, Effect{Open: true}
	}
	next := State{Current: s.Current + 1}
	return next, Effect{Open: true, Reveal: next.Current}
}
