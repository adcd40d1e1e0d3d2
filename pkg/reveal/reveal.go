// Package reveal supplies the subgraphs unlocked by each disclosure step.
//
// Step 1 is the bootstrap graph loaded when a view opens; steps 2 and 3 are
// the subgraphs merged on the first and second successful node click. A
// [Provider] hands out fresh copies on every call, so callers may merge the
// returned nodes without aliasing the provider's data.
//
// Implementations:
//   - [Static]: the reference dataset compiled into the binary
//   - [LoadFile]: a JSON step document on disk
//   - mongo.Provider: documents in a MongoDB collection
package reveal

import (
	"context"
	"errors"

	"github.com/matzehuels/addrscope/pkg/graph"
)

// Step indices.
const (
	StepBootstrap = 1
	StepSecond    = 2
	StepThird     = 3

	// LastStep is the terminal disclosure step.
	LastStep = StepThird
)

// ErrUnknownStep is returned when a provider has no subgraph for a step.
var ErrUnknownStep = errors.New("unknown reveal step")

// Provider looks up the constant subgraph of each disclosure step.
// The context and error exist for remote-backed providers; a local provider
// only fails for steps it does not know.
type Provider interface {
	// Bootstrap returns the step-1 graph.
	Bootstrap(ctx context.Context) (graph.Subgraph, error)
	// StepSubgraph returns the subgraph revealed when step becomes current.
	StepSubgraph(ctx context.Context, step int) (graph.Subgraph, error)
}
