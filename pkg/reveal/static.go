package reveal

import (
	"context"
	"fmt"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/graph"
)

// Static serves a fixed set of step subgraphs held in memory.
type Static struct {
	bootstrap graph.Subgraph
	steps     map[int]graph.Subgraph
}

// NewStatic creates a provider over the given bootstrap graph and steps.
// The inputs are copied.
func NewStatic(bootstrap graph.Subgraph, steps map[int]graph.Subgraph) *Static {
	s := &Static{
		bootstrap: bootstrap.Clone(),
		steps:     make(map[int]graph.Subgraph, len(steps)),
	}
	for k, v := range steps {
		s.steps[k] = v.Clone()
	}
	return s
}

// Default returns the provider over the reference address dataset.
func Default() *Static {
	return NewStatic(InitialGraph, map[int]graph.Subgraph{
		StepSecond: StepTwoGraph,
		StepThird:  StepThreeGraph,
	})
}

// Bootstrap returns a copy of the bootstrap graph.
func (s *Static) Bootstrap(context.Context) (graph.Subgraph, error) {
	return s.bootstrap.Clone(), nil
}

// StepSubgraph returns a copy of the subgraph for step.
func (s *Static) StepSubgraph(_ context.Context, step int) (graph.Subgraph, error) {
	if err := errors.ValidateStep(step); err != nil {
		return graph.Subgraph{}, fmt.Errorf("%w: %w", ErrUnknownStep, err)
	}
	sub, ok := s.steps[step]
	if !ok {
		return graph.Subgraph{}, errors.Wrap(errors.ErrCodeInvalidStep, ErrUnknownStep, "step %d", step)
	}
	return sub.Clone(), nil
}

var _ Provider = (*Static)(nil)
