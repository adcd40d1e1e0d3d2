package disclosure

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/graph"
	"github.com/matzehuels/addrscope/pkg/observability"
	"github.com/matzehuels/addrscope/pkg/reveal"
)

// DefaultRevealAlpha is the energy the layout is reheated to after a reveal.
const DefaultRevealAlpha = 0.8

// Reasons reported in [Outcome.Ignored].
const (
	ReasonUnknownNode = "unknown node"
	ReasonAlreadyOpen = "already open"
)

// Reseeder is notified after a merge changed the live graph.
type Reseeder interface {
	// Reseed makes the layout pick up nodes and links added since the last tick.
	Reseed()
	// Reheat raises the layout energy to alpha and resumes ticking.
	Reheat(alpha float64)
}

// Outcome reports what a click did.
type Outcome struct {
	Address string `json:"address"`
	// Opened is true when the node's not_open flag was flipped.
	Opened bool `json:"opened"`
	// Step is the disclosure step after the click.
	Step int `json:"step"`
	// Revealed is true when a step subgraph was merged.
	Revealed bool `json:"revealed"`
	// Merge is the merge report when Revealed is set.
	Merge graph.MergeResult `json:"-"`
	// Ignored names why nothing changed, if so.
	Ignored string `json:"ignored,omitempty"`
}

// Controller drives disclosure for one view. It is not safe for concurrent
// use; callers serialize clicks with layout ticks.
type Controller struct {
	graph       *graph.State
	provider    reveal.Provider
	layout      Reseeder
	state       State
	revealAlpha float64
	logger      *log.Logger
}

// NewController creates a controller at the initial step over g.
// layout may be nil. If logger is nil, log.Default() is used.
func NewController(g *graph.State, provider reveal.Provider, layout Reseeder, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		graph:       g,
		provider:    provider,
		layout:      layout,
		state:       Initial(),
		revealAlpha: DefaultRevealAlpha,
		logger:      logger,
	}
}

// SetRevealAlpha overrides the energy used to reheat after a reveal.
func (c *Controller) SetRevealAlpha(alpha float64) {
	if alpha > 0 {
		c.revealAlpha = alpha
	}
}

// SetReseeder replaces the layout notified after merges.
func (c *Controller) SetReseeder(r Reseeder) { c.layout = r }

// State returns the current disclosure state.
func (c *Controller) State() State { return c.state }

// NodeClicked applies a click on the node with the given address.
//
// Clicks on unknown or already opened nodes are ignored without error. The
// step subgraph is fetched before anything is mutated, so a provider error
// leaves the graph, the node and the step untouched.
func (c *Controller) NodeClicked(ctx context.Context, address string) (Outcome, error) {
	if err := errors.ValidateAddress(address); err != nil {
		return Outcome{}, err
	}
	out := Outcome{Address: address, Step: c.state.Current}

	node := c.graph.Node(address)
	if node == nil {
		out.Ignored = ReasonUnknownNode
		c.ignored(ctx, address, out.Ignored)
		return out, nil
	}

	next, eff := Transition(c.state, Click{Address: address, NotOpen: node.NotOpen})
	if eff.None() {
		out.Ignored = ReasonAlreadyOpen
		c.ignored(ctx, address, out.Ignored)
		return out, nil
	}

	var sub graph.Subgraph
	if eff.Reveal > 0 {
		var err error
		sub, err = c.provider.StepSubgraph(ctx, eff.Reveal)
		if err != nil {
			observability.Disclosure().OnProviderError(ctx, eff.Reveal, err)
			return out, fmt.Errorf("reveal step %d: %w", eff.Reveal, err)
		}
	}

	node.NotOpen = false
	out.Opened = true
	c.state = next
	out.Step = next.Current
	if eff.Reveal == 0 {
		c.logger.Debug("opened node", "address", address, "step", c.state.Current)
		return out, nil
	}

	res := c.graph.Merge(sub, node)
	out.Revealed = true
	out.Merge = res
	for _, l := range res.Dangling {
		c.logger.Warn("dropped dangling link", "source", l.Source, "target", l.Target, "step", eff.Reveal)
	}
	c.logger.Info("revealed step",
		"step", eff.Reveal,
		"trigger", graph.ShortAddress(address),
		"nodes", len(res.AddedNodes),
		"links", len(res.AddedLinks),
		"synthesized", res.Synthesized)
	observability.Disclosure().OnReveal(ctx, address, eff.Reveal, len(res.AddedNodes), len(res.AddedLinks))

	if c.layout != nil {
		c.layout.Reseed()
		c.layout.Reheat(c.revealAlpha)
	}
	return out, nil
}

func (c *Controller) ignored(ctx context.Context, address, reason string) {
	c.logger.Debug("click ignored", "address", address, "reason", reason)
	observability.Disclosure().OnClickIgnored(ctx, address, reason)
}
