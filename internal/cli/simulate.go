package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/addrscope/pkg/disclosure"
	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/explorer"
	"github.com/matzehuels/addrscope/pkg/graph"
	"github.com/matzehuels/addrscope/pkg/layout"
)

// defaultMaxTicks bounds a headless settle; a default layout settles in
// about 300 ticks.
const defaultMaxTicks = 10_000

// simulateOpts holds the command-line flags for the simulate command.
type simulateOpts struct {
	clicks   []string // addresses or labels clicked in order
	maxTicks int      // tick budget for settling after every click
	source   string   // reveal source override
	output   string   // frame or view JSON output path ("-" for stdout)
	view     bool     // write the whole view instead of the frame
	render   string   // comma-separated diagram formats, rendered after settling
}

// simulateCommand runs a view headlessly: bootstrap, clicks, settle.
func (c *CLI) simulateCommand() *cobra.Command {
	opts := simulateOpts{maxTicks: defaultMaxTicks}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay clicks on a view and settle the layout",
		Long: `Replay clicks on a view and settle the layout.

simulate bootstraps the graph, applies each --click in order, lets the
layout settle after every click and reports what each click revealed.
With --output the final frame (or the whole view with --view) is written
as JSON, ready for 'render'. --render writes the settled frame as a
diagram directly (svg, dot, pdf, png). A click may name a node by address
or by its label.`,
		Example: `  addrscope simulate --click 0x75e89d5979e4f6fba9f97c104c2f0afb3f1dcb88
  addrscope simulate --click 0x75e8... --click 0x889e... -o frame.json
  addrscope simulate --click MEXC --render svg,dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.render != "" {
				for _, f := range parseFormats(opts.render) {
					if err := errors.ValidateFormat(f, validFormats); err != nil {
						return err
					}
				}
			}
			return c.runSimulate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.clicks, "click", nil, "address or label to click (repeatable, applied in order)")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", opts.maxTicks, "tick budget for settling after each click")
	cmd.Flags().StringVar(&opts.source, "source", "", "reveal source: static, file, mongo (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the final frame as JSON (- for stdout)")
	cmd.Flags().BoolVar(&opts.view, "view", false, "write the whole view (graph, step, frame) instead of the frame")
	cmd.Flags().StringVar(&opts.render, "render", "", "also render the settled frame: svg, dot, pdf, png (comma-separated)")

	return cmd
}

func (c *CLI) runSimulate(ctx context.Context, stdout io.Writer, opts simulateOpts) error {
	sess, closeProvider, err := c.openSession(ctx, opts.source)
	if err != nil {
		return err
	}
	defer closeProvider()

	prog := newProgress(c.Logger)
	ticks := sess.Settle(opts.maxTicks)
	c.Logger.Debug("bootstrap settled", "ticks", ticks)

	for _, target := range opts.clicks {
		addr := resolveClick(sess.Graph(), target)
		out, err := sess.Click(ctx, addr)
		if err != nil {
			return fmt.Errorf("click %s: %w", graph.ShortAddress(addr), err)
		}
		printOutcome(out)
		ticks := sess.Settle(opts.maxTicks)
		c.Logger.Debug("layout settled", "ticks", ticks, "alpha", sess.Simulation().Alpha())
	}
	prog.done(fmt.Sprintf("Simulated %d clicks", len(opts.clicks)))

	g := sess.Graph()
	printStats(sess.Step(), g.Len(), g.LinkCount(), sess.Simulation().Settled())

	if opts.render != "" {
		if err := c.runRender(sess.Frame(), renderOpts{formats: parseFormats(opts.render), scale: 2}); err != nil {
			return err
		}
	}
	if opts.output == "" {
		return nil
	}
	return writeSessionJSON(stdout, opts.output, sess, opts.view)
}

// resolveClick maps a click target to a node address. Known addresses are
// returned as is; otherwise the first node whose label matches
// (case-insensitively) wins. Unmatched targets pass through so the
// controller reports them as unknown.
func resolveClick(g *graph.State, target string) string {
	if g.Node(target) != nil {
		return target
	}
	for _, n := range g.Nodes() {
		if n.AddressName != "" && strings.EqualFold(n.AddressName, target) {
			return n.Address
		}
	}
	return target
}

// openSession opens the reveal source and bootstraps a session over it.
func (c *CLI) openSession(ctx context.Context, source string) (*explorer.Session, func(), error) {
	provider, closeProvider, err := c.newProvider(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	sessOpts, err := c.sessionOptions()
	if err != nil {
		closeProvider()
		return nil, nil, err
	}
	sess, err := explorer.NewSession(ctx, provider, sessOpts)
	if err != nil {
		closeProvider()
		return nil, nil, err
	}
	return sess, closeProvider, nil
}

func writeSessionJSON(stdout io.Writer, path string, sess *explorer.Session, view bool) error {
	w := stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	var err error
	if view {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(sess.View())
	} else {
		err = layout.WriteFrame(w, sess.Frame())
	}
	if err != nil {
		return err
	}
	if path != "-" {
		printFile(path)
	}
	return nil
}

// printOutcome prints one line per click.
func printOutcome(out disclosure.Outcome) {
	addr := StyleHighlight.Render(graph.ShortAddress(out.Address))
	switch {
	case out.Ignored != "":
		printWarning("%s ignored: %s", graph.ShortAddress(out.Address), out.Ignored)
	case out.Revealed:
		printSuccess("%s revealed step %d", addr, out.Step)
		printDetail("+%d nodes, +%d links", len(out.Merge.AddedNodes), len(out.Merge.AddedLinks))
	default:
		printInfo("%s opened (all steps revealed)", addr)
	}
}
