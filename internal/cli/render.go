package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/layout"
	"github.com/matzehuels/addrscope/pkg/render/nodelink"
)

// Output formats.
const (
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
	formatDOT = "dot"
)

var validFormats = []string{formatSVG, formatPDF, formatPNG, formatDOT}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file (single format) or base path
	formats    []string // output formats
	clicks     []string // addresses to click when rendering a fresh simulation
	source     string   // reveal source override
	maxTicks   int      // settle budget for a fresh simulation
	linkLabels bool     // draw link labels
	detailed   bool     // add address and type to node labels
	scale      float64  // PNG scale factor
}

// renderCommand renders a frame to SVG, PDF, PNG or DOT.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{maxTicks: defaultMaxTicks, scale: 2}

	cmd := &cobra.Command{
		Use:   "render [frame.json]",
		Short: "Render a layout frame as a node-link diagram",
		Long: `Render a layout frame as a node-link diagram.

With a frame.json argument (written by 'simulate -o') the frame is rendered
as is. Without one, a fresh view is simulated with the given --click
addresses and its settled frame is rendered. Node positions are kept; pinned
nodes get a heavier outline.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := errors.ValidateFormat(f, validFormats); err != nil {
					return err
				}
			}

			var (
				frame layout.Frame
				err   error
			)
			if len(args) == 1 {
				frame, err = readFrameFile(args[0])
			} else {
				frame, err = c.simulateFrame(cmd.Context(), opts)
			}
			if err != nil {
				return err
			}
			return c.runRender(frame, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, png, dot (comma-separated)")
	cmd.Flags().StringArrayVar(&opts.clicks, "click", nil, "address or label to click before rendering (repeatable)")
	cmd.Flags().StringVar(&opts.source, "source", "", "reveal source: static, file, mongo (default from config)")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", opts.maxTicks, "tick budget for settling after each click")
	cmd.Flags().BoolVar(&opts.linkLabels, "labels", false, "draw link labels")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show address and type on nodes")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return parts
}

func readFrameFile(path string) (layout.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layout.Frame{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "frame file %s", path)
		}
		return layout.Frame{}, err
	}
	defer f.Close()
	return layout.ReadFrame(f)
}

func (c *CLI) simulateFrame(ctx context.Context, opts renderOpts) (layout.Frame, error) {
	sess, closeProvider, err := c.openSession(ctx, opts.source)
	if err != nil {
		return layout.Frame{}, err
	}
	defer closeProvider()

	sess.Settle(opts.maxTicks)
	for _, target := range opts.clicks {
		if _, err := sess.Click(ctx, resolveClick(sess.Graph(), target)); err != nil {
			return layout.Frame{}, err
		}
		sess.Settle(opts.maxTicks)
	}
	return sess.Frame(), nil
}

func (c *CLI) runRender(frame layout.Frame, opts renderOpts) error {
	prog := newProgress(c.Logger)
	dot := nodelink.ToDOT(frame, nodelink.Options{LinkLabels: opts.linkLabels, Detailed: opts.detailed})

	for _, format := range opts.formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case formatDOT:
			data = []byte(dot)
		case formatSVG:
			data, err = nodelink.RenderSVG(dot)
		case formatPDF:
			data, err = nodelink.RenderPDF(dot)
		case formatPNG:
			data, err = nodelink.RenderPNG(dot, opts.scale)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}

		path := outputPath(opts.output, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		printFile(path)
	}
	prog.done(fmt.Sprintf("Rendered %d nodes", len(frame.Nodes)))
	return nil
}

// outputPath picks the file for one format. A single format writes to the
// given path as is; several formats share its base name.
func outputPath(output, format string, multi bool) string {
	if output == "" {
		return "addrscope." + format
	}
	if !multi {
		return output
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
}
