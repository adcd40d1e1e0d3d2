package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/addrscope/internal/server"
	"github.com/matzehuels/addrscope/pkg/metrics"
)

// serveCommand starts the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		source    string
		maxViews  int
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve explorer views over HTTP",
		Long: `Serve explorer views over HTTP.

Each POST /api/v1/views creates an independent view whose layout ticks on
the server. Clicks and drags are posted to the view; GET returns the
current graph and frame. Prometheus metrics are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if maxViews <= 0 {
				maxViews = cfg.Server.MaxViews
			}

			provider, closeProvider, err := c.newProvider(ctx, source)
			if err != nil {
				return err
			}
			defer closeProvider()

			categories, closeCache, err := c.newCategoriesClient(ctx, noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			var reg *metrics.Registry
			if !noMetrics {
				reg = metrics.DefaultRegistry()
				reg.Install()
			}

			sessOpts, err := c.sessionOptions()
			if err != nil {
				return err
			}
			srv, err := server.New(server.Options{
				Provider:      provider,
				Session:       sessOpts,
				FrameInterval: cfg.Layout.FrameInterval.Std(),
				MaxViews:      maxViews,
				Categories:    categories,
				Metrics:       reg,
				Logger:        c.Logger,
			})
			if err != nil {
				return err
			}

			printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&source, "source", "", "reveal source: static, file, mongo (default from config)")
	cmd.Flags().IntVar(&maxViews, "max-views", 0, "maximum number of live views (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the categories response cache")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable Prometheus metrics")

	return cmd
}

// displayAddr turns a bare ":port" listen address into a clickable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
