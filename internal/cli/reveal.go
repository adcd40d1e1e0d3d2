package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/addrscope/pkg/config"
	"github.com/matzehuels/addrscope/pkg/reveal"
	"github.com/matzehuels/addrscope/pkg/reveal/mongo"
)

// revealCommand groups commands that manage reveal step data.
func (c *CLI) revealCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Manage the reveal step subgraphs",
	}

	cmd.AddCommand(c.revealExportCommand())
	cmd.AddCommand(c.revealSeedCommand())

	return cmd
}

// revealExportCommand writes a provider's steps as a JSON step document.
func (c *CLI) revealExportCommand() *cobra.Command {
	var (
		source string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the bootstrap graph and reveal steps as a JSON document",
		Long: `Write the bootstrap graph and reveal steps as a JSON document.

The document can be edited and used with reveal.source = "file", or loaded
into MongoDB with 'reveal seed'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, closeProvider, err := c.newProvider(ctx, source)
			if err != nil {
				return err
			}
			defer closeProvider()

			if output == "" || output == "-" {
				return reveal.WriteDocument(ctx, p, cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := reveal.WriteDocument(ctx, p, f); err != nil {
				return err
			}
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", config.SourceStatic, "reveal source: static, file, mongo")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// revealSeedCommand copies steps into the configured MongoDB collection.
func (c *CLI) revealSeedCommand() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Copy reveal steps into MongoDB",
		Long: `Copy reveal steps into MongoDB.

Steps are read from --source (the built-in dataset by default) and upserted
into the collection named by reveal.mongo_uri, reveal.database and
reveal.collection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}

			src, closeSource, err := c.newProvider(ctx, source)
			if err != nil {
				return err
			}
			defer closeSource()

			spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Connecting to MongoDB...")
			spinner.Start()
			dst, err := mongo.Connect(ctx, cfg.MongoConfig())
			if err != nil {
				spinner.StopWithError("MongoDB is unreachable")
				return err
			}
			defer dst.Close(ctx)

			spinner.SetMessage("Seeding reveal steps...")
			if err := dst.Seed(ctx, src); err != nil {
				spinner.StopWithError("Seeding failed")
				return err
			}
			spinner.StopWithSuccess("Seeded %d steps", reveal.LastStep)
			printDetail("%s.%s", cfg.Reveal.Database, cfg.Reveal.Collection)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", config.SourceStatic, "steps to copy: static or file")

	return cmd
}
