package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/integrations/coingecko"
)

// categoriesCommand fetches the market-category hierarchy.
func (c *CLI) categoriesCommand() *cobra.Command {
	var (
		refresh bool
		noCache bool
		asJSON  bool
		top     int
	)

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show cryptocurrency market categories",
		Long: `Show cryptocurrency market categories.

Categories are fetched from CoinGecko and cached. Set
ADDRSCOPE_COINGECKO_API_KEY (or categories.api_key in the config) to use a
demo API key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, closeCache, err := c.newCategoriesClient(ctx, noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Fetching categories...")
			spinner.Start()
			cats := client.FetchCategories(ctx, refresh)
			if cats == nil {
				spinner.StopWithError("Categories are unavailable")
				return errors.New(errors.ErrCodeNetwork, "categories fetch failed (run with -v for details)")
			}
			spinner.Stop()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cats)
			}
			printCategories(cmd.OutOrStdout(), cats, top)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cached response")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the hierarchy as JSON")
	cmd.Flags().IntVar(&top, "top", 15, "number of categories to list")

	return cmd
}

func printCategories(w io.Writer, cats *coingecko.Categories, top int) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for i, cat := range cats.Children {
		if top > 0 && i >= top {
			break
		}
		rows = append(rows, []string{
			cat.Name,
			formatUSD(cat.MarketCap),
			fmt.Sprintf("%+.2f%%", cat.MarketCapChange24h),
			formatUSD(cat.Volume24h),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Category", "Market cap", "24h", "Volume 24h").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleValue
			default:
				return StyleNumber
			}
		})

	fmt.Fprintln(w, StyleTitle.Render(cats.Name)+" "+StyleDim.Render(formatUSD(cats.Value)))
	fmt.Fprintln(w, t.Render())
}

// formatUSD abbreviates a dollar amount: 1234567 → "$1.23M".
func formatUSD(v float64) string {
	switch abs := max(v, -v); {
	case abs >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.2fK", v/1e3)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}
