// Package cli — meta.go implements the "janus meta" command.
//
// Meta fetches the exchange metadata and lists every product that
// maps onto a registered coin, with its size decimals and the
// exchange-native coin identifier used in websocket subscriptions.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/janus-labs/janus/internal/hyperliquid"
)

// metaFlags holds the flag values for the meta command.
type metaFlags struct {
	env string // --env: exchange environment (dev or prod)
}

// metaRow is one product row in the output.
type metaRow struct {
	Product  string `json:"product"`
	Kind     string `json:"kind"`
	Coin     string `json:"coin"`
	Decimals int    `json:"decimals"`
}

// NewMetaCommand creates the "meta" cobra command.
func NewMetaCommand() *cobra.Command {
	flags := &metaFlags{}

	cmd := &cobra.Command{
		Use:   "meta",
		Short: "List exchange products and their metadata",
		Long: `Fetch the Hyperliquid trading universe and list the products janus
knows how to record: every perpetual with a registered base coin, and
every spot pair whose base and quote coins are both registered.

Examples:
  janus meta
  janus meta --env prod --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeta(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.env, "env", "dev", "Exchange environment (dev or prod)")

	return cmd
}

// runMeta fetches and prints the product metadata.
func runMeta(ctx context.Context, flags *metaFlags) error {
	env, err := hyperliquid.ParseEnv(flags.env)
	if err != nil {
		return err
	}

	client := hyperliquid.NewClient(env)

	perpMeta, err := client.Meta(ctx)
	if err != nil {
		return err
	}
	spotMeta, err := client.SpotMeta(ctx)
	if err != nil {
		return err
	}

	perps, err := hyperliquid.BuildPerpetualMetadata(perpMeta)
	if err != nil {
		return err
	}
	spots, err := hyperliquid.BuildSpotMetadata(spotMeta)
	if err != nil {
		return err
	}

	var rows []metaRow
	for product, pm := range perps {
		rows = append(rows, metaRow{Product: product.String(), Kind: "perp", Coin: pm.Coin, Decimals: pm.Decimals})
	}
	for product, pm := range spots {
		rows = append(rows, metaRow{Product: product.String(), Kind: "spot", Coin: pm.Coin, Decimals: pm.Decimals})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Product < rows[j].Product })

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(rows, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%-12s %-5s %-12s %s\n", "PRODUCT", "KIND", "COIN", "DECIMALS")
	for _, row := range rows {
		fmt.Printf("%-12s %-5s %-12s %d\n", row.Product, row.Kind, row.Coin, row.Decimals)
	}
	return nil
}
