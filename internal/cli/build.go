package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	buildSource     string
	buildOrdersFile string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild the co-occurrence matrix from order history",
	Long: `Reads every past order from the chosen source, counts how often each pair of
products was bought together and replaces the stored matrix with the result.
A malformed order aborts the build and leaves the stored matrix untouched.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildSource, "source", "db", "order history source: db or file")
	buildCmd.Flags().StringVar(&buildOrdersFile, "orders-file", "", "JSON order export used with --source file (default RECO_ORDERS_FILE)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if engine == nil || openSource == nil {
		return errors.New("recommendation engine not configured")
	}

	switch buildSource {
	case "db", "file":
	default:
		return fmt.Errorf("unknown source %q (want db or file)", buildSource)
	}

	ctx := cmd.Context()

	source, closeSource, err := openSource(ctx, buildSource, buildOrdersFile)
	if err != nil {
		return fmt.Errorf("open %s source: %w", buildSource, err)
	}
	defer closeSource()

	orders, err := source.FetchOrders(ctx)
	if err != nil {
		return fmt.Errorf("read order history: %w", err)
	}

	start := time.Now()
	m, err := engine.Build(ctx, orders)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("Co-occurrence matrix built from %d orders: %d products, %d pairs (%s)\n",
		len(orders), len(m), m.Pairs(), time.Since(start).Round(time.Millisecond))

	return nil
}
