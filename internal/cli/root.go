package cli

import (
	"context"

	"myShopCart/business/recommendation"

	"github.com/spf13/cobra"
)

var version = "dev"

// Engine builds, loads and scores the co-occurrence matrix.
type Engine interface {
	Build(ctx context.Context, orders []recommendation.Order[uint64]) (recommendation.Matrix[uint64], error)
	Load(ctx context.Context) (recommendation.Matrix[uint64], error)
	Recommend(cart []uint64, m recommendation.Matrix[uint64], limit int) []uint64
}

// OrderSource supplies the order history a build runs over.
type OrderSource interface {
	FetchOrders(ctx context.Context) ([]recommendation.Order[uint64], error)
}

// SourceOpener opens the named order source ("db" or "file"). ordersFile is only used by "file".
type SourceOpener func(ctx context.Context, kind, ordersFile string) (OrderSource, func(), error)

var (
	engine     Engine
	openSource SourceOpener
)

var rootCmd = &cobra.Command{
	Use:           "reco-builder",
	Short:         "Build and inspect the product co-occurrence matrix",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Configure wires the services the commands run against.
func Configure(e Engine, open SourceOpener, v string) {
	engine = e
	openSource = open
	if v != "" {
		version = v
	}
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
