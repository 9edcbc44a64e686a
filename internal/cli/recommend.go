package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	recommendCart  string
	recommendLimit int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print recommendations for a list of product ids",
	Args:  cobra.NoArgs,
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendCart, "cart", "", "comma separated product ids, e.g. 1,2")
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 0, "maximum number of recommendations (default from config)")
	_ = recommendCmd.MarkFlagRequired("cart")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	if engine == nil {
		return errors.New("recommendation engine not configured")
	}

	cart, err := parseIDs(recommendCart)
	if err != nil {
		return err
	}

	m, err := engine.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load matrix: %w", err)
	}

	ids := engine.Recommend(cart, m, recommendLimit)
	if len(ids) == 0 {
		cmd.Println("No recommendations.")
		return nil
	}

	for i, id := range ids {
		cmd.Printf("%d. %d\n", i+1, id)
	}

	return nil
}

func parseIDs(raw string) ([]uint64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("invalid product id %q", p)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New("--cart needs at least one product id")
	}
	return ids, nil
}
