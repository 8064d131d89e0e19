package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tranvictor/balancewatch/config"
	"github.com/tranvictor/balancewatch/ui"
	"github.com/tranvictor/balancewatch/util"
)

// render prints d as JSON when --json is set, otherwise through show.
func render[T any](u ui.UI, d T, show func(ui.UI, T)) error {
	if config.JSONOutput {
		return util.PrintJSON(u.Writer(), d)
	}
	show(u, d)
	return nil
}

func parseThreshold(s string) (decimal.Decimal, error) {
	threshold, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid threshold %q: %w", s, err)
	}
	if threshold.IsNegative() {
		return decimal.Zero, fmt.Errorf("threshold must not be negative, got %s", s)
	}
	return threshold, nil
}

func parseLimit(s string) (int, error) {
	limit, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("limit must be a positive number, got %q", s)
	}
	return limit, nil
}
