package main

import (
	"context"
	"errors"
	"fmt"

	"numfacts/internal/facts"
	"numfacts/internal/factservice"
	"numfacts/internal/logging"
	"numfacts/internal/picker"
	"numfacts/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	getCategory string
	getAll      bool
)

// getCmd fetches a fact without the interactive screen
var getCmd = &cobra.Command{
	Use:   "get <number>",
	Short: "Print a fact about a number",
	Long: `Fetches a fact through the same state machine the interactive screen
uses and prints it.

Examples:
  numfacts get 42
  numfacts get 1969 --category year
  numfacts get 7 --all`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVar(&getCategory, "category", picker.Trivia, "Fact category (trivia, math, year)")
	getCmd.Flags().BoolVar(&getAll, "all", false, "Fetch every category concurrently")
}

// result is one category's outcome.
type result struct {
	category string
	state    facts.State
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Headless runs log to stderr with --verbose, otherwise as configured.
	if verbose {
		logging.Use(logger)
	} else if err := startLogging(cfg); err != nil {
		return err
	}

	number := args[0]
	categories := []string{getCategory}
	if getAll {
		categories = picker.DefaultOptions()
	} else if !picker.IsDefault(getCategory) {
		logger.Warn("unknown category, sending as-is", zap.String("category", getCategory))
	}

	results, err := fetchAll(ctx, newService(cfg), initialState(cfg), number, categories)
	if err != nil {
		return err
	}

	var failed []error
	for _, r := range results {
		prefix := ""
		if getAll {
			prefix = picker.Title(r.category) + ": "
		}
		// A failed fetch leaves any earlier fact in place, so the error wins.
		if r.state.HasError() {
			failed = append(failed, fmt.Errorf("%s: %s", r.category, r.state.ErrorText()))
			continue
		}
		fmt.Printf("%s%s\n", prefix, r.state.FactText())
	}
	if len(failed) > 0 {
		return fmt.Errorf("fetch failed: %w", errors.Join(failed...))
	}
	return nil
}

// fetchAll runs one store per category concurrently. Results keep the order
// of categories.
func fetchAll(ctx context.Context, svc factservice.Service, initial facts.State, number string, categories []string) ([]result, error) {
	results := make([]result, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		g.Go(func() error {
			st, err := fetchOne(gctx, svc, initial, number, category)
			if err != nil {
				return fmt.Errorf("%s: %w", category, err)
			}
			results[i] = result{category: category, state: st}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// fetchOne drives a fresh store through input, selection and fetch, and
// returns the settled state.
func fetchOne(ctx context.Context, svc factservice.Service, initial facts.State, number, category string) (facts.State, error) {
	ctx, cancel := context.WithCancel(ctx)
	st := store.New(facts.NewReducer(svc), initial)

	runErr := make(chan error, 1)
	go func() { runErr <- st.Run(ctx) }()
	defer func() {
		cancel()
		<-runErr
	}()

	for _, a := range []facts.Action{
		facts.SetNumber(number),
		facts.SelectCategory(category),
		facts.FetchRequested{},
	} {
		if err := st.Dispatch(ctx, a); err != nil {
			return facts.State{}, err
		}
	}

	return st.WaitFor(ctx, func(s facts.State) bool {
		return !s.IsLoading && (s.HasFact() || s.HasError())
	})
}
