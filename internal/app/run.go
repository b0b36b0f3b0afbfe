package app

import (
	"context"
	"fmt"

	"github.com/vk/featurebake/internal/ctxlog"
	"github.com/vk/featurebake/internal/dataset"
	"github.com/vk/featurebake/internal/recipe"
	"github.com/vk/featurebake/internal/report"
	"github.com/vk/featurebake/internal/tabular"
)

// Run executes the main application logic based on the provided configuration:
// load the training data, fit the first loaded recipe on it, report the
// learned parameters, and bake every requested dataset.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	train, err := tabular.ReadCSVFile(cfg.TrainPath)
	if err != nil {
		return fmt.Errorf("failed to load training data: %w", err)
	}
	a.logger.Info("Training data loaded.", "rows", train.Rows(), "columns", train.NumCols())

	var eval *dataset.Dataset
	if cfg.TestFraction > 0 {
		train, eval, err = tabular.SplitRows(train, cfg.TestFraction, cfg.Seed)
		if err != nil {
			return fmt.Errorf("failed to split rows: %w", err)
		}
		a.logger.Info("Rows split.", "train", train.Rows(), "test", eval.Rows())
	}
	if cfg.BakePath != "" {
		eval, err = tabular.ReadCSVFile(cfg.BakePath)
		if err != nil {
			return fmt.Errorf("failed to load evaluation data: %w", err)
		}
		a.logger.Info("Evaluation data loaded.", "rows", eval.Rows(), "columns", eval.NumCols())
	}

	def := a.defs[0]
	if cfg.Outcome != "" {
		override := *def
		override.Outcome = cfg.Outcome
		def = &override
	}

	unfitted, err := def.Bind(train)
	if err != nil {
		return fmt.Errorf("failed to bind recipe %q: %w", def.Name, err)
	}
	fmt.Fprintf(a.outW, "recipe %q over outcome %q\n\n", def.Name, def.Outcome)
	if err := report.WriteCatalog(a.outW, unfitted.Catalog()); err != nil {
		return err
	}

	a.logger.Info("🚀 Preparing recipe on training data...", "steps", len(unfitted.Steps()))
	prepared, err := recipe.Prepare(ctx, unfitted, train)
	if err != nil {
		return fmt.Errorf("prepare failed: %w", err)
	}

	fmt.Fprintln(a.outW)
	if err := report.WriteFitted(a.outW, prepared); err != nil {
		return err
	}

	baked, err := prepared.Bake(ctx, recipe.Cached())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "\nbaked training data: %d rows x %d columns\n", baked.Rows(), baked.NumCols())

	if eval != nil {
		bakedEval, err := prepared.Bake(ctx, recipe.From(eval))
		if err != nil {
			return fmt.Errorf("bake failed: %w", err)
		}
		fmt.Fprintf(a.outW, "baked evaluation data: %d rows x %d columns\n", bakedEval.Rows(), bakedEval.NumCols())
	}

	a.logger.Info("🏁 Done.")
	return nil
}
