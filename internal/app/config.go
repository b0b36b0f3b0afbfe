package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	RecipePath string // .hcl recipe file or directory
	TrainPath  string // training data csv
	BakePath   string // optional evaluation data csv

	Outcome      string  // overrides the recipe's outcome column when set
	TestFraction float64 // fraction of training rows held out, 0 disables splitting
	Seed         int64   // seed for the row split

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.RecipePath == "" {
		return nil, errors.New("RecipePath is a required configuration field and cannot be empty")
	}
	if cfg.TrainPath == "" {
		return nil, errors.New("TrainPath is a required configuration field and cannot be empty")
	}
	if cfg.TestFraction < 0 || cfg.TestFraction >= 1 {
		return nil, errors.New("TestFraction must be in [0, 1)")
	}
	return &cfg, nil
}
