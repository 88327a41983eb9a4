package engine

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/wildfunctions/stdgp/pkg/individual"
	"github.com/wildfunctions/stdgp/pkg/strategy"
)

// Config holds all parameters for an evolutionary run.
type Config struct {
	Data          string  `yaml:"data" json:"data"`
	Target        string  `yaml:"target" json:"target,omitempty"`
	TrainFraction float64 `yaml:"train_fraction" json:"train_fraction" validate:"gt=0,lte=1"`

	Pool        string `yaml:"pool" json:"pool" validate:"required"`
	Strategy    string `yaml:"strategy" json:"strategy" validate:"required"`
	Population  int    `yaml:"population" json:"population" validate:"gte=1"`
	Generations int    `yaml:"generations" json:"generations" validate:"gte=0"`
	InitDepth   int    `yaml:"init_depth" json:"init_depth" validate:"gte=0"`
	MaxDepth    int    `yaml:"max_depth" json:"max_depth" validate:"gtefield=InitDepth"`

	TournamentSize int  `yaml:"tournament_size" json:"tournament_size" validate:"gte=1"`
	Sf             int  `yaml:"sf" json:"sf" validate:"gte=1"`
	Sp             int  `yaml:"sp" json:"sp" validate:"gte=1"`
	Switch         bool `yaml:"switch" json:"switch"`
	// FitnessQuality compares cached fitness values in tournaments instead
	// of ranks.
	FitnessQuality bool    `yaml:"fitness_quality" json:"fitness_quality"`
	EliteSize      int     `yaml:"elite_size" json:"elite_size" validate:"gte=0,ltefield=Population"`
	CrossoverRate  float64 `yaml:"crossover_rate" json:"crossover_rate" validate:"gte=0,lte=1"`

	ModelName   string `yaml:"model" json:"model" validate:"oneof=regressor threshold_classifier"`
	FitnessType string `yaml:"fitness" json:"fitness" validate:"oneof=rmse accuracy"`

	Seed      int64  `yaml:"seed" json:"seed"`
	Workers   int    `yaml:"workers" json:"workers" validate:"gte=1"`
	Format    string `yaml:"format" json:"format" validate:"oneof=text json"` // "text" or "json"
	Verbose   bool   `yaml:"verbose" json:"verbose"`
	Store     string `yaml:"store" json:"store" validate:"oneof=memory sqlite"`
	StorePath string `yaml:"store_path" json:"store_path,omitempty" validate:"required_if=Store sqlite"`
	LogLevel  string `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TrainFraction:  0.7,
		Pool:           "arithmetic",
		Strategy:       "tournament",
		Population:     500,
		Generations:    100,
		InitDepth:      6,
		MaxDepth:       17,
		TournamentSize: 5,
		Sf:             7,
		Sp:             2,
		EliteSize:      1,
		CrossoverRate:  strategy.DefaultCrossoverRate,
		ModelName:      individual.ModelRegressor,
		FitnessType:    individual.FitnessRMSE,
		Seed:           0, // 0 = random
		Workers:        runtime.NumCPU(),
		Format:         "text",
		Store:          "memory",
		LogLevel:       "info",
	}
}

var validate = validator.New()

// Validate checks field ranges and enumerations.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
