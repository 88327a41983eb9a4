package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wildfunctions/stdgp/pkg/dataset"
	"github.com/wildfunctions/stdgp/pkg/engine"
	"github.com/wildfunctions/stdgp/pkg/pool"
	"github.com/wildfunctions/stdgp/pkg/store"
	"github.com/wildfunctions/stdgp/pkg/strategy"
)

func newRunCmd() *cobra.Command {
	cfg := engine.DefaultConfig()
	var configPath, metricsAddr string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evolve a program against a CSV dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configPath != "" {
				if err := applyConfigFile(cmd.Flags(), &cfg, configPath); err != nil {
					return err
				}
			}
			if cfg.Data == "" {
				return errors.New("--data is required")
			}
			return runEngine(cmd.Context(), cmd.OutOrStdout(), cfg, metricsAddr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML config file; flags override its values")
	f.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	bindConfigFlags(f, &cfg)
	return cmd
}

// bindConfigFlags registers one flag per engine.Config field.
func bindConfigFlags(f *pflag.FlagSet, cfg *engine.Config) {
	f.StringVar(&cfg.Data, "data", cfg.Data, "CSV dataset with a header row")
	f.StringVar(&cfg.Target, "target", cfg.Target, "target column (default: last column)")
	f.Float64Var(&cfg.TrainFraction, "train-fraction", cfg.TrainFraction, "fraction of rows used for training")
	f.StringVar(&cfg.Pool, "pool", cfg.Pool, "operator pool ("+strings.Join(pool.Names(), ", ")+")")
	f.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "parent selection ("+strings.Join(strategy.Names(), ", ")+")")
	f.IntVar(&cfg.Population, "population", cfg.Population, "population size")
	f.IntVar(&cfg.Generations, "generations", cfg.Generations, "number of generations")
	f.IntVar(&cfg.InitDepth, "init-depth", cfg.InitDepth, "max depth of initial trees")
	f.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "offspring deeper than this are discarded")
	f.IntVar(&cfg.TournamentSize, "tournament-size", cfg.TournamentSize, "tournament size")
	f.IntVar(&cfg.Sf, "sf", cfg.Sf, "double tournament fitness stage size")
	f.IntVar(&cfg.Sp, "sp", cfg.Sp, "double tournament parsimony stage size")
	f.BoolVar(&cfg.Switch, "switch", cfg.Switch, "run the parsimony stage first")
	f.BoolVar(&cfg.FitnessQuality, "fitness-quality", cfg.FitnessQuality, "compare fitness values instead of ranks in tournaments")
	f.IntVar(&cfg.EliteSize, "elite", cfg.EliteSize, "individuals copied unchanged into the next generation")
	f.Float64Var(&cfg.CrossoverRate, "crossover-rate", cfg.CrossoverRate, "probability of crossover over mutation")
	f.StringVar(&cfg.ModelName, "model", cfg.ModelName, "model (regressor, threshold_classifier)")
	f.StringVar(&cfg.FitnessType, "fitness", cfg.FitnessType, "fitness (rmse, accuracy)")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel evaluation workers")
	f.StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json)")
	f.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log and print every generation")
	f.StringVar(&cfg.Store, "store", cfg.Store, "run history backend (memory, sqlite)")
	f.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "sqlite database file")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
}

// applyConfigFile loads path into cfg and then re-applies every flag that
// was set on the command line.
func applyConfigFile(flags *pflag.FlagSet, cfg *engine.Config, path string) error {
	explicit := map[string]string{}
	flags.Visit(func(f *pflag.Flag) { explicit[f.Name] = f.Value.String() })

	fileCfg, err := engine.LoadConfig(path)
	if err != nil {
		return err
	}
	*cfg = fileCfg

	var setErr error
	flags.Visit(func(f *pflag.Flag) {
		if err := f.Value.Set(explicit[f.Name]); err != nil && setErr == nil {
			setErr = fmt.Errorf("flag --%s: %w", f.Name, err)
		}
	})
	return setErr
}

func runEngine(ctx context.Context, w io.Writer, cfg engine.Config, metricsAddr string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	ds, err := dataset.LoadCSV(cfg.Data, cfg.Target)
	if err != nil {
		return err
	}

	s, err := store.NewStore(cfg.Store, cfg.StorePath)
	if err != nil {
		return err
	}
	if err := s.Init(ctx); err != nil {
		return fmt.Errorf("init %s store: %w", cfg.Store, err)
	}
	defer func() {
		if err := store.CloseIfSupported(s); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("serving metrics", "addr", metricsAddr)
	}

	e, err := engine.New(cfg, ds, engine.WithLogger(logger), engine.WithStore(s))
	if err != nil {
		return err
	}
	report, err := e.Run(ctx)
	if err != nil {
		return err
	}

	switch cfg.Format {
	case "json":
		if err := engine.WriteJSONFinal(w, report); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	default:
		engine.WriteTextFinal(w, report)
	}
	return nil
}
