package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/wildfunctions/stdgp/pkg/dataset"
	"github.com/wildfunctions/stdgp/pkg/expr"
	"github.com/wildfunctions/stdgp/pkg/individual"
	"github.com/wildfunctions/stdgp/pkg/pool"
	"github.com/wildfunctions/stdgp/pkg/store"
	"github.com/wildfunctions/stdgp/pkg/strategy"
)

// offspringAttemptsPerSlot bounds ProduceOffspring calls per empty slot in
// the next generation before the engine falls back to fresh grown trees.
const offspringAttemptsPerSlot = 50

var tracer = otel.Tracer("github.com/wildfunctions/stdgp/pkg/engine")

// Engine runs the generational loop: evaluate, rank, keep elites, and fill
// the rest of the population with depth-filtered offspring.
type Engine struct {
	cfg    Config
	seed   int64
	rng    *rand.Rand
	train  *dataset.Dataset
	test   *dataset.Dataset
	indCfg individual.Config
	selCfg strategy.SelectionConfig
	logger *slog.Logger
	store  store.Store
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithStore sets an initialised store for run history. The default is an
// in-memory store.
func WithStore(s store.Store) Option {
	return func(e *Engine) { e.store = s }
}

// New creates an engine for cfg over ds. ds is split into train and test
// partitions with the engine's seeded rng.
func New(cfg Config, ds *dataset.Dataset, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ds == nil || ds.Len() == 0 {
		return nil, dataset.ErrEmpty
	}

	p, err := pool.Get(cfg.Pool, ds.Features)
	if err != nil {
		return nil, err
	}
	params := strategy.Params{
		TournamentSize: cfg.TournamentSize,
		Sf:             cfg.Sf,
		Sp:             cfg.Sp,
		Switch:         cfg.Switch,
	}
	if cfg.FitnessQuality {
		params.Quality = strategy.FitnessQuality
	}
	sel, err := strategy.Get(cfg.Strategy, params)
	if err != nil {
		return nil, err
	}

	indCfg := individual.Config{
		Pool:        p,
		MaxDepth:    cfg.MaxDepth,
		ModelName:   cfg.ModelName,
		FitnessType: cfg.FitnessType,
	}
	if err := individual.ValidateConfig(indCfg); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	train, test, err := ds.Split(rng, cfg.TrainFraction)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		seed:   seed,
		rng:    rng,
		train:  train,
		test:   test,
		indCfg: indCfg,
		selCfg: strategy.SelectionConfig{Selector: sel, CrossoverRate: cfg.CrossoverRate},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		mem := store.NewMemoryStore()
		if err := mem.Init(context.Background()); err != nil {
			return nil, err
		}
		e.store = mem
	}
	return e, nil
}

// Seed returns the seed actually used, which differs from the config when
// the config asked for a random one.
func (e *Engine) Seed() int64 { return e.seed }

// Store returns the store run history is written to.
func (e *Engine) Store() store.Store { return e.store }

// Run executes cfg.Generations evolutionary steps after evaluating the
// initial population and returns the final report. Cancelling ctx stops the
// run between generations.
func (e *Engine) Run(ctx context.Context) (FinalReport, error) {
	runID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "engine.Run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("pool", e.cfg.Pool),
		attribute.String("strategy", e.cfg.Strategy),
		attribute.Int("population", e.cfg.Population),
		attribute.Int("generations", e.cfg.Generations),
		attribute.Int64("seed", e.seed),
	))
	defer span.End()

	cfgJSON, err := json.Marshal(e.cfg)
	if err != nil {
		return FinalReport{}, fmt.Errorf("encode config: %w", err)
	}
	run := store.RunRecord{ID: runID, StartedAt: time.Now().UTC(), Config: cfgJSON}
	if err := e.store.SaveRun(ctx, run); err != nil {
		return FinalReport{}, fmt.Errorf("save run: %w", err)
	}

	e.logger.Info("run started",
		"run_id", runID,
		"pool", e.cfg.Pool,
		"features", e.indCfg.Pool.Terminals(),
		"strategy", e.cfg.Strategy,
		"population", e.cfg.Population,
		"generations", e.cfg.Generations,
		"train_rows", e.train.Len(),
		"test_rows", e.test.Len(),
		"workers", e.cfg.Workers,
		"seed", e.seed,
	)

	population := make([]*individual.Individual, e.cfg.Population)
	for i := range population {
		population[i] = individual.Grow(e.indCfg, e.rng, e.cfg.InitDepth)
	}

	report := FinalReport{RunID: runID, Config: e.cfg, Seed: e.seed}
	var best *individual.Individual
	produced, discarded := 0, 0

	for gen := 0; ; gen++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if err := e.evaluate(ctx, population); err != nil {
			return report, err
		}
		rank(population)

		gr := summarize(gen, population, produced, discarded)
		report.Generations = append(report.Generations, gr)
		if err := e.store.AppendGeneration(ctx, runID, gr.record()); err != nil {
			return report, fmt.Errorf("append generation %d: %w", gen, err)
		}
		generationsTotal.Inc()
		bestFitness.Set(gr.BestFitness)

		improved := best == nil || population[0].Fitness() > best.Fitness()
		if improved {
			best = population[0].Clone()
		}
		switch {
		case e.cfg.Verbose:
			e.logger.Info("generation", gr.attrs()...)
		case improved:
			e.logger.Info("new best", gr.attrs()...)
		default:
			e.logger.Debug("generation", gr.attrs()...)
		}

		if gen == e.cfg.Generations {
			break
		}

		population, produced, discarded, err = e.nextGeneration(ctx, population)
		if err != nil {
			return report, err
		}
	}

	report.Best = programReport(best)
	report.Best.TrainScore = individual.FitnessToScore(e.cfg.FitnessType, best.Fitness())
	if e.test.Len() > 0 {
		if score, ok := best.Score(e.test); ok {
			report.Best.TestScore = &score
		}
	}

	rec := report.Best.record()
	if report.Best.TestScore != nil {
		rec.TestScore = *report.Best.TestScore
	}
	run.FinishedAt = time.Now().UTC()
	run.Generations = len(report.Generations)
	run.Best = &rec
	if err := e.store.SaveRun(ctx, run); err != nil {
		return report, fmt.Errorf("save run: %w", err)
	}

	span.SetAttributes(attribute.Float64("best.fitness", best.Fitness()))
	if !expr.ContainsVar(best.Head()) {
		e.logger.Warn("best program reads no input feature", "best", best.Summary())
	}
	e.logger.Info("run finished",
		"run_id", runID,
		"best", report.Best.Program,
		"fitness", report.Best.Fitness,
		"size", report.Best.Size,
		"depth", report.Best.Depth,
	)
	return report, nil
}

// evaluate computes fitness on the training set for every Individual that
// does not carry one yet.
func (e *Engine) evaluate(ctx context.Context, population []*individual.Individual) error {
	_, span := tracer.Start(ctx, "engine.evaluate")
	defer span.End()
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for _, ind := range population {
		if ind.Evaluated() {
			continue
		}
		ind := ind
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ind.Evaluate(e.train)
			return nil
		})
	}
	err := g.Wait()
	evaluationDuration.Observe(time.Since(start).Seconds())
	return err
}

// nextGeneration copies the elites and fills the remaining slots with
// offspring no deeper than MaxDepth. If offspring keep exceeding the limit,
// the remaining slots get freshly grown trees.
func (e *Engine) nextGeneration(ctx context.Context, population []*individual.Individual) ([]*individual.Individual, int, int, error) {
	_, span := tracer.Start(ctx, "engine.nextGeneration")
	defer span.End()

	n := e.cfg.Population
	elites, err := strategy.Elite(population, e.cfg.EliteSize)
	if err != nil {
		return nil, 0, 0, err
	}
	next := make([]*individual.Individual, 0, n)
	for _, ind := range elites {
		next = append(next, ind.Clone())
	}

	produced, discarded := 0, 0
	maxAttempts := offspringAttemptsPerSlot * (n - len(next))
	for attempts := 0; len(next) < n && attempts < maxAttempts; attempts++ {
		kids, err := strategy.ProduceOffspring(e.rng, population, e.selCfg)
		if err != nil {
			return nil, produced, discarded, err
		}
		kept := strategy.DiscardOverDepth(kids, e.cfg.MaxDepth)
		produced += len(kids)
		discarded += len(kids) - len(kept)
		for _, k := range kept {
			if len(next) < n {
				next = append(next, k)
			}
		}
	}
	offspringTotal.WithLabelValues("kept").Add(float64(produced - discarded))
	offspringTotal.WithLabelValues("discarded").Add(float64(discarded))

	if missing := n - len(next); missing > 0 {
		e.logger.Warn("offspring quota not met, growing fresh trees",
			"missing", missing,
			"produced", produced,
			"discarded", discarded,
		)
		for len(next) < n {
			next = append(next, individual.Grow(e.indCfg, e.rng, e.cfg.InitDepth))
		}
	}
	return next, produced, discarded, nil
}

// rank sorts best first. Ties keep their previous order.
func rank(population []*individual.Individual) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].Fitness() > population[j].Fitness()
	})
}

func summarize(gen int, population []*individual.Individual, produced, discarded int) GenerationReport {
	var sumFit, sumSize float64
	for _, ind := range population {
		sumFit += ind.Fitness()
		sumSize += float64(ind.Size())
	}
	n := float64(len(population))
	return GenerationReport{
		Generation:  gen,
		BestFitness: population[0].Fitness(),
		AvgFitness:  sumFit / n,
		AvgSize:     sumSize / n,
		Produced:    produced,
		Discarded:   discarded,
		Best:        programReport(population[0]),
	}
}
