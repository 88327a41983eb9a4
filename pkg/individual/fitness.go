package individual

import (
	"errors"
	"fmt"
	"math"

	"github.com/wildfunctions/stdgp/pkg/dataset"
)

// Model tags select how raw tree output becomes a prediction.
const (
	ModelRegressor           = "regressor"
	ModelThresholdClassifier = "threshold_classifier"
)

// Fitness types select the error measure. RMSE is stored negated so that
// every fitness is higher-is-better.
const (
	FitnessRMSE     = "rmse"
	FitnessAccuracy = "accuracy"
)

// WorstFitness is assigned to unevaluated Individuals and to programs that
// fail to evaluate on some row.
const WorstFitness = -1e9

// ValidateConfig checks the model and fitness tags.
func ValidateConfig(cfg Config) error {
	if cfg.Pool == nil {
		return errors.New("individual config: pool is required")
	}
	switch cfg.ModelName {
	case ModelRegressor, ModelThresholdClassifier:
	default:
		return fmt.Errorf("unknown model: %s", cfg.ModelName)
	}
	switch cfg.FitnessType {
	case FitnessRMSE, FitnessAccuracy:
	default:
		return fmt.Errorf("unknown fitness type: %s", cfg.FitnessType)
	}
	return nil
}

// Predict runs the tree on one row and applies the model.
func (ind *Individual) Predict(row []float64) (float64, bool) {
	out, ok := ind.head.EvalF64(row)
	if !ok {
		return 0, false
	}
	if ind.cfg.ModelName == ModelThresholdClassifier {
		if out > 0 {
			return 1, true
		}
		return 0, true
	}
	return out, true
}

// Score computes the raw measure (RMSE or accuracy) on ds without touching
// the fitness cache. ok is false when some row fails to evaluate.
func (ind *Individual) Score(ds *dataset.Dataset) (float64, bool) {
	if ds == nil || ds.Len() == 0 {
		return 0, false
	}

	var sumSq float64
	correct := 0
	for i, row := range ds.X {
		pred, ok := ind.Predict(row)
		if !ok {
			return 0, false
		}
		switch ind.cfg.FitnessType {
		case FitnessAccuracy:
			if math.Round(pred) == math.Round(ds.Y[i]) {
				correct++
			}
		default:
			d := pred - ds.Y[i]
			sumSq += d * d
		}
	}

	n := float64(ds.Len())
	if ind.cfg.FitnessType == FitnessAccuracy {
		return float64(correct) / n, true
	}
	rmse := math.Sqrt(sumSq / n)
	if math.IsInf(rmse, 0) || math.IsNaN(rmse) {
		return 0, false
	}
	return rmse, true
}

// ScoreToFitness maps a raw score onto the higher-is-better fitness scale.
func ScoreToFitness(fitnessType string, score float64) float64 {
	if fitnessType == FitnessAccuracy {
		return score
	}
	f := -score
	if f < WorstFitness {
		return WorstFitness
	}
	return f
}

// FitnessToScore inverts ScoreToFitness for reporting.
func FitnessToScore(fitnessType string, fitness float64) float64 {
	if fitnessType == FitnessAccuracy {
		return fitness
	}
	return -fitness
}

// Evaluate computes and caches fitness on ds and returns it. Each
// Individual may be evaluated from its own goroutine.
func (ind *Individual) Evaluate(ds *dataset.Dataset) float64 {
	score, ok := ind.Score(ds)
	if !ok {
		ind.fitness = WorstFitness
	} else {
		ind.fitness = ScoreToFitness(ind.cfg.FitnessType, score)
	}
	ind.evaluated = true
	return ind.fitness
}

// SetFitness stores a precomputed fitness, for callers that evaluate
// elsewhere or restore a checkpoint.
func (ind *Individual) SetFitness(f float64) {
	ind.fitness = f
	ind.evaluated = true
}
