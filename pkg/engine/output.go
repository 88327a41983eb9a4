package engine

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wildfunctions/stdgp/pkg/individual"
	"github.com/wildfunctions/stdgp/pkg/store"
)

// ProgramReport describes one Individual.
type ProgramReport struct {
	ID         string   `json:"id"`
	Program    string   `json:"program"`
	LaTeX      string   `json:"latex"`
	Size       int      `json:"size"`
	Depth      int      `json:"depth"`
	Fitness    float64  `json:"fitness"`
	TrainScore float64  `json:"train_score"`
	TestScore  *float64 `json:"test_score,omitempty"`
}

// GenerationReport summarizes one ranked generation.
type GenerationReport struct {
	Generation  int           `json:"generation"`
	BestFitness float64       `json:"best_fitness"`
	AvgFitness  float64       `json:"avg_fitness"`
	AvgSize     float64       `json:"avg_size"`
	Produced    int           `json:"produced"`
	Discarded   int           `json:"discarded"`
	Best        ProgramReport `json:"best"`
}

// FinalReport summarizes the entire run.
type FinalReport struct {
	RunID       string             `json:"run_id"`
	Config      Config             `json:"config"`
	Seed        int64              `json:"seed"`
	Generations []GenerationReport `json:"generations,omitempty"`
	Best        ProgramReport      `json:"best"`
}

func programReport(ind *individual.Individual) ProgramReport {
	return ProgramReport{
		ID:      ind.ID.String(),
		Program: ind.String(),
		LaTeX:   ind.LaTeX(),
		Size:    ind.Size(),
		Depth:   ind.Depth(),
		Fitness: ind.Fitness(),
	}
}

func (p ProgramReport) record() store.ProgramRecord {
	return store.ProgramRecord{
		ID:      p.ID,
		Program: p.Program,
		Size:    p.Size,
		Depth:   p.Depth,
		Fitness: p.Fitness,
	}
}

func (r GenerationReport) record() store.GenerationRecord {
	return store.GenerationRecord{
		Generation:  r.Generation,
		BestFitness: r.BestFitness,
		AvgFitness:  r.AvgFitness,
		AvgSize:     r.AvgSize,
		Produced:    r.Produced,
		Discarded:   r.Discarded,
		Best:        r.Best.record(),
	}
}

func (r GenerationReport) attrs() []any {
	return []any{
		"gen", r.Generation,
		"best_fitness", r.BestFitness,
		"avg_fitness", r.AvgFitness,
		"avg_size", r.AvgSize,
		"discarded", r.Discarded,
		"best", r.Best.Program,
	}
}

// WriteTextReport writes a generation report in human-readable format.
func WriteTextReport(w io.Writer, r GenerationReport) {
	fmt.Fprintf(w, "Gen %4d | Best: %.6g | Avg: %.6g | Size: %.1f | Discarded: %d/%d | %s\n",
		r.Generation, r.BestFitness, r.AvgFitness, r.AvgSize,
		r.Discarded, r.Produced, r.Best.Program)
}

// WriteTextFinal writes the final report in human-readable format.
func WriteTextFinal(w io.Writer, r FinalReport) {
	if r.Config.Verbose {
		for _, g := range r.Generations {
			WriteTextReport(w, g)
		}
	}
	fmt.Fprintln(w, "\n========== FINAL RESULT ==========")
	fmt.Fprintf(w, "Run:       %s\n", r.RunID)
	fmt.Fprintf(w, "Strategy:  %s\n", r.Config.Strategy)
	fmt.Fprintf(w, "Pool:      %s\n", r.Config.Pool)
	fmt.Fprintf(w, "Seed:      %d\n", r.Seed)
	fmt.Fprintf(w, "Best:      %s\n", r.Best.Program)
	fmt.Fprintf(w, "LaTeX:     %s\n", r.Best.LaTeX)
	fmt.Fprintf(w, "Size:      %d (depth %d)\n", r.Best.Size, r.Best.Depth)
	fmt.Fprintf(w, "Fitness:   %.6g\n", r.Best.Fitness)
	fmt.Fprintf(w, "Train %s: %.6g\n", r.Config.FitnessType, r.Best.TrainScore)
	if r.Best.TestScore != nil {
		fmt.Fprintf(w, "Test %s:  %.6g\n", r.Config.FitnessType, *r.Best.TestScore)
	}
	fmt.Fprintln(w, "==================================")
}

// WriteJSONFinal writes the final report as JSON.
func WriteJSONFinal(w io.Writer, r FinalReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
