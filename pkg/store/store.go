// Package store persists run summaries and per-generation history.
package store

import (
	"context"
	"time"
)

// RunRecord summarises one evolutionary run.
type RunRecord struct {
	ID          string         `json:"id"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at,omitempty"`
	Config      []byte         `json:"config,omitempty"` // JSON-encoded engine config
	Generations int            `json:"generations"`
	Best        *ProgramRecord `json:"best,omitempty"`
}

// ProgramRecord is a snapshot of one Individual.
type ProgramRecord struct {
	ID        string  `json:"id"`
	Program   string  `json:"program"`
	Size      int     `json:"size"`
	Depth     int     `json:"depth"`
	Fitness   float64 `json:"fitness"`
	TestScore float64 `json:"test_score,omitempty"`
}

// GenerationRecord holds the statistics of one ranked generation.
type GenerationRecord struct {
	Generation  int           `json:"generation"`
	BestFitness float64       `json:"best_fitness"`
	AvgFitness  float64       `json:"avg_fitness"`
	AvgSize     float64       `json:"avg_size"`
	Produced    int           `json:"produced"`
	Discarded   int           `json:"discarded"`
	Best        ProgramRecord `json:"best"`
}

// Store defines persistence for runs and their generation history.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	AppendGeneration(ctx context.Context, runID string, gen GenerationRecord) error
	ListGenerations(ctx context.Context, runID string) ([]GenerationRecord, error)
}
