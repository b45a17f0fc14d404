package ports

import (
	"context"
	"time"

	"cookline/internal/domain/kitchen"
)

// EpisodeRecord is the persisted summary of one finished episode.
type EpisodeRecord struct {
	EpisodeID   string
	BatchID     string
	EnvIndex    int
	Layout      string
	Horizon     int
	Ticks       int
	TotalReward int
	Deliveries  int
	EndedAt     time.Time
}

// TrajectoryStep is one tick of a recorded episode: the joint action and
// what it earned.
type TrajectoryStep struct {
	Tick       int
	Actions    []kitchen.Action
	Reward     int
	Deliveries int
}

type EpisodeRepository interface {
	Save(ctx context.Context, record EpisodeRecord) error
	ListRecent(ctx context.Context, limit int) ([]EpisodeRecord, error)
}

type TrajectoryRepository interface {
	Save(ctx context.Context, episodeID string, steps []TrajectoryStep) error
	Get(ctx context.Context, episodeID string) ([]TrajectoryStep, error)
}
