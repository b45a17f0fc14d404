package memory

import (
	"context"

	"cookline/internal/app/ports"
)

type TrajectoryRepo struct {
	store *Store
}

func NewTrajectoryRepo(store *Store) TrajectoryRepo {
	return TrajectoryRepo{store: store}
}

func (r TrajectoryRepo) Save(_ context.Context, episodeID string, steps []ports.TrajectoryStep) error {
	copied := make([]ports.TrajectoryStep, len(steps))
	copy(copied, steps)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.trajectories[episodeID] = copied
	return nil
}

func (r TrajectoryRepo) Get(_ context.Context, episodeID string) ([]ports.TrajectoryStep, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	steps, ok := r.store.trajectories[episodeID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := make([]ports.TrajectoryStep, len(steps))
	copy(out, steps)
	return out, nil
}
