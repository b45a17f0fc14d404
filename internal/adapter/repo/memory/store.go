package memory

import (
	"sync"

	"cookline/internal/app/ports"
)

// Store is the shared backing for the in-memory repositories. It stands in
// for Postgres when no DSN is configured. mu guards the data and is taken by
// every repository method; txMu only serializes whole transactions, so a
// repository call inside RunInTx does not deadlock.
type Store struct {
	mu           sync.RWMutex
	txMu         sync.Mutex
	episodes     []ports.EpisodeRecord
	trajectories map[string][]ports.TrajectoryStep
}

func NewStore() *Store {
	return &Store{
		trajectories: make(map[string][]ports.TrajectoryStep),
	}
}
