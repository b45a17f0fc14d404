package memory

import (
	"context"
	"sort"

	"cookline/internal/app/ports"
)

type EpisodeRepo struct {
	store *Store
}

func NewEpisodeRepo(store *Store) EpisodeRepo {
	return EpisodeRepo{store: store}
}

func (r EpisodeRepo) Save(_ context.Context, record ports.EpisodeRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.episodes = append(r.store.episodes, record)
	return nil
}

func (r EpisodeRepo) ListRecent(_ context.Context, limit int) ([]ports.EpisodeRecord, error) {
	r.store.mu.RLock()
	out := make([]ports.EpisodeRecord, len(r.store.episodes))
	copy(out, r.store.episodes)
	r.store.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EndedAt.After(out[j].EndedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
