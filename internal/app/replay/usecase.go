package replay

import (
	"context"
	"errors"
	"strings"

	"cookline/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const defaultListLimit = 50

type UseCase struct {
	Episodes     ports.EpisodeRepository
	Trajectories ports.TrajectoryRepository
}

func (u UseCase) ListEpisodes(ctx context.Context, req EpisodesRequest) (EpisodesResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	records, err := u.Episodes.ListRecent(ctx, limit)
	if err != nil {
		return EpisodesResponse{}, err
	}
	episodes := make([]EpisodeSummary, len(records))
	for i, r := range records {
		episodes[i] = EpisodeSummary{
			EpisodeID:   r.EpisodeID,
			BatchID:     r.BatchID,
			EnvIndex:    r.EnvIndex,
			Layout:      r.Layout,
			Horizon:     r.Horizon,
			Ticks:       r.Ticks,
			TotalReward: r.TotalReward,
			Deliveries:  r.Deliveries,
			EndedAt:     r.EndedAt,
		}
	}
	return EpisodesResponse{Episodes: episodes}, nil
}

func (u UseCase) Trajectory(ctx context.Context, req TrajectoryRequest) (TrajectoryResponse, error) {
	if strings.TrimSpace(req.EpisodeID) == "" {
		return TrajectoryResponse{}, ErrInvalidRequest
	}
	recorded, err := u.Trajectories.Get(ctx, req.EpisodeID)
	if err != nil {
		return TrajectoryResponse{}, err
	}
	steps := make([]Step, len(recorded))
	for i, s := range recorded {
		actions := make([]int, len(s.Actions))
		for a, act := range s.Actions {
			actions[a] = int(act)
		}
		steps[i] = Step{
			Tick:       s.Tick,
			Actions:    actions,
			Reward:     s.Reward,
			Deliveries: s.Deliveries,
		}
	}
	return TrajectoryResponse{EpisodeID: req.EpisodeID, Steps: steps}, nil
}
