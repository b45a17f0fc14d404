package replay

import "time"

type EpisodesRequest struct {
	Limit int `json:"limit,omitempty"`
}

type EpisodeSummary struct {
	EpisodeID   string    `json:"episode_id"`
	BatchID     string    `json:"batch_id"`
	EnvIndex    int       `json:"env_index"`
	Layout      string    `json:"layout"`
	Horizon     int       `json:"horizon"`
	Ticks       int       `json:"ticks"`
	TotalReward int       `json:"total_reward"`
	Deliveries  int       `json:"deliveries"`
	EndedAt     time.Time `json:"ended_at"`
}

type EpisodesResponse struct {
	Episodes []EpisodeSummary `json:"episodes"`
}

type TrajectoryRequest struct {
	EpisodeID string `json:"episode_id"`
}

type Step struct {
	Tick       int   `json:"tick"`
	Actions    []int `json:"actions"`
	Reward     int   `json:"reward"`
	Deliveries int   `json:"deliveries"`
}

type TrajectoryResponse struct {
	EpisodeID string `json:"episode_id"`
	Steps     []Step `json:"steps"`
}
