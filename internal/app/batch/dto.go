package batch

import "time"

type CreateRequest struct {
	Layout  string `json:"layout"`
	NumEnvs int    `json:"num_envs"`
	Horizon int    `json:"horizon"`
	Record  bool   `json:"record"`
}

type CreateResponse struct {
	BatchID         string   `json:"batch_id"`
	Layout          string   `json:"layout"`
	NumEnvs         int      `json:"num_envs"`
	NumAgents       int      `json:"num_agents"`
	Horizon         int      `json:"horizon"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	Channels        int      `json:"channels"`
	ObservationSize int      `json:"observation_size"`
	NumActions      int      `json:"num_actions"`
	EpisodeIDs      []string `json:"episode_ids"`
}

type StepRequest struct {
	BatchID string  `json:"batch_id"`
	Actions [][]int `json:"actions"`
}

// EnvStepResult reports one environment's tick. When the episode ended this
// tick the environment has already been reset; NextEpisodeID names the fresh
// episode.
type EnvStepResult struct {
	EnvIndex      int    `json:"env_index"`
	EpisodeID     string `json:"episode_id"`
	Reward        int    `json:"reward"`
	Deliveries    int    `json:"deliveries"`
	Done          bool   `json:"done"`
	NextEpisodeID string `json:"next_episode_id,omitempty"`
}

type StepResponse struct {
	BatchID string          `json:"batch_id"`
	Tick    int             `json:"tick"`
	Results []EnvStepResult `json:"results"`
}

type ResetRequest struct {
	BatchID string `json:"batch_id"`
}

type ResetResponse struct {
	BatchID    string   `json:"batch_id"`
	EpisodeIDs []string `json:"episode_ids"`
}

type AgentFrame struct {
	Observation []int32 `json:"observation"`
	ActionMask  []bool  `json:"action_mask"`
}

type EnvFrames struct {
	EnvIndex  int          `json:"env_index"`
	EpisodeID string       `json:"episode_id"`
	Timestep  int          `json:"timestep"`
	Done      bool         `json:"done"`
	Frames    []AgentFrame `json:"frames"`
}

type Description struct {
	BatchID           string    `json:"batch_id"`
	Layout            string    `json:"layout"`
	NumEnvs           int       `json:"num_envs"`
	NumAgents         int       `json:"num_agents"`
	Tick              int       `json:"tick"`
	Horizon           int       `json:"horizon"`
	Record            bool      `json:"record"`
	EpisodesCompleted int       `json:"episodes_completed"`
	CreatedAt         time.Time `json:"created_at"`
}
