package inmemory

import "sync"

type Snapshot struct {
	TickTotal       uint64  `json:"tick_total"`
	EnvStepTotal    uint64  `json:"env_step_total"`
	RewardTotal     int64   `json:"reward_total"`
	DeliveryTotal   uint64  `json:"delivery_total"`
	EpisodesDone    uint64  `json:"episodes_done"`
	ResetTotal      uint64  `json:"reset_total"`
	RewardPerEnvAvg float64 `json:"reward_per_env_avg"`
}

type Recorder struct {
	mu         sync.Mutex
	ticks      uint64
	envSteps   uint64
	reward     int64
	deliveries uint64
	episodes   uint64
	resets     uint64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordTick(envs, reward, deliveries int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	r.envSteps += uint64(envs)
	r.reward += int64(reward)
	r.deliveries += uint64(deliveries)
}

func (r *Recorder) RecordEpisodeDone() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.episodes++
}

func (r *Recorder) RecordReset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TickTotal:     r.ticks,
		EnvStepTotal:  r.envSteps,
		RewardTotal:   r.reward,
		DeliveryTotal: r.deliveries,
		EpisodesDone:  r.episodes,
		ResetTotal:    r.resets,
	}
	if r.envSteps > 0 {
		out.RewardPerEnvAvg = float64(r.reward) / float64(r.envSteps)
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
