package batch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"cookline/internal/app/ports"
	"cookline/internal/domain/kitchen"
)

var ErrInvalidRequest = errors.New("invalid batch request")

const (
	defaultMaxEnvs = 1024
	maxEnvsHard    = 4096
)

// UseCase owns the live batches. Each batch is a set of lockstep
// environments built from one layout; every Step advances all of them by
// exactly one tick.
type UseCase struct {
	Layouts      ports.LayoutProvider
	Episodes     ports.EpisodeRepository
	Trajectories ports.TrajectoryRepository
	Tx           ports.TxManager
	Metrics      ports.StepMetrics
	Publisher    ports.TickPublisher
	NewID        func() string
	Now          func() time.Time
	MaxEnvs      int

	mu      sync.RWMutex
	batches map[string]*Batch
}

type Batch struct {
	ID        string
	Layout    string
	Record    bool
	CreatedAt time.Time

	mu        sync.Mutex
	envs      []*envState
	tick      int
	completed int
}

type envState struct {
	episodeID  string
	ep         *kitchen.Episode
	reward     int
	deliveries int
	trace      []ports.TrajectoryStep
}

func (u *UseCase) Create(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	maxEnvs := u.MaxEnvs
	if maxEnvs <= 0 {
		maxEnvs = defaultMaxEnvs
	}
	if maxEnvs > maxEnvsHard {
		maxEnvs = maxEnvsHard
	}
	if req.Layout == "" || req.NumEnvs <= 0 || req.NumEnvs > maxEnvs || req.Horizon < 0 {
		return CreateResponse{}, fmt.Errorf("%w: layout %q, num_envs %d, horizon %d", ErrInvalidRequest, req.Layout, req.NumEnvs, req.Horizon)
	}

	def, err := u.Layouts.Definition(ctx, req.Layout)
	if err != nil {
		return CreateResponse{}, err
	}
	cfg, err := def.Config()
	if err != nil {
		return CreateResponse{}, err
	}
	if req.Horizon > 0 {
		cfg.Horizon = req.Horizon
	}

	b := &Batch{
		ID:        u.NewID(),
		Layout:    req.Layout,
		Record:    req.Record,
		CreatedAt: u.now(),
		envs:      make([]*envState, req.NumEnvs),
	}
	episodeIDs := make([]string, req.NumEnvs)
	for i := range b.envs {
		ep, err := kitchen.NewEpisode(cfg)
		if err != nil {
			return CreateResponse{}, err
		}
		episodeIDs[i] = u.NewID()
		b.envs[i] = &envState{episodeID: episodeIDs[i], ep: ep}
	}

	u.mu.Lock()
	if u.batches == nil {
		u.batches = make(map[string]*Batch)
	}
	u.batches[b.ID] = b
	u.mu.Unlock()

	probe := b.envs[0].ep
	return CreateResponse{
		BatchID:         b.ID,
		Layout:          req.Layout,
		NumEnvs:         req.NumEnvs,
		NumAgents:       probe.NumAgents(),
		Horizon:         cfg.Horizon,
		Width:           cfg.Width,
		Height:          cfg.Height,
		Channels:        probe.Channels(),
		ObservationSize: probe.ObservationSize(),
		NumActions:      kitchen.NumActions,
		EpisodeIDs:      episodeIDs,
	}, nil
}

func (u *UseCase) Step(ctx context.Context, req StepRequest) (StepResponse, error) {
	b, err := u.batch(req.BatchID)
	if err != nil {
		return StepResponse{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	numAgents := b.envs[0].ep.NumAgents()
	actions, err := decodeActions(req.Actions, len(b.envs), numAgents)
	if err != nil {
		return StepResponse{}, err
	}

	results := make([]EnvStepResult, len(b.envs))
	stepErrs := make([]error, len(b.envs))
	var wg sync.WaitGroup
	for i, env := range b.envs {
		wg.Add(1)
		go func(i int, env *envState) {
			defer wg.Done()
			res, err := env.ep.Step(actions[i])
			if err != nil {
				stepErrs[i] = err
				return
			}
			env.reward += res.Reward
			env.deliveries += res.Deliveries
			if b.Record {
				env.trace = append(env.trace, ports.TrajectoryStep{
					Tick:       env.ep.World.Timestep - 1,
					Actions:    actions[i],
					Reward:     res.Reward,
					Deliveries: res.Deliveries,
				})
			}
			results[i] = EnvStepResult{
				EnvIndex:   i,
				EpisodeID:  env.episodeID,
				Reward:     res.Reward,
				Deliveries: res.Deliveries,
				Done:       res.Done,
			}
		}(i, env)
	}
	wg.Wait()
	for _, err := range stepErrs {
		if err != nil {
			return StepResponse{}, err
		}
	}
	b.tick++

	tickReward, tickDeliveries, doneEnvs := 0, 0, 0
	for i := range results {
		tickReward += results[i].Reward
		tickDeliveries += results[i].Deliveries
		if results[i].Done {
			doneEnvs++
		}
	}

	// Finished environments are finalized and restarted so the batch keeps
	// ticking without a client-side reset.
	for i, env := range b.envs {
		if !results[i].Done {
			continue
		}
		if err := u.finalize(ctx, b, i, env); err != nil {
			return StepResponse{}, err
		}
		env.episodeID = u.NewID()
		env.reward = 0
		env.deliveries = 0
		env.trace = nil
		env.ep.Reset()
		results[i].NextEpisodeID = env.episodeID
		b.completed++
		if u.Metrics != nil {
			u.Metrics.RecordEpisodeDone()
		}
	}

	if u.Metrics != nil {
		u.Metrics.RecordTick(len(b.envs), tickReward, tickDeliveries)
	}
	if u.Publisher != nil {
		u.Publisher.PublishTick(ports.TickEvent{
			BatchID:    b.ID,
			Layout:     b.Layout,
			Tick:       b.tick,
			Reward:     tickReward,
			Deliveries: tickDeliveries,
			DoneEnvs:   doneEnvs,
		})
	}

	return StepResponse{BatchID: b.ID, Tick: b.tick, Results: results}, nil
}

// finalize persists the finished episode's summary and, when recording, its
// trajectory, atomically.
func (u *UseCase) finalize(ctx context.Context, b *Batch, envIndex int, env *envState) error {
	record := ports.EpisodeRecord{
		EpisodeID:   env.episodeID,
		BatchID:     b.ID,
		EnvIndex:    envIndex,
		Layout:      b.Layout,
		Horizon:     env.ep.Config().Horizon,
		Ticks:       env.ep.World.Timestep,
		TotalReward: env.reward,
		Deliveries:  env.deliveries,
		EndedAt:     u.now(),
	}
	trace := env.trace
	return u.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Episodes.Save(txCtx, record); err != nil {
			return err
		}
		if b.Record {
			if err := u.Trajectories.Save(txCtx, record.EpisodeID, trace); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset restarts every environment in place. Episodes cut short this way are
// abandoned, not persisted.
func (u *UseCase) Reset(ctx context.Context, req ResetRequest) (ResetResponse, error) {
	b, err := u.batch(req.BatchID)
	if err != nil {
		return ResetResponse{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	episodeIDs := make([]string, len(b.envs))
	for i, env := range b.envs {
		env.episodeID = u.NewID()
		env.reward = 0
		env.deliveries = 0
		env.trace = nil
		env.ep.Reset()
		episodeIDs[i] = env.episodeID
	}
	b.tick = 0
	if u.Metrics != nil {
		u.Metrics.RecordReset()
	}
	return ResetResponse{BatchID: b.ID, EpisodeIDs: episodeIDs}, nil
}

// EnvFrames renders observations and action masks. envIndex < 0 selects
// every environment.
func (u *UseCase) EnvFrames(ctx context.Context, batchID string, envIndex int) ([]EnvFrames, error) {
	b, err := u.batch(batchID)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if envIndex >= len(b.envs) {
		return nil, fmt.Errorf("%w: env index %d of %d", ErrInvalidRequest, envIndex, len(b.envs))
	}
	lo, hi := envIndex, envIndex+1
	if envIndex < 0 {
		lo, hi = 0, len(b.envs)
	}

	out := make([]EnvFrames, 0, hi-lo)
	for i := lo; i < hi; i++ {
		env := b.envs[i]
		frames := make([]AgentFrame, env.ep.NumAgents())
		for a := range frames {
			mask := env.ep.ActionMask(a)
			frames[a] = AgentFrame{
				Observation: env.ep.Observe(a),
				ActionMask:  mask[:],
			}
		}
		out = append(out, EnvFrames{
			EnvIndex:  i,
			EpisodeID: env.episodeID,
			Timestep:  env.ep.World.Timestep,
			Done:      env.ep.Done(),
			Frames:    frames,
		})
	}
	return out, nil
}

func (u *UseCase) Describe(batchID string) (Description, error) {
	b, err := u.batch(batchID)
	if err != nil {
		return Description{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return Description{
		BatchID:           b.ID,
		Layout:            b.Layout,
		NumEnvs:           len(b.envs),
		NumAgents:         b.envs[0].ep.NumAgents(),
		Tick:              b.tick,
		Horizon:           b.envs[0].ep.Config().Horizon,
		Record:            b.Record,
		EpisodesCompleted: b.completed,
		CreatedAt:         b.CreatedAt,
	}, nil
}

func (u *UseCase) List() []Description {
	u.mu.RLock()
	ids := make([]string, 0, len(u.batches))
	for id := range u.batches {
		ids = append(ids, id)
	}
	u.mu.RUnlock()
	sort.Strings(ids)

	out := make([]Description, 0, len(ids))
	for _, id := range ids {
		if d, err := u.Describe(id); err == nil {
			out = append(out, d)
		}
	}
	return out
}

func (u *UseCase) batch(id string) (*Batch, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing batch id", ErrInvalidRequest)
	}
	u.mu.RLock()
	b, ok := u.batches[id]
	u.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: batch %q", ports.ErrNotFound, id)
	}
	return b, nil
}

func (u *UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}

func decodeActions(raw [][]int, numEnvs, numAgents int) ([][]kitchen.Action, error) {
	if len(raw) != numEnvs {
		return nil, fmt.Errorf("%w: got actions for %d envs, want %d", ErrInvalidRequest, len(raw), numEnvs)
	}
	actions := make([][]kitchen.Action, numEnvs)
	for i, row := range raw {
		if len(row) != numAgents {
			return nil, fmt.Errorf("%w: env %d has %d actions, want %d", ErrInvalidRequest, i, len(row), numAgents)
		}
		actions[i] = make([]kitchen.Action, numAgents)
		for a, v := range row {
			act := kitchen.Action(v)
			if !act.Valid() {
				return nil, fmt.Errorf("%w: env %d agent %d action %d", ErrInvalidRequest, i, a, v)
			}
			actions[i][a] = act
		}
	}
	return actions, nil
}
