package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cookline/internal/app/ports"
	"cookline/internal/domain/layout"
)

type fakeLayouts struct {
	def layout.Definition
}

func (f fakeLayouts) Definition(ctx context.Context, name string) (layout.Definition, error) {
	if name != f.def.Name {
		return layout.Definition{}, fmt.Errorf("%w: layout %q", ports.ErrNotFound, name)
	}
	return f.def, nil
}

func (f fakeLayouts) List(ctx context.Context) ([]string, error) {
	return []string{f.def.Name}, nil
}

type fakeEpisodeRepo struct {
	saved []ports.EpisodeRecord
}

func (f *fakeEpisodeRepo) Save(ctx context.Context, record ports.EpisodeRecord) error {
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakeEpisodeRepo) ListRecent(ctx context.Context, limit int) ([]ports.EpisodeRecord, error) {
	return f.saved, nil
}

type fakeTrajectoryRepo struct {
	saved map[string][]ports.TrajectoryStep
}

func (f *fakeTrajectoryRepo) Save(ctx context.Context, episodeID string, steps []ports.TrajectoryStep) error {
	if f.saved == nil {
		f.saved = map[string][]ports.TrajectoryStep{}
	}
	f.saved[episodeID] = steps
	return nil
}

func (f *fakeTrajectoryRepo) Get(ctx context.Context, episodeID string) ([]ports.TrajectoryStep, error) {
	steps, ok := f.saved[episodeID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return steps, nil
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeMetrics struct {
	ticks, episodes, resets int
	reward, deliveries      int
}

func (f *fakeMetrics) RecordTick(envs, reward, deliveries int) {
	f.ticks++
	f.reward += reward
	f.deliveries += deliveries
}

func (f *fakeMetrics) RecordEpisodeDone() { f.episodes++ }
func (f *fakeMetrics) RecordReset()       { f.resets++ }

type fakePublisher struct {
	events []ports.TickEvent
}

func (f *fakePublisher) PublishTick(event ports.TickEvent) {
	f.events = append(f.events, event)
}

type testDeps struct {
	episodes     *fakeEpisodeRepo
	trajectories *fakeTrajectoryRepo
	tx           *fakeTx
	metrics      *fakeMetrics
	publisher    *fakePublisher
}

func newUseCase(t *testing.T, def layout.Definition) (*UseCase, *testDeps) {
	t.Helper()
	deps := &testDeps{
		episodes:     &fakeEpisodeRepo{},
		trajectories: &fakeTrajectoryRepo{},
		tx:           &fakeTx{},
		metrics:      &fakeMetrics{},
		publisher:    &fakePublisher{},
	}
	seq := 0
	u := &UseCase{
		Layouts:      fakeLayouts{def: def},
		Episodes:     deps.episodes,
		Trajectories: deps.trajectories,
		Tx:           deps.tx,
		Metrics:      deps.metrics,
		Publisher:    deps.publisher,
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
		Now: func() time.Time { return time.Unix(1700000000, 0) },
	}
	return u, deps
}

func soloKitchen(horizon int) layout.Definition {
	return layout.Definition{
		Name:    "solo",
		Grid:    "XPXX\nO1 S\nXDXX",
		Horizon: horizon,
		Orders:  []layout.Order{{Onions: 3}},
	}
}

func stayActions(numEnvs, numAgents int) [][]int {
	out := make([][]int, numEnvs)
	for i := range out {
		out[i] = make([]int, numAgents)
		for a := range out[i] {
			out[i][a] = 4
		}
	}
	return out
}

func TestCreateValidatesRequest(t *testing.T) {
	u, _ := newUseCase(t, soloKitchen(0))
	cases := []CreateRequest{
		{Layout: "", NumEnvs: 1},
		{Layout: "solo", NumEnvs: 0},
		{Layout: "solo", NumEnvs: -3},
		{Layout: "solo", NumEnvs: 1, Horizon: -1},
	}
	for _, req := range cases {
		if _, err := u.Create(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("%+v: expected ErrInvalidRequest, got %v", req, err)
		}
	}
	if _, err := u.Create(context.Background(), CreateRequest{Layout: "nope", NumEnvs: 1}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown layout, got %v", err)
	}
}

func TestCreateReportsGeometry(t *testing.T) {
	u, _ := newUseCase(t, soloKitchen(0))
	res, err := u.Create(context.Background(), CreateRequest{Layout: "solo", NumEnvs: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.NumEnvs != 3 || res.NumAgents != 1 {
		t.Fatalf("unexpected shape: %+v", res)
	}
	if res.Width != 4 || res.Height != 3 {
		t.Fatalf("unexpected grid: %+v", res)
	}
	if res.Channels != 5*1+16 {
		t.Fatalf("channels %d, want 21", res.Channels)
	}
	if res.ObservationSize != res.Width*res.Height*res.Channels {
		t.Fatalf("observation size %d inconsistent with geometry", res.ObservationSize)
	}
	if res.Horizon != layout.DefaultHorizon {
		t.Fatalf("horizon %d, want default", res.Horizon)
	}
	if len(res.EpisodeIDs) != 3 {
		t.Fatalf("expected one episode id per env, got %v", res.EpisodeIDs)
	}
}

func TestCreateHorizonOverride(t *testing.T) {
	u, _ := newUseCase(t, soloKitchen(0))
	created, err := u.Create(context.Background(), CreateRequest{Layout: "solo", NumEnvs: 1, Horizon: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Horizon != 2 {
		t.Fatalf("horizon %d, want override 2", created.Horizon)
	}

	if _, err := u.Step(context.Background(), StepRequest{BatchID: created.BatchID, Actions: stayActions(1, 1)}); err != nil {
		t.Fatalf("step 1: %v", err)
	}
	res, err := u.Step(context.Background(), StepRequest{BatchID: created.BatchID, Actions: stayActions(1, 1)})
	if err != nil {
		t.Fatalf("step 2: %v", err)
	}
	if !res.Results[0].Done {
		t.Fatalf("expected episode done at overridden horizon, got %+v", res.Results[0])
	}
}

func TestStepAdvancesAllEnvsInLockstep(t *testing.T) {
	u, _ := newUseCase(t, soloKitchen(0))
	created, err := u.Create(context.Background(), CreateRequest{Layout: "solo", NumEnvs: 4})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := u.Step(context.Background(), StepRequest{BatchID: created.BatchID, Actions: stayActions(4, 1)})
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if res.Tick != 1 || len(res.Results) != 4 {
		t.Fatalf("unexpected step response: %+v", res)
	}
	frames, err := u.EnvFrames(context.Background(), created.BatchID, -1)
	if err != nil {
		t.Fatalf("frames: %v", err)
	}
	for _, f := range frames {
		if f.Timestep != 1 {
			t.Fatalf("env %d at timestep %d, want lockstep 1", f.EnvIndex, f.Timestep)
		}
	}
}

func TestStepRejectsMalformedActions(t *testing.T) {
	u, _ := newUseCase(t, soloKitchen(0))
	created, err := u.Create(context.Background(), CreateRequest{Layout: "solo", NumEnvs: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := [][][]int{
		stayActions(1, 1), // wrong env count
		stayActions(2, 3), // wrong agent count
		{{4}, {99}},       // out-of-range action
	}
	for i, actions := range cases {
		req := StepRequest{BatchID: created.BatchID, Actions: actions}
		if _, err := u.Step(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("case %d: expected ErrInvalidRequest, got %v", i, err)
		}
	}
	if _, err := u.Step(context.Background(), StepRequest{BatchID: "ghost", Actions: stayActions(2, 1)}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown batch, got %v", err)
	}
}

func TestEpisodeFinalizationAndAutoReset(t *testing.T) {
	u, deps := newUseCase(t, soloKitchen(2))
	created, err := u.Create(context.Background(), CreateRequest{Layout: "solo", NumEnvs: 1, Record: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := u.Step(context.Background(), StepRequest{BatchID: created.BatchID, Actions: stayActions(1, 1)}); err != nil {
		t.Fatalf("step 1: %v", err)
	}
	res, err := u.Step(context.Background(), StepRequest{BatchID: created.BatchID, Actions: stayActions(1, 1)})
	if err != nil {
		t.Fatalf("step 2: %v", err)
	}

	r := res.Results[0]
	if !r.Done {
		t.Fatalf("expected episode done at horizon 2, got %+v", r)
	}
	if r.EpisodeID != created.EpisodeIDs[0] {
		t.Fatalf("result attributed to %q, want %q", r.EpisodeID, created.EpisodeIDs[0])
	}
	if r.NextEpisodeID == "" || r.NextEpisodeID == r.EpisodeID {
		t.Fatalf("expected a fresh episode id after auto reset, got %+v", r)
	}

	if len(deps.episodes.saved) != 1 {
		t.Fatalf("expected one persisted episode, got %d", len(deps.episodes.saved))
	}
	rec := deps.episodes.saved[0]
	if rec.EpisodeID != r.EpisodeID || rec.Ticks != 2 || rec.Layout != "solo" || rec.EnvIndex != 0 {
		t.Fatalf("unexpected episode record: %+v", rec)
	}
	steps, err := deps.trajectories.Get(context.Background(), r.EpisodeID)
	if err != nil {
		t.Fatalf("trajectory: %v", err)
	}
	if len(steps) != 2 || steps[0].Tick != 0 || steps[1].Tick != 1 {
		t.Fatalf("unexpected trajectory: %+v", steps)
	}
	if deps.tx.calls != 1 {
		t.Fatalf("expected finalization inside one transaction, got %d", deps.tx.calls)
	}
	if deps.metrics.episodes != 1 {
		t.Fatalf("expected one episode-done metric, got %d", deps.metrics.episodes)
	}

	// The env restarted in place and keeps stepping.
	frames, err := u.EnvFrames(context.Background(), created.BatchID, 0)
	if err != nil {
		t.Fatalf("frames: %v", err)
	}
	if frames[0].Timestep != 0 || frames[0].Done {
		t.Fatalf("expected pristine env after auto reset, got %+v", frames[0])
	}
	if frames[0].EpisodeID != r.NextEpisodeID {
		t.Fatalf("frames report episode %q, want %q", frames[0].EpisodeID, r.NextEpisodeID)
	}
}

func TestResetAbandonsRunningEpisodes(t *testing.T) {
	u, deps := newUseCase(t, soloKitchen(10))
	created, err := u.Create(context.Background(), CreateRequest{Layout: "solo", NumEnvs: 2, Record: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := u.Step(context.Background(), StepRequest{BatchID: created.BatchID, Actions: stayActions(2, 1)}); err != nil {
		t.Fatalf("step: %v", err)
	}

	res, err := u.Reset(context.Background(), ResetRequest{BatchID: created.BatchID})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(res.EpisodeIDs) != 2 {
		t.Fatalf("expected fresh ids for both envs, got %v", res.EpisodeIDs)
	}
	for i, id := range res.EpisodeIDs {
		if id == created.EpisodeIDs[i] {
			t.Fatalf("env %d kept its episode id across reset", i)
		}
	}
	if len(deps.episodes.saved) != 0 {
		t.Fatalf("abandoned episodes must not be persisted, got %d", len(deps.episodes.saved))
	}
	if deps.metrics.resets != 1 {
		t.Fatalf("expected one reset metric, got %d", deps.metrics.resets)
	}

	desc, err := u.Describe(created.BatchID)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if desc.Tick != 0 {
		t.Fatalf("expected batch clock back at zero, got %d", desc.Tick)
	}
}

func TestEnvFramesShape(t *testing.T) {
	u, _ := newUseCase(t, soloKitchen(0))
	created, err := u.Create(context.Background(), CreateRequest{Layout: "solo", NumEnvs: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	frames, err := u.EnvFrames(context.Background(), created.BatchID, 1)
	if err != nil {
		t.Fatalf("frames: %v", err)
	}
	if len(frames) != 1 || frames[0].EnvIndex != 1 {
		t.Fatalf("expected only env 1, got %+v", frames)
	}
	f := frames[0].Frames
	if len(f) != created.NumAgents {
		t.Fatalf("expected one frame per agent, got %d", len(f))
	}
	if len(f[0].Observation) != created.ObservationSize {
		t.Fatalf("observation length %d, want %d", len(f[0].Observation), created.ObservationSize)
	}
	if len(f[0].ActionMask) != created.NumActions {
		t.Fatalf("mask length %d, want %d", len(f[0].ActionMask), created.NumActions)
	}

	if _, err := u.EnvFrames(context.Background(), created.BatchID, 7); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for bad env index, got %v", err)
	}
}

func TestPublisherReceivesTickDigest(t *testing.T) {
	u, deps := newUseCase(t, soloKitchen(0))
	created, err := u.Create(context.Background(), CreateRequest{Layout: "solo", NumEnvs: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := u.Step(context.Background(), StepRequest{BatchID: created.BatchID, Actions: stayActions(3, 1)}); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(deps.publisher.events) != 1 {
		t.Fatalf("expected one published tick, got %d", len(deps.publisher.events))
	}
	ev := deps.publisher.events[0]
	if ev.BatchID != created.BatchID || ev.Tick != 1 || ev.Layout != "solo" {
		t.Fatalf("unexpected tick event: %+v", ev)
	}
}

func TestListDescribesBatches(t *testing.T) {
	u, _ := newUseCase(t, soloKitchen(0))
	if len(u.List()) != 0 {
		t.Fatalf("expected no batches initially")
	}
	a, err := u.Create(context.Background(), CreateRequest{Layout: "solo", NumEnvs: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := u.Create(context.Background(), CreateRequest{Layout: "solo", NumEnvs: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got := u.List()
	if len(got) != 2 {
		t.Fatalf("expected two batches, got %d", len(got))
	}
	byID := map[string]Description{got[0].BatchID: got[0], got[1].BatchID: got[1]}
	if byID[a.BatchID].NumEnvs != 1 || byID[b.BatchID].NumEnvs != 2 {
		t.Fatalf("descriptions out of order: %+v", got)
	}
}
