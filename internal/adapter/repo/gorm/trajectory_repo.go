package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cookline/internal/adapter/repo/gorm/model"
	"cookline/internal/app/ports"

	"github.com/klauspost/compress/zstd"
	"gorm.io/gorm"
)

const trajectoryEncoding = "json+zstd"

// TrajectoryRepo stores recorded episodes as zstd-compressed JSON blobs.
// Trajectories are written once and read back whole, so a single blob per
// episode beats a row per tick.
type TrajectoryRepo struct {
	db  *gorm.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewTrajectoryRepo(db *gorm.DB) (TrajectoryRepo, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return TrajectoryRepo{}, fmt.Errorf("init zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return TrajectoryRepo{}, fmt.Errorf("init zstd decoder: %w", err)
	}
	return TrajectoryRepo{db: db, enc: enc, dec: dec}, nil
}

func (r TrajectoryRepo) Save(ctx context.Context, episodeID string, steps []ports.TrajectoryStep) error {
	raw, err := json.Marshal(steps)
	if err != nil {
		return fmt.Errorf("encode trajectory %s: %w", episodeID, err)
	}
	m := model.Trajectory{
		EpisodeID: episodeID,
		Encoding:  trajectoryEncoding,
		Steps:     r.enc.EncodeAll(raw, nil),
		CreatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r TrajectoryRepo) Get(ctx context.Context, episodeID string) ([]ports.TrajectoryStep, error) {
	var m model.Trajectory
	if err := getDBFromCtx(ctx, r.db).Where("episode_id = ?", episodeID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	if m.Encoding != trajectoryEncoding {
		return nil, fmt.Errorf("trajectory %s has unknown encoding %q", episodeID, m.Encoding)
	}
	raw, err := r.dec.DecodeAll(m.Steps, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress trajectory %s: %w", episodeID, err)
	}
	var steps []ports.TrajectoryStep
	if err := json.Unmarshal(raw, &steps); err != nil {
		return nil, fmt.Errorf("decode trajectory %s: %w", episodeID, err)
	}
	return steps, nil
}
