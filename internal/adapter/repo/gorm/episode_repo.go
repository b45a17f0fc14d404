package gormrepo

import (
	"context"

	"cookline/internal/adapter/repo/gorm/model"
	"cookline/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EpisodeRepo struct {
	db *gorm.DB
}

func NewEpisodeRepo(db *gorm.DB) EpisodeRepo {
	return EpisodeRepo{db: db}
}

func (r EpisodeRepo) Save(ctx context.Context, record ports.EpisodeRecord) error {
	m := model.Episode{
		EpisodeID:   record.EpisodeID,
		BatchID:     record.BatchID,
		EnvIndex:    int32(record.EnvIndex),
		Layout:      record.Layout,
		Horizon:     int32(record.Horizon),
		Ticks:       int32(record.Ticks),
		TotalReward: int64(record.TotalReward),
		Deliveries:  int32(record.Deliveries),
		EndedAt:     record.EndedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r EpisodeRepo) ListRecent(ctx context.Context, limit int) ([]ports.EpisodeRecord, error) {
	rows := []model.Episode{}
	query := getDBFromCtx(ctx, r.db).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "ended_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.EpisodeRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.EpisodeRecord{
			EpisodeID:   row.EpisodeID,
			BatchID:     row.BatchID,
			EnvIndex:    int(row.EnvIndex),
			Layout:      row.Layout,
			Horizon:     int(row.Horizon),
			Ticks:       int(row.Ticks),
			TotalReward: int(row.TotalReward),
			Deliveries:  int(row.Deliveries),
			EndedAt:     row.EndedAt,
		})
	}
	return out, nil
}
