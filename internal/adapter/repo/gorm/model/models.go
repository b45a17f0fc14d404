package model

import "time"

type Episode struct {
	EpisodeID   string    `gorm:"column:episode_id;primaryKey"`
	BatchID     string    `gorm:"column:batch_id"`
	EnvIndex    int32     `gorm:"column:env_index"`
	Layout      string    `gorm:"column:layout"`
	Horizon     int32     `gorm:"column:horizon"`
	Ticks       int32     `gorm:"column:ticks"`
	TotalReward int64     `gorm:"column:total_reward"`
	Deliveries  int32     `gorm:"column:deliveries"`
	EndedAt     time.Time `gorm:"column:ended_at"`
}

func (Episode) TableName() string {
	return "episodes"
}

type Trajectory struct {
	EpisodeID string    `gorm:"column:episode_id;primaryKey"`
	Encoding  string    `gorm:"column:encoding"`
	Steps     []byte    `gorm:"column:steps"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Trajectory) TableName() string {
	return "trajectories"
}
