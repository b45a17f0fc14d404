package observe

import "cookline/internal/app/batch"

type Request struct {
	BatchID string `json:"batch_id"`
	// EnvIndex selects one environment; nil means all of them.
	EnvIndex *int `json:"env_index,omitempty"`
}

type Response struct {
	BatchID string            `json:"batch_id"`
	Envs    []batch.EnvFrames `json:"envs"`
}
