package status

import "cookline/internal/app/batch"

type Request struct {
	// BatchID narrows the report to one batch; empty lists every live batch.
	BatchID string `json:"batch_id,omitempty"`
}

type Response struct {
	Batches []batch.Description `json:"batches"`
}
