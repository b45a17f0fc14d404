package status

import (
	"context"

	"cookline/internal/app/batch"
)

type BatchDirectory interface {
	Describe(batchID string) (batch.Description, error)
	List() []batch.Description
}

type UseCase struct {
	Batches BatchDirectory
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.BatchID != "" {
		d, err := u.Batches.Describe(req.BatchID)
		if err != nil {
			return Response{}, err
		}
		return Response{Batches: []batch.Description{d}}, nil
	}
	return Response{Batches: u.Batches.List()}, nil
}
