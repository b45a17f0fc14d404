package observe

import (
	"context"
	"errors"
	"strings"

	"cookline/internal/app/batch"
)

var ErrInvalidRequest = errors.New("invalid observe request")

type FrameSource interface {
	EnvFrames(ctx context.Context, batchID string, envIndex int) ([]batch.EnvFrames, error)
}

type UseCase struct {
	Source FrameSource
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.BatchID) == "" {
		return Response{}, ErrInvalidRequest
	}
	envIndex := -1
	if req.EnvIndex != nil {
		if *req.EnvIndex < 0 {
			return Response{}, ErrInvalidRequest
		}
		envIndex = *req.EnvIndex
	}
	envs, err := u.Source.EnvFrames(ctx, req.BatchID, envIndex)
	if err != nil {
		return Response{}, err
	}
	return Response{BatchID: req.BatchID, Envs: envs}, nil
}
