package layouts

import (
	"context"
	"errors"
	"strings"

	"cookline/internal/app/ports"
	"cookline/internal/domain/kitchen"
)

var ErrInvalidRequest = errors.New("invalid layout request")

type UseCase struct {
	Provider ports.LayoutProvider
}

func (u UseCase) List(ctx context.Context) (ListResponse, error) {
	names, err := u.Provider.List(ctx)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Layouts: names}, nil
}

func (u UseCase) Get(ctx context.Context, req GetRequest) (Detail, error) {
	if strings.TrimSpace(req.Name) == "" {
		return Detail{}, ErrInvalidRequest
	}
	def, err := u.Provider.Definition(ctx, req.Name)
	if err != nil {
		return Detail{}, err
	}
	cfg, err := def.Config()
	if err != nil {
		return Detail{}, err
	}
	numAgents := len(cfg.StartCells)
	channels := kitchen.ChannelsFor(numAgents)
	return Detail{
		Name:            def.Name,
		Grid:            def.Grid,
		Horizon:         cfg.Horizon,
		Orders:          def.Orders,
		Width:           cfg.Width,
		Height:          cfg.Height,
		NumAgents:       numAgents,
		Channels:        channels,
		ObservationSize: cfg.Width * cfg.Height * channels,
		NumActions:      kitchen.NumActions,
	}, nil
}
