package ports

import (
	"context"

	"cookline/internal/domain/layout"
)

type LayoutProvider interface {
	Definition(ctx context.Context, name string) (layout.Definition, error)
	List(ctx context.Context) ([]string, error)
}
