package staticlayouts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cookline/internal/app/ports"
	"cookline/internal/domain/layout"
)

// Provider serves layout definitions from a directory of YAML files. The
// layout name is the file name without its extension.
type Provider struct {
	Root string
}

func (p Provider) Definition(_ context.Context, name string) (layout.Definition, error) {
	safePath, err := secureJoin(p.Root, name+".yaml")
	if err != nil {
		return layout.Definition{}, err
	}
	data, err := os.ReadFile(safePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return layout.Definition{}, fmt.Errorf("%w: layout %q", ports.ErrNotFound, name)
		}
		return layout.Definition{}, err
	}
	def, err := layout.Parse(data)
	if err != nil {
		return layout.Definition{}, err
	}
	if def.Name == "" {
		def.Name = name
	}
	return def, nil
}

func (p Provider) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(p.Root)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

var ErrInvalidLayoutPath = errors.New("invalid layout filepath")

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", ErrInvalidLayoutPath
	}
	if filepath.IsAbs(rel) {
		return "", ErrInvalidLayoutPath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	prefix := rootAbs + string(filepath.Separator)
	if target != rootAbs && !strings.HasPrefix(target, prefix) {
		return "", ErrInvalidLayoutPath
	}
	return target, nil
}
