package store

import (
	"context"
	"errors"
	"fmt"

	"numerus/internal/numerology/models"
	"numerus/internal/numerology/registry"
	"numerus/pkg/platform/sentinel"
)

// Chain consults its sources in order. The first source that knows an id
// wins; a source failure other than not-found stops the search so that a
// down database never silently serves a different definition.
type Chain []registry.Source

func NewChain(sources ...registry.Source) Chain {
	return Chain(sources)
}

func (c Chain) Load(ctx context.Context, id string) (*models.Definition, error) {
	for _, src := range c {
		def, err := src.Load(ctx, id)
		if err == nil {
			return def, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("rule-set %q: %w", id, sentinel.ErrNotFound)
}

// List merges the listings; for ids known to several sources the earlier
// source's entry is kept.
func (c Chain) List(ctx context.Context) ([]models.SystemInfo, error) {
	seen := make(map[string]struct{})
	var systems []models.SystemInfo
	for _, src := range c {
		list, err := src.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, info := range list {
			if _, ok := seen[info.ID]; ok {
				continue
			}
			seen[info.ID] = struct{}{}
			systems = append(systems, info)
		}
	}
	return systems, nil
}
