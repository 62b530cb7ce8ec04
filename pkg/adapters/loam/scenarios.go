// Package loam reads scenario documents from a directory through a Loam
// repository. Every YAML, JSON or Markdown (frontmatter) document holds one
// scenario, or a defaults/scenarios batch as accepted by config.Parse.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/crapsim/pkg/config"
	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/aretw0/loam"
)

// Document is the raw metadata of a scenario document.
type Document = map[string]any

// ScenarioLoader adapts a Loam repository to scenario loading.
type ScenarioLoader struct {
	Repo *loam.TypedRepository[Document]
}

// New creates a ScenarioLoader over an existing typed repository.
func New(repo *loam.TypedRepository[Document]) *ScenarioLoader {
	return &ScenarioLoader{Repo: repo}
}

// Open initialises a read-only Loam repository on dir. Strict mode keeps
// numeric types consistent across JSON, YAML and Markdown documents.
func Open(dir string) (*ScenarioLoader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[Document](repo)), nil
}

// Scenarios returns every scenario in the repository, ordered by document
// ID. A single-scenario document without a label is labelled with its ID.
// Documents without metadata are notes and are skipped.
func (l *ScenarioLoader) Scenarios(ctx context.Context) ([]domain.Scenario, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	type entry struct {
		id  string
		raw Document
	}
	entries := make([]entry, 0, len(docs))
	seen := make(map[string]string)
	for _, doc := range docs {
		if len(doc.Data) == 0 {
			continue
		}
		id := trimExtension(doc.ID)
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: scenario %q is defined in both %q and %q", config.ErrInvalidConfig, id, existing, doc.ID)
		}
		seen[id] = doc.ID
		entries = append(entries, entry{id: id, raw: doc.Data})
	}
	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.id, b.id) })

	var out []domain.Scenario
	for _, e := range entries {
		scs, err := config.FromMap(e.raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.id, err)
		}
		if len(scs) == 1 && scs[0].Label == "" {
			scs[0].Label = e.id
		}
		out = append(out, scs...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no scenario documents found", config.ErrInvalidConfig)
	}
	return out, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	return filepath.ToSlash(strings.TrimSuffix(id, ext))
}
