package view

import (
	"context"
	"fmt"
	"math"

	"github.com/bloops-games/achievements/internal/api"
)

type CatalogSummary struct {
	Total int
	// achievements unlocked by at least one user
	UnlockedByAny  int
	CompletionRate int
}

// Catalog is the global achievement listing with aggregate unlock counts.
type Catalog struct {
	backend Backend

	achievements []api.CatalogAchievement
	search       string
	err          string
}

func NewCatalog(backend Backend) *Catalog {
	return &Catalog{backend: backend}
}

func (v *Catalog) Load(ctx context.Context) error {
	v.err = ""

	list, err := v.backend.AllAchievements(ctx)
	if err != nil {
		v.err = err.Error()
		return fmt.Errorf("all achievements: %w", err)
	}

	if list == nil {
		list = []api.CatalogAchievement{}
	}

	v.achievements = list
	return nil
}

func (v *Catalog) SetSearch(term string) {
	v.search = term
}

func (v *Catalog) Search() string {
	return v.search
}

func (v *Catalog) Err() string {
	return v.err
}

func (v *Catalog) All() []api.CatalogAchievement {
	return v.achievements
}

func (v *Catalog) Filtered() []api.CatalogAchievement {
	filtered := make([]api.CatalogAchievement, 0, len(v.achievements))
	for _, a := range v.achievements {
		if MatchesSearch(a.Name, a.Description, v.search) {
			filtered = append(filtered, a)
		}
	}

	return filtered
}

func (v *Catalog) Summary() CatalogSummary {
	s := CatalogSummary{Total: len(v.achievements)}
	for _, a := range v.achievements {
		if a.UnlockCount > 0 {
			s.UnlockedByAny++
		}
	}

	s.CompletionRate = int(math.Round(Percent(s.UnlockedByAny, s.Total)))
	return s
}
