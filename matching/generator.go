package matching

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"mentionmates/database"
	"mentionmates/models"
)

// CreatorStore is the slice of the store the generator needs.
type CreatorStore interface {
	GetCreator(id string) (models.Creator, error)
	GetAllCreators() []models.Creator
	GetCreatorsByNiche(niche string) []models.Creator
	CreateMatch(in models.NewMatch) (models.Match, error)
}

type Generator struct {
	store CreatorStore
}

func NewGenerator(store CreatorStore) *Generator {
	return &Generator{store: store}
}

// Generate scores every other active creator in the same niche as creatorID
// and stores one directed match per candidate. Existing creators are not
// re-scored against the newcomer. A missing creator is a no-op.
func (g *Generator) Generate(creatorID string) (int, error) {
	creator, err := g.store.GetCreator(creatorID)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("generate matches for %s: %w", creatorID, err)
	}

	created := 0
	for _, candidate := range g.store.GetCreatorsByNiche(creator.Niche) {
		if candidate.ID == creator.ID {
			continue
		}

		result := Score(creator, candidate)
		_, err := g.store.CreateMatch(models.NewMatch{
			CreatorID:        creator.ID,
			MatchedCreatorID: candidate.ID,
			Score:            result.Value,
		})
		if err != nil {
			return created, fmt.Errorf("generate matches for %s: %w", creatorID, err)
		}
		created++
	}

	slog.Info("🤝 Matches generated", "creator_id", creatorID, "niche", creator.Niche, "count", created)
	return created, nil
}

// Suggest scores creatorID against every other active creator, in any niche,
// without storing anything. Results are best first; equal scores keep store
// order.
func (g *Generator) Suggest(creatorID string, limit int) ([]models.Suggestion, error) {
	creator, err := g.store.GetCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("suggest for %s: %w", creatorID, err)
	}

	suggestions := make([]models.Suggestion, 0)
	for _, candidate := range g.store.GetAllCreators() {
		if candidate.ID == creator.ID {
			continue
		}
		result := Score(creator, candidate)
		suggestions = append(suggestions, models.Suggestion{
			Creator: candidate,
			Score:   result.Value,
			Reasons: result.Reasons,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if limit < 0 {
		limit = 0
	}
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}
