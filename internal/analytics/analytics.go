package analytics

import (
	"sort"

	"teamprompt/internal/models"
)

// DefaultTopN is how many prompts Summarize ranks when asked for zero.
const DefaultTopN = 5

type Summary struct {
	TotalPrompts  int             `json:"totalPrompts"`
	TotalUsage    int             `json:"totalUsage"`
	AverageRating float64         `json:"averageRating"`
	RatedPrompts  int             `json:"ratedPrompts"`
	Favorites     int             `json:"favorites"`
	TopPrompts    []models.Prompt `json:"topPrompts"`
}

// Summarize computes usage and rating statistics over prompts. The average
// rating is the mean of each rated prompt's own average, so every rated
// prompt weighs the same regardless of how often it was rated.
func Summarize(prompts []models.Prompt, topN int) Summary {
	if topN <= 0 {
		topN = DefaultTopN
	}

	s := Summary{TotalPrompts: len(prompts), TopPrompts: []models.Prompt{}}
	var ratingSum float64
	for _, p := range prompts {
		s.TotalUsage += p.UsageCount
		if p.IsFavorite {
			s.Favorites++
		}
		if p.Rating.Count > 0 {
			ratingSum += p.Rating.Average()
			s.RatedPrompts++
		}
	}
	if s.RatedPrompts > 0 {
		s.AverageRating = ratingSum / float64(s.RatedPrompts)
	}

	ranked := make([]models.Prompt, len(prompts))
	copy(ranked, prompts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UsageCount > ranked[j].UsageCount
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	s.TopPrompts = append(s.TopPrompts, ranked...)
	return s
}
