// Package matching scores creators against each other and turns those scores
// into stored match recommendations.
package matching

import "mentionmates/models"

const (
	MaxScore = 100

	nicheBonus          = 70
	sameAudienceBonus   = 20
	nearAudienceBonus   = 10
	crossPlatformBonus  = 5
	alignedGoalBonus    = 5
	recentlyActiveBonus = 5
)

// Result is a compatibility score and the reasons that produced it, in rule
// order.
type Result struct {
	Value   int
	Reasons []string
}

// adjacentAudience lists neighbouring audience buckets. Lookups go both ways.
var adjacentAudience = map[[2]string]bool{
	{models.AudienceNone, models.AudienceMicro}: true,
	{models.AudienceMicro, models.Audience1K}:   true,
	{models.Audience1K, models.Audience5KUp}:    true,
}

// CompatibleAudience reports whether two different audience buckets sit next
// to each other.
func CompatibleAudience(a, b string) bool {
	return adjacentAudience[[2]string{a, b}] || adjacentAudience[[2]string{b, a}]
}

// Score rates how well candidate fits as a collaborator for base.
func Score(base, candidate models.Creator) Result {
	score := 0
	reasons := make([]string, 0, 5)

	if base.Niche == candidate.Niche {
		score += nicheBonus
		reasons = append(reasons, "Same niche")
	}

	if base.AudienceSizeRange == candidate.AudienceSizeRange {
		score += sameAudienceBonus
		reasons = append(reasons, "Similar audience size")
	} else if CompatibleAudience(base.AudienceSizeRange, candidate.AudienceSizeRange) {
		score += nearAudienceBonus
		reasons = append(reasons, "Compatible audience size")
	}

	if base.Platform != candidate.Platform {
		score += crossPlatformBonus
		reasons = append(reasons, "Cross-platform reach")
	}

	if base.Goal == candidate.Goal {
		score += alignedGoalBonus
		reasons = append(reasons, "Aligned goals")
	}

	if candidate.IsActive {
		score += recentlyActiveBonus
		reasons = append(reasons, "Recently active")
	}

	return Result{Value: min(score, MaxScore), Reasons: reasons}
}
