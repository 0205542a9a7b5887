package matching

import (
	"reflect"
	"slices"
	"testing"

	"mentionmates/models"
)

var audienceRanges = []string{models.AudienceNone, models.AudienceMicro, models.Audience1K, models.Audience5KUp}

func creator(niche, audience, platform, goal string, active bool) models.Creator {
	return models.Creator{
		Niche:             niche,
		AudienceSizeRange: audience,
		Platform:          platform,
		Goal:              goal,
		IsActive:          active,
	}
}

func TestScoreExamples(t *testing.T) {
	tests := []struct {
		name        string
		base        models.Creator
		candidate   models.Creator
		wantValue   int
		wantReasons []string
	}{
		{
			name:      "every rule fires and the total is capped",
			base:      creator("Fitness & Health", "5k+", "Instagram", "followers", true),
			candidate: creator("Fitness & Health", "5k+", "YouTube", "followers", true),
			wantValue: 100,
			wantReasons: []string{
				"Same niche", "Similar audience size", "Cross-platform reach", "Aligned goals", "Recently active",
			},
		},
		{
			name:        "adjacent audience gets the smaller bonus",
			base:        creator("Travel", "none", "TikTok", "sales", true),
			candidate:   creator("Travel", "micro", "TikTok", "exposure", false),
			wantValue:   80,
			wantReasons: []string{"Same niche", "Compatible audience size"},
		},
		{
			name:        "different niche only collects the minor bonuses",
			base:        creator("Travel", "1k", "Instagram", "followers", true),
			candidate:   creator("Technology", "5k+", "YouTube", "followers", true),
			wantValue:   25,
			wantReasons: []string{"Compatible audience size", "Cross-platform reach", "Aligned goals", "Recently active"},
		},
		{
			name:        "nothing in common",
			base:        creator("Travel", "none", "Instagram", "followers", true),
			candidate:   creator("Technology", "5k+", "Instagram", "sales", false),
			wantValue:   0,
			wantReasons: []string{},
		},
		{
			name:        "exact total without clamping",
			base:        creator("Food", "micro", "Instagram", "sales", true),
			candidate:   creator("Food", "micro", "Instagram", "engagement", true),
			wantValue:   95,
			wantReasons: []string{"Same niche", "Similar audience size", "Recently active"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.base, tt.candidate)
			if got.Value != tt.wantValue {
				t.Errorf("Value = %d, want %d", got.Value, tt.wantValue)
			}
			if !reflect.DeepEqual(got.Reasons, tt.wantReasons) {
				t.Errorf("Reasons = %q, want %q", got.Reasons, tt.wantReasons)
			}
		})
	}
}

func TestCompatibleAudience(t *testing.T) {
	compatible := map[[2]string]bool{
		{"none", "micro"}: true,
		{"micro", "1k"}:   true,
		{"1k", "5k+"}:     true,
	}

	for _, a := range audienceRanges {
		for _, b := range audienceRanges {
			want := compatible[[2]string{a, b}] || compatible[[2]string{b, a}]
			if got := CompatibleAudience(a, b); got != want {
				t.Errorf("CompatibleAudience(%q, %q) = %v, want %v", a, b, got, want)
			}
			if CompatibleAudience(a, b) != CompatibleAudience(b, a) {
				t.Errorf("CompatibleAudience is not symmetric for %q, %q", a, b)
			}
		}
	}

	if CompatibleAudience("none", "5k+") {
		t.Error("none and 5k+ must not be compatible")
	}
	if CompatibleAudience("1k", "unknown") {
		t.Error("unknown buckets must not be compatible")
	}
}

// TestScoreProperties walks every combination of the scoring inputs.
func TestScoreProperties(t *testing.T) {
	niches := []string{"Travel", "Food"}
	platforms := []string{"Instagram", "YouTube"}
	goals := []string{"followers", "sales"}
	neighbours := map[[2]string]bool{
		{"none", "micro"}: true, {"micro", "none"}: true,
		{"micro", "1k"}: true, {"1k", "micro"}: true,
		{"1k", "5k+"}: true, {"5k+", "1k"}: true,
	}

	for _, baseNiche := range niches {
		for _, candNiche := range niches {
			for _, baseRange := range audienceRanges {
				for _, candRange := range audienceRanges {
					for _, candPlatform := range platforms {
						for _, candGoal := range goals {
							for _, active := range []bool{true, false} {
								base := creator(baseNiche, baseRange, "Instagram", "followers", true)
								cand := creator(candNiche, candRange, candPlatform, candGoal, active)
								got := Score(base, cand)

								if got.Value < 0 || got.Value > MaxScore {
									t.Fatalf("score %d out of range for %+v vs %+v", got.Value, base, cand)
								}
								var want []string
								points := 0
								fire := func(ok bool, bonus int, reason string) {
									if ok {
										points += bonus
										want = append(want, reason)
									}
								}
								fire(baseNiche == candNiche, 70, "Same niche")
								fire(baseRange == candRange, 20, "Similar audience size")
								fire(baseRange != candRange && neighbours[[2]string{baseRange, candRange}], 10, "Compatible audience size")
								fire(candPlatform != "Instagram", 5, "Cross-platform reach")
								fire(candGoal == "followers", 5, "Aligned goals")
								fire(active, 5, "Recently active")

								if !slices.Equal(got.Reasons, want) {
									t.Fatalf("reasons for %+v vs %+v = %q, want %q", base, cand, got.Reasons, want)
								}
								if got.Value != min(points, MaxScore) {
									t.Fatalf("score for %+v vs %+v = %d, want %d", base, cand, got.Value, min(points, MaxScore))
								}
								if baseNiche == candNiche && got.Value < nicheBonus {
									t.Fatalf("same niche scored %d, below %d", got.Value, nicheBonus)
								}

								audienceReasons := 0
								for _, r := range got.Reasons {
									if r == "Similar audience size" || r == "Compatible audience size" {
										audienceReasons++
									}
								}
								if audienceReasons > 1 {
									t.Fatalf("both audience bonuses applied: %q", got.Reasons)
								}

								if Score(base, cand).Value != got.Value {
									t.Fatal("Score is not deterministic")
								}
							}
						}
					}
				}
			}
		}
	}
}
