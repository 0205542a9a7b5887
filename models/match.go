package models

import "time"

// Match is a directed recommendation from CreatorID towards MatchedCreatorID.
type Match struct {
	ID               string    `json:"id"`
	CreatorID        string    `json:"creatorId"`
	MatchedCreatorID string    `json:"matchedCreatorId"`
	Score            int       `json:"score"` // 0-100
	CreatedAt        time.Time `json:"createdAt"`
}

type NewMatch struct {
	CreatorID        string
	MatchedCreatorID string
	Score            int
}

// MatchWithCreator is a Match joined with its target creator. Populated in
// responses only.
type MatchWithCreator struct {
	Match
	Creator Creator `json:"creator"`
}

// Suggestion is an on-demand score of one candidate, with the rules that fired.
type Suggestion struct {
	Creator Creator  `json:"creator"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}
