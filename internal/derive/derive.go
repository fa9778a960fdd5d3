// Package derive computes the per-post and per-profile engagement metrics.
// All functions are pure; nothing here touches the filesystem or network.
package derive

import (
	"math"
	"sort"

	"spyglass/pkg/models"
)

// Access-score exponents. Profile rollups and post rankings intentionally
// use different sub-linear exponents; they are separate knobs, not one
// formula.
const (
	ProfileAccessExponent = 0.5
	PostAccessExponent    = 0.7
)

// TotalInteraction is likes plus comments. Always derived, never read from
// the source table.
func TotalInteraction(r models.PostRecord) int {
	return r.Likes + r.Comments
}

// ReachRate is total interaction as a percentage of follower count. A
// profile with zero recorded followers yields 0, never infinity.
func ReachRate(interaction int, followers float64) float64 {
	if followers <= 0 {
		return 0
	}
	return float64(interaction) / followers * 100
}

// AccessScore normalizes interaction by followers raised to a sub-linear
// exponent, scaled by 100. Zero followers yields 0.
func AccessScore(interaction int, followers float64, exponent float64) float64 {
	if followers <= 0 {
		return 0
	}
	return float64(interaction) / math.Pow(followers, exponent) * 100
}

// Summarize folds one profile's records into its summary. Tags are filled
// in by the aggregator; followers come from the records themselves
// (uniform per profile by normalization).
func Summarize(profileID string, records []models.PostRecord) models.ProfileSummary {
	s := models.ProfileSummary{
		ProfileID:    profileID,
		Region:       models.Unknown,
		Status:       models.Unknown,
		City:         models.Unknown,
		LikesHistory: likesHistory(records),
	}
	if len(records) == 0 {
		return s
	}

	s.Followers = records[0].Followers
	s.TotalPosts = len(records)

	totalLikes := 0
	totalComments := 0
	for _, r := range records {
		totalLikes += r.Likes
		totalComments += r.Comments
	}
	s.TotalInteraction = totalLikes + totalComments
	s.AvgLikes = float64(totalLikes) / float64(s.TotalPosts)
	s.AvgComments = float64(totalComments) / float64(s.TotalPosts)
	s.AvgInteraction = float64(s.TotalInteraction) / float64(s.TotalPosts)
	s.AvgReachRate = avgReachRate(s.AvgInteraction, s.Followers)
	s.AccessScore = AccessScore(s.TotalInteraction, s.Followers, ProfileAccessExponent)

	return s
}

func avgReachRate(avgInteraction, followers float64) float64 {
	if followers <= 0 {
		return 0
	}
	return avgInteraction / followers * 100
}

// likesHistory returns like counts in chronological order. Records without
// a timestamp keep their input position after all dated records.
func likesHistory(records []models.PostRecord) []int {
	ordered := make([]models.PostRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Timestamp, ordered[j].Timestamp
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.Before(*b)
	})

	likes := make([]int, len(ordered))
	for i, r := range ordered {
		likes[i] = r.Likes
	}
	return likes
}

// TopByInteraction returns the n records with the highest total
// interaction, descending. Ties keep input order (stable sort).
func TopByInteraction(records []models.PostRecord, n int) []models.PostRecord {
	ordered := make([]models.PostRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return TotalInteraction(ordered[i]) > TotalInteraction(ordered[j])
	})
	if n > len(ordered) {
		n = len(ordered)
	}
	if n < 0 {
		n = 0
	}
	return ordered[:n]
}
