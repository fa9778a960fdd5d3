// Package aggregate merges tag metadata onto per-profile records and
// builds the cross-profile comparison views: the unioned post table, the
// ranking table, and population baselines.
package aggregate

import (
	"sort"

	"spyglass/internal/derive"
	"spyglass/pkg/models"
)

// TagFilter selects rows by tag values. Within one dimension the selected
// values combine with OR; dimensions combine with AND. An empty dimension
// selects everything, matching multi-select-with-default-all UI semantics.
type TagFilter struct {
	Regions  []string
	Statuses []string
	Cities   []string
}

// Match reports whether a profile's tags pass the filter.
func (f TagFilter) Match(tags models.ProfileTags) bool {
	return matchDimension(f.Regions, tags.Region) &&
		matchDimension(f.Statuses, tags.Status) &&
		matchDimension(f.Cities, tags.City)
}

func matchDimension(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}

// tagsFor left-joins tag metadata: a profile absent from the tag table
// gets the unknown placeholders, never a missing field.
func tagsFor(tags map[string]models.ProfileTags, profileID string) models.ProfileTags {
	if t, ok := tags[profileID]; ok {
		return t
	}
	return models.UnknownTags(profileID)
}

// UnionPosts flattens all profiles' records into one comparable table,
// annotated with tags and derived metrics, ordered by reach rate
// descending (stable).
func UnionPosts(profiles map[string][]models.PostRecord, tags map[string]models.ProfileTags, filter TagFilter) []models.CrossPost {
	ids := sortedIDs(profiles)

	var out []models.CrossPost
	for _, id := range ids {
		t := tagsFor(tags, id)
		if !filter.Match(t) {
			continue
		}
		for _, r := range profiles[id] {
			interaction := derive.TotalInteraction(r)
			out = append(out, models.CrossPost{
				ProfileID:   id,
				Region:      t.Region,
				Status:      t.Status,
				City:        t.City,
				Followers:   r.Followers,
				Likes:       r.Likes,
				Comments:    r.Comments,
				Interaction: interaction,
				ReachRate:   derive.ReachRate(interaction, r.Followers),
				AccessScore: derive.AccessScore(interaction, r.Followers, derive.PostAccessExponent),
				PostType:    r.PostType,
				Permalink:   r.Permalink,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReachRate > out[j].ReachRate
	})
	return out
}

// Rankings builds the one-row-per-profile summary table, tags joined,
// ordered by average reach rate descending (stable).
func Rankings(profiles map[string][]models.PostRecord, tags map[string]models.ProfileTags, filter TagFilter) []models.ProfileSummary {
	ids := sortedIDs(profiles)

	var out []models.ProfileSummary
	for _, id := range ids {
		t := tagsFor(tags, id)
		if !filter.Match(t) {
			continue
		}
		s := derive.Summarize(id, profiles[id])
		s.Region = t.Region
		s.Status = t.Status
		s.City = t.City
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgReachRate > out[j].AvgReachRate
	})
	return out
}

// ComputeBaselines derives population statistics across profile
// summaries. Plain unweighted statistics; medians for skewed quantities.
func ComputeBaselines(summaries []models.ProfileSummary) models.Baselines {
	b := models.Baselines{Profiles: len(summaries)}
	if len(summaries) == 0 {
		return b
	}

	followers := make([]float64, 0, len(summaries))
	interactions := make([]float64, 0, len(summaries))
	totalPosts := 0
	totalInteraction := 0
	for _, s := range summaries {
		followers = append(followers, s.Followers)
		interactions = append(interactions, float64(s.TotalInteraction))
		totalPosts += s.TotalPosts
		totalInteraction += s.TotalInteraction
	}

	b.MedianFollowers = median(followers)
	b.MedianInteraction = median(interactions)
	b.AvgPostsPerProfile = float64(totalPosts) / float64(len(summaries))
	if totalPosts > 0 {
		b.AvgInteractionPerPost = float64(totalInteraction) / float64(totalPosts)
	}
	return b
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func sortedIDs(profiles map[string][]models.PostRecord) []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
