package models

import "time"

// Unknown is the sentinel used wherever a categorical source value is
// missing: post types without a source value and tag dimensions for
// profiles absent from the tag table.
const Unknown = "unknown"

// PostRecord is one published post of a tracked profile, fully populated
// after normalization. Malformed source cells never surface here: numeric
// fields default to 0 and an unparsable timestamp is a nil Timestamp on an
// otherwise valid record.
type PostRecord struct {
	ProfileID string     `json:"profile_id"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Likes     int        `json:"likes"`
	Comments  int        `json:"comments"`
	Followers float64    `json:"followers"` // snapshot at fetch time, uniform per profile
	PostType  string     `json:"post_type"`
	Caption   string     `json:"caption"`
	Permalink string     `json:"permalink"`
	ImageURL  string     `json:"image_url,omitempty"`

	// RawDate keeps the source timestamp cell verbatim for display.
	RawDate string `json:"-"`

	// Extra preserves columns outside the canonical schema. They are never
	// interpreted, only carried.
	Extra map[string]string `json:"-"`
}

// ProfileTags holds the free-form tag dimensions of one profile from the
// shared tag table. Every dimension defaults to Unknown.
type ProfileTags struct {
	ProfileID string `json:"profile_id"`
	Region    string `json:"region"`
	Status    string `json:"status"`
	City      string `json:"city"`
}

// UnknownTags returns the placeholder tags for a profile the tag table does
// not know about.
func UnknownTags(profileID string) ProfileTags {
	return ProfileTags{
		ProfileID: profileID,
		Region:    Unknown,
		Status:    Unknown,
		City:      Unknown,
	}
}

// ProfileSummary is the per-profile aggregate: a pure fold over one
// profile's records, recomputed per request.
type ProfileSummary struct {
	ProfileID        string  `json:"profile_id"`
	Region           string  `json:"region"`
	Status           string  `json:"status"`
	City             string  `json:"city"`
	Followers        float64 `json:"followers"`
	TotalPosts       int     `json:"total_posts"`
	TotalInteraction int     `json:"total_interaction"`
	AvgLikes         float64 `json:"avg_likes"`
	AvgComments      float64 `json:"avg_comments"`
	AvgInteraction   float64 `json:"avg_interaction"`
	AvgReachRate     float64 `json:"avg_reach_rate"`
	AccessScore      float64 `json:"access_score"`
	LikesHistory     []int   `json:"likes_history"` // chronological
}

// CrossPost is one row of the cross-profile union: a post annotated with
// its profile's tags and derived metrics, comparable across profiles.
type CrossPost struct {
	ProfileID   string  `json:"profile_id"`
	Region      string  `json:"region"`
	Status      string  `json:"status"`
	City        string  `json:"city"`
	Followers   float64 `json:"followers"`
	Likes       int     `json:"likes"`
	Comments    int     `json:"comments"`
	Interaction int     `json:"interaction"`
	ReachRate   float64 `json:"reach_rate"`
	AccessScore float64 `json:"access_score"`
	PostType    string  `json:"post_type"`
	Permalink   string  `json:"link"`
}

// Baselines are plain population statistics across all profiles, used as
// comparison baselines by report consumers.
type Baselines struct {
	Profiles              int     `json:"profiles"`
	MedianFollowers       float64 `json:"median_followers"`
	MedianInteraction     float64 `json:"median_interaction"`
	AvgPostsPerProfile    float64 `json:"avg_posts_per_profile"`
	AvgInteractionPerPost float64 `json:"avg_interaction_per_post"`
}
