package spyglass

import (
	"spyglass/pkg/models"
)

// ProfilesResponse represents the response from GetProfiles
type ProfilesResponse struct {
	Profiles []string `json:"profiles"`
}

// KPI is one headline figure of a profile report. Trend and TrendDirection
// are display placeholders, not computed metrics.
type KPI struct {
	Title          string `json:"title"`
	Value          string `json:"value"`
	Trend          string `json:"trend"`
	TrendDirection string `json:"trend_direction"`
	Icon           string `json:"icon"`
}

// KPIBundle groups the four report KPIs
type KPIBundle struct {
	Followers   KPI `json:"followers"`
	Interaction KPI `json:"interaction"`
	Reach       KPI `json:"reach"`
	Posts       KPI `json:"posts"`
}

// TopPost is one entry of the top-posts list
type TopPost struct {
	Image    string `json:"image"`
	Caption  string `json:"caption"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	Date     string `json:"date"`
	Link     string `json:"link"`
}

// ChartSeries is one label/value series; labels always cover the full
// bucket domain, so empty buckets show up as zeros.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// ChartBundle groups the four report chart series
type ChartBundle struct {
	DailyLikes    ChartSeries `json:"daily_likes"`
	PostTypeLikes ChartSeries `json:"post_type_likes"`
	HourlyLikes   ChartSeries `json:"hourly_likes"`
	WeekdayLikes  ChartSeries `json:"weekday_likes"`
}

// ReportResponse represents the response from GetProfileReport
type ReportResponse struct {
	ProfileID string           `json:"profile_id"`
	City      string           `json:"city"`
	KPIs      KPIBundle        `json:"kpi_data"`
	TopPosts  []TopPost        `json:"top_posts"`
	Charts    ChartBundle      `json:"chart_data"`
	Baselines models.Baselines `json:"baselines"`
}

// PostsResponse represents the response from GetAllPosts
type PostsResponse struct {
	Data []models.CrossPost `json:"data"`
}

// RankingsResponse represents the response from GetRankings
type RankingsResponse struct {
	Data      []models.ProfileSummary `json:"data"`
	Baselines models.Baselines        `json:"baselines"`
}
