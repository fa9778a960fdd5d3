// Package report assembles the display-ready per-profile bundle: KPIs,
// top posts, and the four chart series.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"spyglass/internal/buckets"
	"spyglass/internal/derive"
	"spyglass/internal/enrich"
	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/logging"
	"spyglass/pkg/models"
)

// DefaultTopPosts is how many top posts a report carries unless
// configured otherwise.
const DefaultTopPosts = 4

// Assembler builds report bundles. The preview fetcher is injected so the
// metric logic stays testable without network access.
type Assembler struct {
	fetcher enrich.PreviewFetcher
	locale  buckets.Locale
	topN    int
	logger  logging.Logger
}

// NewAssembler creates an assembler. A nil fetcher disables enrichment;
// topN <= 0 falls back to DefaultTopPosts.
func NewAssembler(fetcher enrich.PreviewFetcher, locale buckets.Locale, topN int, logger logging.Logger) *Assembler {
	if fetcher == nil {
		fetcher = enrich.NoopFetcher{}
	}
	if topN <= 0 {
		topN = DefaultTopPosts
	}
	return &Assembler{fetcher: fetcher, locale: locale, topN: topN, logger: logger}
}

// Build assembles the report bundle for one profile.
func (a *Assembler) Build(ctx context.Context, profileID string, records []models.PostRecord, tags models.ProfileTags, baselines models.Baselines) api.ReportResponse {
	summary := derive.Summarize(profileID, records)

	return api.ReportResponse{
		ProfileID: profileID,
		City:      tags.City,
		KPIs:      buildKPIs(summary),
		TopPosts:  a.buildTopPosts(ctx, records),
		Charts:    a.buildCharts(records),
		Baselines: baselines,
	}
}

// buildKPIs shapes the four headline figures. Trend values are display
// placeholders, not computed metrics.
func buildKPIs(s models.ProfileSummary) api.KPIBundle {
	return api.KPIBundle{
		Followers: api.KPI{
			Title:          "Takipçi Sayısı",
			Value:          formatThousands(int(s.Followers)),
			Trend:          "+12.03%",
			TrendDirection: "up",
			Icon:           "MingcuteStarFill.svg",
		},
		Interaction: api.KPI{
			Title:          "Ort. Etkileşim Sayısı",
			Value:          formatThousands(int(s.AvgInteraction)),
			Trend:          "+5.2%",
			TrendDirection: "up",
			Icon:           "MingcuteThumbUp2Fill.svg",
		},
		Reach: api.KPI{
			Title:          "Ort. Erişim Oranı",
			Value:          fmt.Sprintf("%%%.2f", s.AvgReachRate),
			Trend:          "-1.5%",
			TrendDirection: "down",
			Icon:           "MingcuteUser2Fill.svg",
		},
		Posts: api.KPI{
			Title:          "Toplam Gönderi Sayısı",
			Value:          fmt.Sprintf("%d", s.TotalPosts),
			Trend:          "0",
			TrendDirection: "up",
			Icon:           "MingcutePhotoAlbumFill.svg",
		},
	}
}

// buildTopPosts picks the highest-interaction posts and enriches each with
// a preview image. Enrichment failures leave the image empty.
func (a *Assembler) buildTopPosts(ctx context.Context, records []models.PostRecord) []api.TopPost {
	top := derive.TopByInteraction(records, a.topN)

	out := make([]api.TopPost, 0, len(top))
	for _, r := range top {
		image := r.ImageURL
		if image == "" && r.Permalink != "" {
			image = a.fetcher.PreviewImage(ctx, r.Permalink)
			if image == "" {
				a.logger.WithField("permalink", r.Permalink).Debug("Top post preview unavailable")
			}
		}
		out = append(out, api.TopPost{
			Image:    image,
			Caption:  r.Caption,
			Likes:    r.Likes,
			Comments: r.Comments,
			Date:     r.RawDate,
			Link:     r.Permalink,
		})
	}
	return out
}

// buildCharts computes the four series. Records without a timestamp are
// excluded from the three time-based series only; the fixed hour and
// weekday domains always appear in full, empty buckets as zeros.
func (a *Assembler) buildCharts(records []models.PostRecord) api.ChartBundle {
	return api.ChartBundle{
		DailyLikes:    a.dailySeries(records),
		PostTypeLikes: postTypeSeries(records),
		HourlyLikes:   hourlySeries(records),
		WeekdayLikes:  a.weekdaySeries(records),
	}
}

type meanAcc struct {
	sum   int
	count int
}

func (m *meanAcc) add(v int) {
	m.sum += v
	m.count++
}

func (m meanAcc) mean() int {
	if m.count == 0 {
		return 0
	}
	return int(roundHalfUp(float64(m.sum) / float64(m.count)))
}

func roundHalfUp(v float64) float64 {
	if v < 0 {
		return -roundHalfUp(-v)
	}
	return float64(int(v + 0.5))
}

func (a *Assembler) dailySeries(records []models.PostRecord) api.ChartSeries {
	byDay := make(map[string]*meanAcc)
	dates := make(map[string]time.Time)
	for _, r := range records {
		if r.Timestamp == nil {
			continue
		}
		day := r.Timestamp.Format("2006-01-02")
		if byDay[day] == nil {
			byDay[day] = &meanAcc{}
			dates[day] = *r.Timestamp
		}
		byDay[day].add(r.Likes)
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := api.ChartSeries{Labels: make([]string, 0, len(keys)), Values: make([]int, 0, len(keys))}
	for _, k := range keys {
		series.Labels = append(series.Labels, a.locale.FormatDayMonth(dates[k]))
		series.Values = append(series.Values, byDay[k].mean())
	}
	return series
}

func postTypeSeries(records []models.PostRecord) api.ChartSeries {
	byType := make(map[string]*meanAcc)
	for _, r := range records {
		if byType[r.PostType] == nil {
			byType[r.PostType] = &meanAcc{}
		}
		byType[r.PostType].add(r.Likes)
	}

	labels := make([]string, 0, len(byType))
	for k := range byType {
		labels = append(labels, k)
	}
	sort.Slice(labels, func(i, j int) bool {
		return strings.ToLower(labels[i]) < strings.ToLower(labels[j])
	})

	series := api.ChartSeries{Labels: labels, Values: make([]int, 0, len(labels))}
	for _, l := range labels {
		series.Values = append(series.Values, byType[l].mean())
	}
	return series
}

func hourlySeries(records []models.PostRecord) api.ChartSeries {
	accs := make([]meanAcc, len(buckets.HourLabels))
	for _, r := range records {
		if r.Timestamp == nil {
			continue
		}
		accs[buckets.HourBucketIndex(r.Timestamp.Hour())].add(r.Likes)
	}

	labels := make([]string, len(buckets.HourLabels))
	copy(labels, buckets.HourLabels)

	series := api.ChartSeries{Labels: labels, Values: make([]int, len(accs))}
	for i, acc := range accs {
		series.Values[i] = acc.mean()
	}
	return series
}

func (a *Assembler) weekdaySeries(records []models.PostRecord) api.ChartSeries {
	accs := make([]meanAcc, buckets.DaysInWeek)
	for _, r := range records {
		if r.Timestamp == nil {
			continue
		}
		accs[buckets.DayIndex(*r.Timestamp)].add(r.Likes)
	}

	series := api.ChartSeries{Labels: a.locale.DayNames(), Values: make([]int, buckets.DaysInWeek)}
	for i, acc := range accs {
		series.Values[i] = acc.mean()
	}
	return series
}

// formatThousands renders an integer with dotted thousands grouping, the
// display convention of the source locale.
func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}
