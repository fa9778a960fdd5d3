package report

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/internal/buckets"
	"spyglass/pkg/logging"
	"spyglass/pkg/models"
)

type stubFetcher struct {
	calls  []string
	result string
}

func (s *stubFetcher) PreviewImage(_ context.Context, permalink string) string {
	s.calls = append(s.calls, permalink)
	return s.result
}

func ts(day, hour int) *time.Time {
	t := time.Date(2024, 11, day, hour, 15, 0, 0, time.UTC)
	return &t
}

func fixtureRecords() []models.PostRecord {
	return []models.PostRecord{
		{ProfileID: "P", Likes: 100, Comments: 10, Followers: 1000, PostType: "Reels", Permalink: "https://x/p/1/", Caption: "a", Timestamp: ts(4, 9), RawDate: "04.11.2024 09:15"},
		{ProfileID: "P", Likes: 200, Comments: 20, Followers: 1000, PostType: "Video", Permalink: "https://x/p/2/", Caption: "b", Timestamp: ts(4, 18), RawDate: "04.11.2024 18:15"},
		{ProfileID: "P", Likes: 300, Comments: 30, Followers: 1000, PostType: "Reels", Permalink: "https://x/p/3/", Caption: "c", Timestamp: ts(5, 21), RawDate: "05.11.2024 21:15"},
		{ProfileID: "P", Likes: 50, Comments: 0, Followers: 1000, PostType: "Reels", Caption: "undated", Timestamp: nil},
	}
}

func newTestAssembler(f *stubFetcher, topN int) *Assembler {
	return NewAssembler(f, buckets.Turkish, topN, logging.NewLogger())
}

func TestBuildKPIs(t *testing.T) {
	asm := newTestAssembler(&stubFetcher{}, 0)
	bundle := asm.Build(context.Background(), "P", fixtureRecords(), models.UnknownTags("P"), models.Baselines{})

	// 4 posts, interaction 110+220+330+50 = 710, avg 177.5, reach 17.75%
	assert.Equal(t, "1.000", bundle.KPIs.Followers.Value)
	assert.Equal(t, "177", bundle.KPIs.Interaction.Value)
	assert.Equal(t, "%17.75", bundle.KPIs.Reach.Value)
	assert.Equal(t, "4", bundle.KPIs.Posts.Value)
	assert.Equal(t, "Takipçi Sayısı", bundle.KPIs.Followers.Title)
	assert.Equal(t, models.Unknown, bundle.City)
}

func TestTopPostsDefaultFourAndEnrichment(t *testing.T) {
	fetcher := &stubFetcher{result: "https://cdn/img.jpg"}
	asm := newTestAssembler(fetcher, 0)

	bundle := asm.Build(context.Background(), "P", fixtureRecords(), models.UnknownTags("P"), models.Baselines{})

	require.Len(t, bundle.TopPosts, 4, "top-N defaults to 4")
	assert.Equal(t, "c", bundle.TopPosts[0].Caption, "highest interaction first")
	assert.Equal(t, 300, bundle.TopPosts[0].Likes)
	assert.Equal(t, "https://cdn/img.jpg", bundle.TopPosts[0].Image)
	assert.Equal(t, "05.11.2024 21:15", bundle.TopPosts[0].Date)

	// The undated post has no permalink: no fetch, empty image
	assert.Equal(t, "", bundle.TopPosts[3].Image)
	assert.Len(t, fetcher.calls, 3)
}

func TestTopPostsEnrichmentFailureDegrades(t *testing.T) {
	asm := newTestAssembler(&stubFetcher{result: ""}, 2)
	bundle := asm.Build(context.Background(), "P", fixtureRecords(), models.UnknownTags("P"), models.Baselines{})

	require.Len(t, bundle.TopPosts, 2)
	for _, p := range bundle.TopPosts {
		assert.Equal(t, "", p.Image)
	}
}

func TestTopPostsEnrichmentMissLogged(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	asm := NewAssembler(&stubFetcher{result: ""}, buckets.Turkish, 2, logger)

	asm.Build(context.Background(), "P", fixtureRecords(), models.UnknownTags("P"), models.Baselines{})

	require.NotEmpty(t, hook.Entries)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Contains(t, entry.Data, "permalink")
}

func TestDailySeriesChronological(t *testing.T) {
	asm := newTestAssembler(&stubFetcher{}, 0)
	bundle := asm.Build(context.Background(), "P", fixtureRecords(), models.UnknownTags("P"), models.Baselines{})

	daily := bundle.Charts.DailyLikes
	assert.Equal(t, []string{"4 Kasım", "5 Kasım"}, daily.Labels)
	assert.Equal(t, []int{150, 300}, daily.Values, "mean likes per day")
}

func TestPostTypeSeriesSortedLabels(t *testing.T) {
	asm := newTestAssembler(&stubFetcher{}, 0)
	bundle := asm.Build(context.Background(), "P", fixtureRecords(), models.UnknownTags("P"), models.Baselines{})

	types := bundle.Charts.PostTypeLikes
	assert.Equal(t, []string{"Reels", "Video"}, types.Labels)
	assert.Equal(t, []int{150, 200}, types.Values, "Reels mean (100+300+50)/3, Video mean 200")
}

func TestHourlySeriesFullDomain(t *testing.T) {
	asm := newTestAssembler(&stubFetcher{}, 0)
	bundle := asm.Build(context.Background(), "P", fixtureRecords(), models.UnknownTags("P"), models.Baselines{})

	hourly := bundle.Charts.HourlyLikes
	assert.Equal(t, buckets.HourLabels, hourly.Labels)
	// 09h -> 08-12, 18h -> 16-20, 21h -> 20-24; remaining buckets explicit zeros
	assert.Equal(t, []int{0, 0, 100, 0, 200, 300}, hourly.Values)

	// Labels are a copy; mutating a series must not corrupt the fixed domain
	hourly.Labels[0] = "corrupted"
	assert.Equal(t, "00-04:00", buckets.HourLabels[0])
}

func TestWeekdaySeriesFullDomain(t *testing.T) {
	asm := newTestAssembler(&stubFetcher{}, 0)
	bundle := asm.Build(context.Background(), "P", fixtureRecords(), models.UnknownTags("P"), models.Baselines{})

	weekday := bundle.Charts.WeekdayLikes
	assert.Equal(t, buckets.Turkish.DayNames(), weekday.Labels)
	// 2024-11-04 is Monday (likes 100, 200 -> mean 150), 11-05 Tuesday (300)
	assert.Equal(t, []int{150, 300, 0, 0, 0, 0, 0}, weekday.Values)
}

func TestBuildEmptyProfile(t *testing.T) {
	asm := newTestAssembler(&stubFetcher{}, 0)
	bundle := asm.Build(context.Background(), "Empty", nil, models.UnknownTags("Empty"), models.Baselines{})

	assert.Equal(t, "0", bundle.KPIs.Posts.Value)
	assert.Empty(t, bundle.TopPosts)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, bundle.Charts.HourlyLikes.Values)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, bundle.Charts.WeekdayLikes.Values)
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "0", formatThousands(0))
	assert.Equal(t, "999", formatThousands(999))
	assert.Equal(t, "1.000", formatThousands(1000))
	assert.Equal(t, "1.234.567", formatThousands(1234567))
}
