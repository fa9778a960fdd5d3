package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"spyglass/internal/aggregate"
	"spyglass/internal/dataset"
	"spyglass/internal/metrics"
	"spyglass/internal/report"
	"spyglass/pkg/api/common"
	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/logging"
	"spyglass/pkg/models"
)

var (
	store          *dataset.Store
	assembler      *report.Assembler
	logger         logging.Logger
	serviceMetrics *metrics.Metrics
)

// Init initializes the handlers package with the dataset store, report
// assembler and metrics
func Init(s *dataset.Store, a *report.Assembler, log logging.Logger, m *metrics.Metrics) {
	store = s
	assembler = a
	logger = log
	serviceMetrics = m
}

func observe(queryType string, start time.Time) {
	if serviceMetrics != nil {
		serviceMetrics.QueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
	}
}

func countQuery(queryType, status string) {
	if serviceMetrics != nil {
		serviceMetrics.ReportQueries.WithLabelValues(queryType, status).Inc()
	}
}

func countLoad(err error) {
	if serviceMetrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	serviceMetrics.DatasetLoads.WithLabelValues(status).Inc()
}

// GetProfiles returns the available profile identifiers
func GetProfiles(c *gin.Context) {
	start := time.Now()
	defer observe("profiles", start)

	profiles, err := store.Profiles()
	if err != nil {
		countQuery("profiles", "error")
		logger.WithError(err).Error("Failed to list profiles")
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{Error: "Failed to list profiles"})
		return
	}
	if profiles == nil {
		profiles = []string{}
	}

	countQuery("profiles", "success")
	c.JSON(http.StatusOK, api.ProfilesResponse{Profiles: profiles})
}

// GetProfileReport returns the full report bundle for one profile
func GetProfileReport(c *gin.Context) {
	start := time.Now()
	defer observe("report", start)

	profileID := c.Param("profile")

	records, err := store.LoadProfile(c.Request.Context(), profileID)
	countLoad(err)
	if err != nil {
		countQuery("report", "not_found")
		logger.WithError(err).WithField("profile", profileID).Warn("No report for requested profile")
		c.JSON(http.StatusNotFound, common.ErrorResponse{Error: "No report for requested profile"})
		return
	}

	tags := store.LoadTags(c.Request.Context())
	profileTags, ok := tags[profileID]
	if !ok {
		profileTags = models.UnknownTags(profileID)
	}

	// Baselines come from the full population so the report can compare
	// this profile against everyone tracked.
	all, err := store.LoadAll(c.Request.Context())
	countLoad(err)
	if err != nil {
		countQuery("report", "error")
		logger.WithError(err).Error("Failed to load profile tables")
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{Error: "Failed to load profile tables"})
		return
	}
	baselines := aggregate.ComputeBaselines(aggregate.Rankings(all, tags, aggregate.TagFilter{}))

	bundle := assembler.Build(c.Request.Context(), profileID, records, profileTags, baselines)

	countQuery("report", "success")
	c.JSON(http.StatusOK, bundle)
}

// GetAllPosts returns the cross-profile post listing, optionally filtered
// by tag values (repeatable region/status/city query parameters)
func GetAllPosts(c *gin.Context) {
	start := time.Now()
	defer observe("all_posts", start)

	all, err := store.LoadAll(c.Request.Context())
	countLoad(err)
	if err != nil {
		countQuery("all_posts", "error")
		logger.WithError(err).Error("Failed to load profile tables")
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{Error: "Failed to load profile tables"})
		return
	}

	tags := store.LoadTags(c.Request.Context())
	posts := aggregate.UnionPosts(all, tags, filterFromQuery(c))
	if posts == nil {
		posts = []models.CrossPost{}
	}

	countQuery("all_posts", "success")
	c.JSON(http.StatusOK, api.PostsResponse{Data: posts})
}

// GetRankings returns the one-row-per-profile summary table plus the
// population baselines
func GetRankings(c *gin.Context) {
	start := time.Now()
	defer observe("rankings", start)

	all, err := store.LoadAll(c.Request.Context())
	countLoad(err)
	if err != nil {
		countQuery("rankings", "error")
		logger.WithError(err).Error("Failed to load profile tables")
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{Error: "Failed to load profile tables"})
		return
	}

	tags := store.LoadTags(c.Request.Context())
	summaries := aggregate.Rankings(all, tags, filterFromQuery(c))
	if summaries == nil {
		summaries = []models.ProfileSummary{}
	}

	// Baselines stay population-wide even when the listing is filtered
	baselines := aggregate.ComputeBaselines(aggregate.Rankings(all, tags, aggregate.TagFilter{}))

	countQuery("rankings", "success")
	c.JSON(http.StatusOK, api.RankingsResponse{Data: summaries, Baselines: baselines})
}

func filterFromQuery(c *gin.Context) aggregate.TagFilter {
	return aggregate.TagFilter{
		Regions:  c.QueryArray("region"),
		Statuses: c.QueryArray("status"),
		Cities:   c.QueryArray("city"),
	}
}
