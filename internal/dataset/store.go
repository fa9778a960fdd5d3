// Package dataset loads and normalizes the per-profile post export tables
// and the shared tag table. Every load degrades cell-level problems to
// safe defaults; only a table that cannot be decoded at all fails, and
// that failure is scoped to its profile.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"spyglass/pkg/cache"
	"spyglass/pkg/logging"
	"spyglass/pkg/models"
)

const (
	// ExportSuffix marks a profile's post export inside the data
	// directory; the profile ID is the filename with the suffix stripped.
	ExportSuffix = "Main.csv"

	// TagFileName is the shared tag table inside the data directory.
	TagFileName = "profile_tags.csv"
)

// Store reads normalized records from a data directory. Loads are memoized
// through an optional cache keyed by file modification signature, so a
// rewritten export invalidates itself; the store is fully correct with a
// nil cache.
type Store struct {
	dir    string
	logger logging.Logger
	cache  *cache.Cache
}

// NewStore creates a store rooted at dir. The cache may be nil.
func NewStore(dir string, logger logging.Logger, c *cache.Cache) *Store {
	return &Store{dir: dir, logger: logger, cache: c}
}

// Dir returns the data directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// TagPath returns the path of the shared tag table.
func (s *Store) TagPath() string {
	return filepath.Join(s.dir, TagFileName)
}

// Profiles lists the available profile identifiers, sorted.
func (s *Store) Profiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory: %w", err)
	}

	var profiles []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ExportSuffix) {
			continue
		}
		profiles = append(profiles, strings.TrimSuffix(e.Name(), ExportSuffix))
	}
	sort.Strings(profiles)
	return profiles, nil
}

// LoadProfile loads and normalizes one profile's export table.
func (s *Store) LoadProfile(ctx context.Context, profileID string) ([]models.PostRecord, error) {
	path := filepath.Join(s.dir, profileID+ExportSuffix)

	if s.cache == nil {
		return loadExport(profileID, path)
	}

	key := "profile:" + fileSignature(path)
	val, ok, err := s.cache.Get(ctx, key, func(context.Context, string) (interface{}, bool, error) {
		records, err := loadExport(profileID, path)
		if err != nil {
			return nil, false, err
		}
		return records, true, nil
	})
	if err != nil || !ok {
		return nil, err
	}
	return val.([]models.PostRecord), nil
}

// LoadAll loads every profile's table. Unreadable profiles are logged and
// skipped; they never abort the aggregate view.
func (s *Store) LoadAll(ctx context.Context) (map[string][]models.PostRecord, error) {
	profiles, err := s.Profiles()
	if err != nil {
		return nil, err
	}

	out := make(map[string][]models.PostRecord, len(profiles))
	for _, id := range profiles {
		records, err := s.LoadProfile(ctx, id)
		if err != nil {
			s.logger.WithError(err).WithField("profile", id).Warn("Skipping unreadable profile export")
			continue
		}
		out[id] = records
	}
	return out, nil
}

// LoadTags loads the shared tag table. A missing or malformed table is
// reported and yields an empty map; lookups then fall back to the unknown
// placeholders.
func (s *Store) LoadTags(ctx context.Context) map[string]models.ProfileTags {
	path := s.TagPath()

	load := func() map[string]models.ProfileTags {
		tags, err := loadTagTable(path)
		if err != nil {
			s.logger.WithError(err).Warn("Tag table unavailable; all profiles tagged unknown")
			return map[string]models.ProfileTags{}
		}
		return tags
	}

	if s.cache == nil {
		return load()
	}

	key := "tags:" + fileSignature(path)
	val, ok, err := s.cache.Get(ctx, key, func(context.Context, string) (interface{}, bool, error) {
		return load(), true, nil
	})
	if err != nil || !ok {
		return map[string]models.ProfileTags{}
	}
	return val.(map[string]models.ProfileTags)
}

// fileSignature derives a cache key component from a file's identity and
// modification state, so edited source tables never serve stale loads.
func fileSignature(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path + "|absent"
	}
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
}

// loadExport reads, decodes and normalizes one profile export.
func loadExport(profileID, path string) ([]models.PostRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export for %s: %w", profileID, err)
	}

	text, _, err := decodeTable(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding export for %s: %w", profileID, err)
	}

	header, rows, err := readDelimited(text)
	if err != nil {
		return nil, fmt.Errorf("parsing export for %s: %w", profileID, err)
	}

	records := make([]models.PostRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, normalizeRow(profileID, header, row))
	}

	// The follower count is an ingestion-time snapshot: read once from the
	// first row and applied uniformly.
	if len(records) > 0 {
		followers := records[0].Followers
		for i := range records {
			records[i].Followers = followers
		}
	}

	return records, nil
}

type column struct {
	name      string
	canonical bool
}

// readDelimited parses semicolon-separated text into a canonicalized
// header and raw rows. Ragged rows are tolerated.
func readDelimited(text string) ([]column, [][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var header []column
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if header == nil {
			header = make([]column, len(row))
			for i, h := range row {
				name, ok := canonicalColumn(h)
				header[i] = column{name: name, canonical: ok}
			}
			continue
		}
		rows = append(rows, row)
	}
	if header == nil {
		return nil, nil, fmt.Errorf("empty table")
	}
	return header, rows, nil
}

// normalizeRow maps one source row onto the canonical record. Malformed
// cells degrade to defaults; a row is never dropped here.
func normalizeRow(profileID string, header []column, row []string) models.PostRecord {
	rec := models.PostRecord{
		ProfileID: profileID,
		PostType:  models.Unknown,
	}

	for i, col := range header {
		if i >= len(row) {
			break
		}
		cell := row[i]
		if !col.canonical {
			if col.name != "" {
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[col.name] = strings.TrimSpace(cell)
			}
			continue
		}

		switch col.name {
		case colLikes:
			rec.Likes = parseCount(cell)
		case colComments:
			rec.Comments = parseCount(cell)
		case colFollowers:
			rec.Followers = parseNumber(cell)
			if rec.Followers < 0 {
				rec.Followers = 0
			}
		case colDate:
			rec.RawDate = strings.TrimSpace(cell)
			rec.Timestamp = parseTimestamp(cell)
		case colType:
			if v := cleanText(cell); v != "" {
				rec.PostType = v
			}
		case colCaption:
			rec.Caption = cleanText(cell)
		case colLink:
			rec.Permalink = strings.TrimSpace(cell)
		case colImage:
			rec.ImageURL = strings.TrimSpace(cell)
		}
	}

	return rec
}

// loadTagTable parses the shared tag table: profile identifier plus up to
// three free-form tag dimensions, whitespace-trimmed.
func loadTagTable(path string) (map[string]models.ProfileTags, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tag table: %w", err)
	}

	text, _, err := decodeTable(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding tag table: %w", err)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var header []string
	tags := make(map[string]models.ProfileTags)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing tag table: %w", err)
		}
		if header == nil {
			header = row
			continue
		}

		entry := models.UnknownTags("")
		for i, h := range header {
			if i >= len(row) {
				break
			}
			value := strings.TrimSpace(row[i])
			if value == "" {
				continue
			}
			canonical, ok := canonicalTagColumn(h)
			if !ok {
				continue
			}
			switch canonical {
			case tagColProfile:
				entry.ProfileID = value
			case tagColRegion:
				entry.Region = value
			case tagColStatus:
				entry.Status = value
			case tagColCity:
				entry.City = value
			}
		}
		if entry.ProfileID == "" {
			continue
		}
		tags[entry.ProfileID] = entry
	}

	return tags, nil
}
