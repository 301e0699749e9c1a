package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/fsdevblog/shortlinks/internal/repositories/sql"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func strPtr(s string) *string { return &s }

func sampleAt(t time.Time, referer *string) repositories.ViewSample {
	return repositories.ViewSample{ViewedAt: t, Referer: referer}
}

func TestGroupByReferer(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("number mode with untracked bucket", func(t *testing.T) {
		samples := []repositories.ViewSample{
			sampleAt(now, strPtr("https://a.com")),
			sampleAt(now, strPtr("https://a.com")),
			sampleAt(now, strPtr("https://b.com")),
			sampleAt(now, nil),
		}
		got := GroupByReferer(samples, ValueAsNumber)
		assert.Equal(t, map[string]int{
			"https://a.com": 2,
			"https://b.com": 1,
			UntrackedBucket: 1,
		}, got)
	})

	t.Run("percent mode", func(t *testing.T) {
		var samples []repositories.ViewSample
		for i := 0; i < 6; i++ {
			samples = append(samples, sampleAt(now, strPtr("https://a.com")))
		}
		for i := 0; i < 4; i++ {
			samples = append(samples, sampleAt(now, nil))
		}
		got := GroupByReferer(samples, ValueAsPercent)
		assert.Equal(t, map[string]int{
			"https://a.com": 60,
			UntrackedBucket: 40,
		}, got)
	})

	t.Run("percent rounds half up", func(t *testing.T) {
		samples := []repositories.ViewSample{
			sampleAt(now, strPtr("https://a.com")),
			sampleAt(now, strPtr("https://a.com")),
			sampleAt(now, strPtr("https://b.com")),
		}
		got := GroupByReferer(samples, ValueAsPercent)
		// 2/3 и 1/3: округленная сумма не обязана давать ровно 100.
		assert.Equal(t, map[string]int{
			"https://a.com": 67,
			"https://b.com": 33,
		}, got)
	})

	t.Run("empty set yields empty map", func(t *testing.T) {
		assert.Empty(t, GroupByReferer(nil, ValueAsPercent))
		assert.Empty(t, GroupByReferer(nil, ValueAsNumber))
	})
}

func TestGroupByDate(t *testing.T) {
	day1 := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 2, 0, 1, 0, 0, time.UTC)

	samples := []repositories.ViewSample{
		sampleAt(day1, nil),
		sampleAt(day1.Add(-time.Hour), nil),
		sampleAt(day2, nil),
	}

	assert.Equal(t, map[string]int{
		"2024-05-01": 2,
		"2024-05-02": 1,
	}, GroupByDate(samples, ValueAsNumber))

	assert.Equal(t, map[string]int{
		"2024-05-01": 67,
		"2024-05-02": 33,
	}, GroupByDate(samples, ValueAsPercent))
}

func TestParseValueAs(t *testing.T) {
	got, err := ParseValueAs("")
	require.NoError(t, err)
	assert.Equal(t, ValueAsPercent, got)

	got, err = ParseValueAs("number")
	require.NoError(t, err)
	assert.Equal(t, ValueAsNumber, got)

	_, err = ParseValueAs("bogus")
	require.Error(t, err)
}

type StatsServiceSuite struct {
	suite.Suite
	statsService *StatsService
	urlRepo      *sql.URLRepo
	pasteRepo    *sql.PasteRepo
}

func (s *StatsServiceSuite) SetupTest() {
	conn, err := db.NewSQLite(filepath.Join(s.T().TempDir(), "test.db"))
	s.Require().NoError(err)

	logger := logrus.New()
	s.urlRepo = sql.NewURLRepo(conn, logger)
	s.pasteRepo = sql.NewPasteRepo(conn, logger)
	s.statsService = NewStatsService(sql.NewViewRepo(conn, logger), sql.NewDimRepo(conn, logger), logger)
}

func (s *StatsServiceSuite) TestRecordViewSetsExactlyOneFK() {
	ctx := context.Background()

	sURL := models.RedirectURL{Redirect: "https://example.com"}
	s.Require().NoError(s.urlRepo.Create(ctx, &sURL))

	paste := models.PasteURL{Content: "0123456789", Language: "plain"}
	s.Require().NoError(s.pasteRepo.Create(ctx, &paste))

	urlView, err := s.statsService.RecordView(ctx,
		repositories.ViewTarget{Kind: models.LinkKindRedirect, ID: sURL.ID},
		"10.0.0.1", "test-agent", nil)
	s.Require().NoError(err)
	s.Require().NotNil(urlView.URLID)
	s.Nil(urlView.PasteID)
	s.Equal(sURL.ID, *urlView.URLID)

	pasteView, err := s.statsService.RecordView(ctx,
		repositories.ViewTarget{Kind: models.LinkKindPaste, ID: paste.ID},
		"10.0.0.1", "test-agent", nil)
	s.Require().NoError(err)
	s.Require().NotNil(pasteView.PasteID)
	s.Nil(pasteView.URLID)
	s.Equal(paste.ID, *pasteView.PasteID)
}

func (s *StatsServiceSuite) TestRecordViewDeduplicatesDimensions() {
	ctx := context.Background()

	sURL := models.RedirectURL{Redirect: "https://example.com"}
	s.Require().NoError(s.urlRepo.Create(ctx, &sURL))
	target := repositories.ViewTarget{Kind: models.LinkKindRedirect, ID: sURL.ID}

	first, err := s.statsService.RecordView(ctx, target, "10.0.0.1", "same-agent", strPtr("https://a.com"))
	s.Require().NoError(err)
	second, err := s.statsService.RecordView(ctx, target, "10.0.0.2", "same-agent", strPtr("https://a.com"))
	s.Require().NoError(err)

	s.Equal(first.UserAgentID, second.UserAgentID)
	s.Require().NotNil(first.RefererID)
	s.Require().NotNil(second.RefererID)
	s.Equal(*first.RefererID, *second.RefererID)
}

func (s *StatsServiceSuite) TestRecordViewEmptyIPIsUntrackable() {
	ctx := context.Background()

	sURL := models.RedirectURL{Redirect: "https://example.com"}
	s.Require().NoError(s.urlRepo.Create(ctx, &sURL))

	view, err := s.statsService.RecordView(ctx,
		repositories.ViewTarget{Kind: models.LinkKindRedirect, ID: sURL.ID},
		"", "test-agent", nil)
	s.Require().NoError(err)
	s.Equal(models.UntrackableIP, view.IP)
}

func (s *StatsServiceSuite) TestSummaryAndClear() {
	ctx := context.Background()

	sURL := models.RedirectURL{Redirect: "https://example.com"}
	s.Require().NoError(s.urlRepo.Create(ctx, &sURL))
	target := repositories.ViewTarget{Kind: models.LinkKindRedirect, ID: sURL.ID}

	_, err := s.statsService.RecordView(ctx, target, "10.0.0.1", "agent", strPtr("https://a.com"))
	s.Require().NoError(err)
	_, err = s.statsService.RecordView(ctx, target, "10.0.0.2", "agent", strPtr("https://a.com"))
	s.Require().NoError(err)
	_, err = s.statsService.RecordView(ctx, target, "10.0.0.3", "agent", nil)
	s.Require().NoError(err)

	summary, sumErr := s.statsService.Summary(ctx, target, ValueAsNumber, ValueAsNumber)
	s.Require().NoError(sumErr)
	s.Equal(int64(3), summary.Total)
	s.Equal(map[string]int{
		"https://a.com": 2,
		UntrackedBucket: 1,
	}, summary.ByReferers)

	s.Require().NoError(s.statsService.ClearViews(ctx, target))

	summary, sumErr = s.statsService.Summary(ctx, target, ValueAsNumber, ValueAsNumber)
	s.Require().NoError(sumErr)
	s.Equal(int64(0), summary.Total)
	s.Empty(summary.ByReferers)
	s.Empty(summary.ByDates)
}

func TestStatsServiceSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceSuite))
}
