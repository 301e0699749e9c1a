package services

import (
	"context"
	"math"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ValueAs режим представления разбивки просмотров.
type ValueAs string

const (
	ValueAsPercent ValueAs = "percent"
	ValueAsNumber  ValueAs = "number"
)

// UntrackedBucket синтетическая корзина для просмотров без заголовка Referer.
const UntrackedBucket = "untracked"

// ParseValueAs валидирует параметр запроса. Пустое значение — percent.
func ParseValueAs(raw string) (ValueAs, error) {
	switch raw {
	case "", string(ValueAsPercent):
		return ValueAsPercent, nil
	case string(ValueAsNumber):
		return ValueAsNumber, nil
	default:
		return "", apperrs.Validation("value_as must be one of: percent, number!")
	}
}

// GroupByDate разбивка просмотров по календарной дате (UTC, YYYY-MM-DD).
// Для пустого набора возвращается пустая мапа, деления на ноль нет.
func GroupByDate(samples []repositories.ViewSample, as ValueAs) map[string]int {
	counts := make(map[string]int, len(samples))
	for _, s := range samples {
		counts[s.ViewedAt.UTC().Format("2006-01-02")]++
	}
	return representCounts(counts, len(samples), as)
}

// GroupByReferer разбивка просмотров по значению Referer. Просмотры без
// referer складываются в корзину "untracked"; пустые корзины не включаются.
func GroupByReferer(samples []repositories.ViewSample, as ValueAs) map[string]int {
	counts := make(map[string]int, len(samples))
	for _, s := range samples {
		if s.Referer == nil {
			counts[UntrackedBucket]++
			continue
		}
		counts[*s.Referer]++
	}
	return representCounts(counts, len(samples), as)
}

// representCounts превращает абсолютные счетчики в проценты при
// необходимости. Проценты округляются независимо (половина — вверх),
// поэтому их сумма может отклоняться от 100 на число корзин минус один.
func representCounts(counts map[string]int, total int, as ValueAs) map[string]int {
	if as != ValueAsPercent || total == 0 {
		return counts
	}
	percents := make(map[string]int, len(counts))
	for key, count := range counts {
		percents[key] = int(math.Round(float64(count) / float64(total) * 100))
	}
	return percents
}

// StatsSummary агрегированная статистика одной ссылки.
type StatsSummary struct {
	Total      int64
	ByReferers map[string]int
	ByDates    map[string]int
}

// StatsService запись просмотров и выдача агрегатов.
type StatsService struct {
	viewRepo ViewRepository
	dimRepo  DimRepository
	logger   *logrus.Entry
}

func NewStatsService(viewRepo ViewRepository, dimRepo DimRepository, logger *logrus.Logger) *StatsService {
	return &StatsService{
		viewRepo: viewRepo,
		dimRepo:  dimRepo,
		logger:   logger.WithField("module", "service/stats"),
	}
}

// RecordView фиксирует одно открытие ссылки: дедуплицирует user agent и
// referer, создает запись просмотра ровно с одним из url_id/paste_id.
func (s *StatsService) RecordView(ctx context.Context, target repositories.ViewTarget, ip, userAgent string, referer *string) (*models.URLView, error) {
	if target.ID == 0 {
		return nil, errors.New("record view: target id is not set")
	}
	if ip == "" {
		ip = models.UntrackableIP
	}

	ua, uaErr := s.dimRepo.GetOrCreateUserAgent(ctx, userAgent)
	if uaErr != nil {
		return nil, errors.Wrap(uaErr, "record view: user agent")
	}

	var refererID *uint
	if referer != nil && *referer != "" {
		ref, refErr := s.dimRepo.GetOrCreateReferer(ctx, *referer)
		if refErr != nil {
			return nil, errors.Wrap(refErr, "record view: referer")
		}
		refererID = &ref.ID
	}

	view := models.URLView{
		IP:          ip,
		UserAgentID: ua.ID,
		RefererID:   refererID,
	}
	// Взаимоисключающие FK: заполняется ровно одна колонка, по тегу варианта.
	switch target.Kind {
	case models.LinkKindRedirect:
		view.URLID = &target.ID
	case models.LinkKindPaste:
		view.PasteID = &target.ID
	default:
		return nil, errors.Errorf("record view: unknown link kind %q", target.Kind)
	}

	if err := s.viewRepo.Create(ctx, &view); err != nil {
		return nil, errors.Wrap(err, "record view")
	}
	return &view, nil
}

// Summary собирает полную статистику ссылки: общее число просмотров и
// разбивки по referer и датам в выбранных режимах.
func (s *StatsService) Summary(ctx context.Context, target repositories.ViewTarget, referersAs, datesAs ValueAs) (*StatsSummary, error) {
	total, countErr := s.viewRepo.CountByTarget(ctx, target)
	if countErr != nil {
		return nil, errors.Wrap(countErr, "stats summary: count")
	}

	samples, listErr := s.viewRepo.ListSamplesByTarget(ctx, target)
	if listErr != nil {
		return nil, errors.Wrap(listErr, "stats summary: samples")
	}

	return &StatsSummary{
		Total:      total,
		ByReferers: GroupByReferer(samples, referersAs),
		ByDates:    GroupByDate(samples, datesAs),
	}, nil
}

func (s *StatsService) TotalViews(ctx context.Context, target repositories.ViewTarget) (int64, error) {
	total, err := s.viewRepo.CountByTarget(ctx, target)
	if err != nil {
		return 0, errors.Wrap(err, "total views")
	}
	return total, nil
}

// ClearViews массово удаляет просмотры ссылки. Вызывается только после
// проверки владельца.
func (s *StatsService) ClearViews(ctx context.Context, target repositories.ViewTarget) error {
	if err := s.viewRepo.DeleteByTarget(ctx, target); err != nil {
		return errors.Wrap(err, "clear views")
	}
	return nil
}
