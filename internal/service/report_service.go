package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/events"
	"github.com/impcorecl/ticketeraimpactualizada/internal/persistence"
	"github.com/impcorecl/ticketeraimpactualizada/internal/repository"
)

const reportCacheKey = "ticketera:sales_report"

// ReportService serves the denormalized sales report, with a short-lived
// Redis cache so door terminals polling for freshness don't hammer the
// join. The cache is dropped whenever a sale, scan, or revocation lands.
type ReportService struct {
	sales    repository.SaleRepository
	redis    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewReportService constructs the service and subscribes to the events
// that stale the report.
func NewReportService(sales repository.SaleRepository, redis *persistence.Redis, cacheTTL time.Duration, dispatcher events.Dispatcher, logger *zap.Logger) *ReportService {
	s := &ReportService{
		sales:    sales,
		redis:    redis,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
	if dispatcher != nil {
		invalidate := func(ctx context.Context, _ events.Event) error {
			s.Invalidate(ctx)
			return nil
		}
		dispatcher.Subscribe(events.EventSaleCompleted, invalidate)
		dispatcher.Subscribe(events.EventTicketScanned, invalidate)
		dispatcher.Subscribe(events.EventTicketRevoked, invalidate)
	}
	return s
}

// Report returns all sales joined with customer, ambassador and type
// attributes, ordered by creation time descending. Commission amounts are
// the persisted snapshots, never recomputed.
func (s *ReportService) Report(ctx context.Context) ([]domain.SaleRecord, error) {
	if cached, ok := s.cachedReport(ctx); ok {
		return cached, nil
	}

	records, err := s.sales.Report(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheReport(ctx, records)
	return records, nil
}

// CommissionSummary aggregates the report per ambassador.
func (s *ReportService) CommissionSummary(ctx context.Context) ([]domain.CommissionSummary, error) {
	records, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*domain.CommissionSummary)
	for _, rec := range records {
		if rec.AmbassadorName == nil || !rec.CommissionAmount.IsPositive() {
			continue
		}
		summary, ok := byName[*rec.AmbassadorName]
		if !ok {
			summary = &domain.CommissionSummary{
				AmbassadorName:  *rec.AmbassadorName,
				TotalSales:      decimal.Zero,
				TotalCommission: decimal.Zero,
			}
			byName[*rec.AmbassadorName] = summary
		}
		summary.TotalSales = summary.TotalSales.Add(rec.SalePrice)
		summary.TotalCommission = summary.TotalCommission.Add(rec.CommissionAmount)
		summary.TicketsSold++
	}

	result := make([]domain.CommissionSummary, 0, len(byName))
	for _, summary := range byName {
		result = append(result, *summary)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AmbassadorName < result[j].AmbassadorName
	})
	return result, nil
}

// Invalidate drops the cached report.
func (s *ReportService) Invalidate(ctx context.Context) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	if err := s.redis.Client.Del(ctx, reportCacheKey).Err(); err != nil {
		s.logger.Warn("report cache invalidation failed", zap.Error(err))
	}
}

func (s *ReportService) cachedReport(ctx context.Context) ([]domain.SaleRecord, bool) {
	if s.redis == nil || s.redis.Client == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := s.redis.Client.Get(ctx, reportCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var records []domain.SaleRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	return records, true
}

func (s *ReportService) cacheReport(ctx context.Context, records []domain.SaleRecord) {
	if s.redis == nil || s.redis.Client == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := s.redis.Client.Set(ctx, reportCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("report cache write failed", zap.Error(err))
	}
}
