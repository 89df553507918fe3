package service

import (
	"context"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/repository"
)

// StatsService computes the dashboard counters: per-type tickets sold,
// remaining stock, and expected/admitted headcounts.
type StatsService struct {
	ticketTypes repository.TicketTypeRepository
	tickets     repository.TicketRepository
}

// NewStatsService constructs the service.
func NewStatsService(ticketTypes repository.TicketTypeRepository, tickets repository.TicketRepository) *StatsService {
	return &StatsService{ticketTypes: ticketTypes, tickets: tickets}
}

// Overview returns per-type stats plus grand totals.
func (s *StatsService) Overview(ctx context.Context) ([]domain.TypeStats, domain.StatsTotals, error) {
	types, err := s.ticketTypes.List(ctx)
	if err != nil {
		return nil, domain.StatsTotals{}, err
	}

	counts, err := s.tickets.StatusCountsByType(ctx)
	if err != nil {
		return nil, domain.StatsTotals{}, err
	}

	stats := make([]domain.TypeStats, 0, len(types))
	var totals domain.StatsTotals
	for _, tt := range types {
		tc := counts[tt.ID]
		st := domain.TypeStats{
			TicketType:       tt,
			TicketsSold:      tc.Sold,
			TicketsAvailable: tt.TotalStock - tc.Sold,
			PeopleExpected:   tc.Sold * tt.PeoplePerTicket,
			TicketsUsed:      tc.Used,
			PeopleEntered:    tc.Used * tt.PeoplePerTicket,
		}
		stats = append(stats, st)

		totals.TotalStock += tt.TotalStock
		totals.TotalSold += st.TicketsSold
		totals.TotalAvailable += st.TicketsAvailable
		totals.TotalPeopleExpected += st.PeopleExpected
		totals.TotalUsed += st.TicketsUsed
		totals.TotalPeopleEntered += st.PeopleEntered
	}
	return stats, totals, nil
}
