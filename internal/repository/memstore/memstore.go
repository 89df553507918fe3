// Package memstore provides an in-memory implementation of the
// repository interfaces. It backs the service when no POSTGRES_DSN is
// configured and the test suite. The semantics mirror the SQL
// implementations: conditional state transitions are taken under one
// lock, so the concurrency guarantees (no oversell, at-most-once
// admission) hold here too.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/repository"
)

// Store holds all entities behind a single mutex.
type Store struct {
	mu          sync.Mutex
	users       map[string]domain.User
	ticketTypes map[string]domain.TicketType
	tickets     map[string]domain.Ticket
	customers   map[string]domain.Customer
	ambassadors map[string]domain.Ambassador
	sales       map[string]domain.Sale
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:       make(map[string]domain.User),
		ticketTypes: make(map[string]domain.TicketType),
		tickets:     make(map[string]domain.Ticket),
		customers:   make(map[string]domain.Customer),
		ambassadors: make(map[string]domain.Ambassador),
		sales:       make(map[string]domain.Sale),
	}
}

// Accessors returning interface-shaped views over the shared state.

func (s *Store) Users() repository.UserRepository             { return &userStore{s} }
func (s *Store) TicketTypes() repository.TicketTypeRepository { return &ticketTypeStore{s} }
func (s *Store) Tickets() repository.TicketRepository         { return &ticketStore{s} }
func (s *Store) Customers() repository.CustomerRepository     { return &customerStore{s} }
func (s *Store) Ambassadors() repository.AmbassadorRepository { return &ambassadorStore{s} }
func (s *Store) Sales() repository.SaleRepository             { return &saleStore{s} }

// --- users ---

type userStore struct{ s *Store }

func (r *userStore) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// Same uniqueness guarantee as the users(username) constraint in Postgres.
	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *userStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *userStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// --- ticket types ---

type ticketTypeStore struct{ s *Store }

func (r *ticketTypeStore) Create(_ context.Context, tt *domain.TicketType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tt.ID = uuid.NewString()
	tt.CreatedAt = time.Now()
	r.s.ticketTypes[tt.ID] = *tt
	return nil
}

func (r *ticketTypeStore) GetByID(_ context.Context, id string) (*domain.TicketType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tt, ok := r.s.ticketTypes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &tt, nil
}

func (r *ticketTypeStore) List(_ context.Context) ([]domain.TicketType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.TicketType, 0, len(r.s.ticketTypes))
	for _, tt := range r.s.ticketTypes {
		result = append(result, tt)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Price.LessThan(result[j].Price)
	})
	return result, nil
}

// --- tickets ---

type ticketStore struct{ s *Store }

func (r *ticketStore) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ticket, ok := r.s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

// ClaimValid takes the valid -> used transition under the store lock,
// matching the atomicity of the SQL conditional update.
func (r *ticketStore) ClaimValid(_ context.Context, id string) (*repository.AdmittedTicket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ticket, ok := r.s.tickets[id]
	if !ok || ticket.Status != domain.TicketStatusValid {
		return nil, pgx.ErrNoRows
	}

	now := time.Now()
	ticket.Status = domain.TicketStatusUsed
	ticket.ScannedAt = &now
	r.s.tickets[id] = ticket

	tt := r.s.ticketTypes[ticket.TicketTypeID]
	return &repository.AdmittedTicket{
		TicketID:        ticket.ID,
		TicketTypeName:  tt.Name,
		Description:     tt.Description,
		PeoplePerTicket: tt.PeoplePerTicket,
		ScannedAt:       now,
	}, nil
}

func (r *ticketStore) Revoke(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ticket, ok := r.s.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if ticket.Status != domain.TicketStatusValid {
		return domain.ErrNotRevocable
	}
	ticket.Status = domain.TicketStatusRevoked
	r.s.tickets[id] = ticket
	return nil
}

func (r *ticketStore) StatusCountsByType(_ context.Context) (map[string]repository.TypeCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[string]repository.TypeCounts)
	for _, ticket := range r.s.tickets {
		tc := counts[ticket.TicketTypeID]
		tc.Sold++
		if ticket.Status == domain.TicketStatusUsed {
			tc.Used++
		}
		counts[ticket.TicketTypeID] = tc
	}
	return counts, nil
}

// --- customers ---

type customerStore struct{ s *Store }

func (r *customerStore) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	customer, ok := r.s.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &customer, nil
}

func (r *customerStore) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if customer, ok := r.s.findCustomerByEmail(email); ok {
		return &customer, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *customerStore) List(_ context.Context) ([]domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.Customer, 0, len(r.s.customers))
	for _, customer := range r.s.customers {
		result = append(result, customer)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *customerStore) Update(_ context.Context, customer *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.customers[customer.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Name = customer.Name
	existing.Email = customer.Email
	existing.Phone = customer.Phone
	r.s.customers[customer.ID] = existing
	return nil
}

func (s *Store) findCustomerByEmail(email string) (domain.Customer, bool) {
	for _, customer := range s.customers {
		if strings.EqualFold(customer.Email, email) {
			return customer, true
		}
	}
	return domain.Customer{}, false
}

// --- ambassadors ---

type ambassadorStore struct{ s *Store }

func (r *ambassadorStore) Create(_ context.Context, amb *domain.Ambassador) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	amb.ID = uuid.NewString()
	amb.CreatedAt = time.Now()
	r.s.ambassadors[amb.ID] = *amb
	return nil
}

func (r *ambassadorStore) Update(_ context.Context, amb *domain.Ambassador) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ambassadors[amb.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.s.ambassadors[amb.ID] = *amb
	return nil
}

func (r *ambassadorStore) GetByID(_ context.Context, id string) (*domain.Ambassador, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	amb, ok := r.s.ambassadors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &amb, nil
}

func (r *ambassadorStore) List(_ context.Context) ([]domain.Ambassador, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.Ambassador, 0, len(r.s.ambassadors))
	for _, amb := range r.s.ambassadors {
		result = append(result, amb)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// --- sales ---

type saleStore struct{ s *Store }

// CreateCompleteSale performs the whole sale under the store lock:
// capacity check, customer upsert, ticket insert, commission snapshot.
// Nothing is persisted on any failure path.
func (r *saleStore) CreateCompleteSale(_ context.Context, input repository.SaleInput) (*domain.SaleReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ticketType, ok := r.s.ticketTypes[input.TicketTypeID]
	if !ok {
		return nil, domain.ErrTicketTypeNotFound
	}
	if r.s.countTicketsLocked(ticketType.ID) >= ticketType.TotalStock {
		return nil, domain.ErrInsufficientStock
	}

	commission := decimal.Zero
	if input.AmbassadorID != nil {
		ambassador, ok := r.s.ambassadors[*input.AmbassadorID]
		if !ok {
			return nil, domain.ErrAmbassadorNotFound
		}
		if !ambassador.Active {
			return nil, domain.ErrAmbassadorInactive
		}
		commission = domain.CommissionAmount(ticketType.Price, ambassador.CommissionRate)
	}

	now := time.Now()
	customer, ok := r.s.findCustomerByEmail(input.CustomerEmail)
	if ok {
		customer.Name = input.CustomerName
		if input.CustomerPhone != nil {
			customer.Phone = input.CustomerPhone
		}
	} else {
		customer = domain.Customer{
			ID:        uuid.NewString(),
			Name:      input.CustomerName,
			Email:     input.CustomerEmail,
			Phone:     input.CustomerPhone,
			CreatedAt: now,
		}
	}
	r.s.customers[customer.ID] = customer

	ticket := domain.Ticket{
		ID:           uuid.NewString(),
		TicketTypeID: ticketType.ID,
		Status:       domain.TicketStatusValid,
		CreatedAt:    now,
	}
	r.s.tickets[ticket.ID] = ticket

	sale := domain.Sale{
		ID:               uuid.NewString(),
		TicketID:         ticket.ID,
		CustomerID:       customer.ID,
		AmbassadorID:     input.AmbassadorID,
		PaymentMethod:    input.PaymentMethod,
		SalePrice:        ticketType.Price,
		CommissionAmount: commission,
		Notes:            input.Notes,
		CreatedAt:        now,
	}
	r.s.sales[sale.ID] = sale

	return &domain.SaleReceipt{
		Sale:       sale,
		Ticket:     ticket,
		TicketType: ticketType,
		Customer:   customer,
	}, nil
}

func (r *saleStore) GenerateTicket(_ context.Context, ticketTypeID string) (*domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ticketType, ok := r.s.ticketTypes[ticketTypeID]
	if !ok {
		return nil, domain.ErrTicketTypeNotFound
	}
	if r.s.countTicketsLocked(ticketType.ID) >= ticketType.TotalStock {
		return nil, domain.ErrInsufficientStock
	}

	ticket := domain.Ticket{
		ID:           uuid.NewString(),
		TicketTypeID: ticketType.ID,
		Status:       domain.TicketStatusValid,
		CreatedAt:    time.Now(),
	}
	r.s.tickets[ticket.ID] = ticket
	return &ticket, nil
}

func (r *saleStore) Report(_ context.Context) ([]domain.SaleRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records := make([]domain.SaleRecord, 0, len(r.s.sales))
	for _, sale := range r.s.sales {
		ticket := r.s.tickets[sale.TicketID]
		ticketType := r.s.ticketTypes[ticket.TicketTypeID]
		customer := r.s.customers[sale.CustomerID]

		rec := domain.SaleRecord{
			TicketID:         ticket.ID,
			TicketTypeName:   ticketType.Name,
			CustomerName:     customer.Name,
			CustomerEmail:    customer.Email,
			CustomerPhone:    customer.Phone,
			SalePrice:        sale.SalePrice,
			CommissionAmount: sale.CommissionAmount,
			PaymentMethod:    sale.PaymentMethod,
			TicketStatus:     ticket.Status,
			ScannedAt:        ticket.ScannedAt,
			CreatedAt:        sale.CreatedAt,
		}
		if sale.AmbassadorID != nil {
			if amb, ok := r.s.ambassadors[*sale.AmbassadorID]; ok {
				name := amb.Name
				rec.AmbassadorName = &name
			}
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *Store) countTicketsLocked(ticketTypeID string) int {
	count := 0
	for _, ticket := range s.tickets {
		if ticket.TicketTypeID == ticketTypeID {
			count++
		}
	}
	return count
}
