package donordata

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one immutable load of the pipeline: fetch, merge, derive.
// Handlers share it read-only; a reload produces a whole new snapshot.
type Snapshot struct {
	ID           uuid.UUID
	LoadedAt     time.Time
	PledgeCount  int
	PaymentCount int
	Table        Table
}

// Service owns the current snapshot and knows how to rebuild it from the two
// remote datasets. There is a single writer (Refresh); readers get whatever
// snapshot was current when they asked.
type Service struct {
	client      *http.Client
	pledgesURL  string
	paymentsURL string
	opts        DeriveOptions

	current atomic.Pointer[Snapshot]
}

// NewService wires a pipeline service. client may be nil, in which case
// http.DefaultClient is used for the dataset fetches.
func NewService(client *http.Client, pledgesURL, paymentsURL string, opts DeriveOptions) *Service {
	return &Service{
		client:      client,
		pledgesURL:  pledgesURL,
		paymentsURL: paymentsURL,
		opts:        opts,
	}
}

// Snapshot returns the current snapshot, or nil when no load has succeeded
// yet.
func (s *Service) Snapshot() *Snapshot {
	return s.current.Load()
}

// Refresh runs the whole pipeline and atomically swaps in the result. On any
// failure the previous snapshot stays current, so a bad reload never leaves
// the dashboard half-loaded.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	pledges, payments, err := Load(ctx, s.client, s.pledgesURL, s.paymentsURL)
	if err != nil {
		return nil, err
	}

	table := Derive(Merge(pledges, payments), s.opts)
	snap := &Snapshot{
		ID:           uuid.New(),
		LoadedAt:     time.Now().UTC(),
		PledgeCount:  len(pledges),
		PaymentCount: len(payments),
		Table:        table,
	}
	s.current.Store(snap)
	return snap, nil
}

// Swap replaces the current snapshot directly. Tests use it to seed a
// service without touching the network.
func (s *Service) Swap(snap *Snapshot) {
	s.current.Store(snap)
}
