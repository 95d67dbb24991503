// Package shop owns the in-memory collections for a running process and
// keeps them in step with the remote store.
package shop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/domain/models"
	"github.com/mamadbah2/farmshop/internal/repository/local"
	"github.com/mamadbah2/farmshop/internal/service/syncing"
)

// Source tells where a collection was loaded from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
	SourceSeed   Source = "seed"
)

// State is a consistent copy of every collection.
type State struct {
	Stock        []models.StockItem   `json:"stock"`
	Workers      []models.Worker      `json:"workers"`
	Transactions []models.Transaction `json:"transactions"`
	Stocktakes   []models.Stocktake   `json:"stocktakes"`
	Receipts     []models.Receipt     `json:"receipts"`
}

func (st State) clone() State {
	return State{
		Stock:        append([]models.StockItem(nil), st.Stock...),
		Workers:      append([]models.Worker(nil), st.Workers...),
		Transactions: append([]models.Transaction(nil), st.Transactions...),
		Stocktakes:   append([]models.Stocktake(nil), st.Stocktakes...),
		Receipts:     append([]models.Receipt(nil), st.Receipts...),
	}
}

// LoadReport maps every collection to the source it was loaded from.
type LoadReport map[models.Collection]Source

// Options tunes the business rules of a Service.
type Options struct {
	// Location is the shop's timezone; sale dates use its calendar day.
	Location *time.Location
	// DecrementOnSale takes sold quantities off stock at checkout.
	DecrementOnSale bool
	Now             func() time.Time
}

// Service is the single owner of the shop collections. Every mutation is
// serialized and saved as a whole collection.
type Service struct {
	mu       sync.Mutex
	state    State
	sources  LoadReport
	// held keeps rows that could not be decoded; they go back out with
	// every save of their collection.
	held     map[models.Collection][]models.Row
	client   *syncing.Client
	local    local.Repository
	codec    syncing.Codec
	sessions *SessionManager

	loc             *time.Location
	decrementOnSale bool
	now             func() time.Time
	logger          *zap.Logger
}

// NewService wires a shop service. snapshots may be nil, in which case no
// local copy is kept.
func NewService(client *syncing.Client, snapshots local.Repository, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		client:          client,
		local:           snapshots,
		codec:           syncing.NewCodec(opts.Location, logger.Named("codec")),
		sessions:        NewSessionManager(),
		sources:         LoadReport{},
		held:            map[models.Collection][]models.Row{},
		loc:             opts.Location,
		decrementOnSale: opts.DecrementOnSale,
		now:             opts.Now,
		logger:          logger,
	}
}

// Load replaces every collection with the freshest copy available: the remote
// store first, then the local snapshot, then the built-in seed. It never fails;
// the report tells which source fed each collection.
func (s *Service) Load(ctx context.Context) LoadReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := LoadReport{}
	held := map[models.Collection][]models.Row{}
	var src Source

	s.state.Stock, held[models.CollectionStock], src = loadCollection(ctx, s, models.CollectionStock, s.codec.DecodeStock, syncing.SeedStock)
	report[models.CollectionStock] = src
	s.state.Workers, held[models.CollectionWorkers], src = loadCollection(ctx, s, models.CollectionWorkers, s.codec.DecodeWorkers, syncing.SeedWorkers)
	report[models.CollectionWorkers] = src
	s.state.Transactions, held[models.CollectionTransactions], src = loadCollection(ctx, s, models.CollectionTransactions, s.codec.DecodeTransactions, syncing.SeedTransactions)
	report[models.CollectionTransactions] = src
	s.state.Stocktakes, held[models.CollectionStocktakes], src = loadCollection(ctx, s, models.CollectionStocktakes, s.codec.DecodeStocktakes, syncing.SeedStocktakes)
	report[models.CollectionStocktakes] = src
	s.state.Receipts, held[models.CollectionReceipts], src = loadCollection(ctx, s, models.CollectionReceipts, s.codec.DecodeReceipts, syncing.SeedReceipts)
	report[models.CollectionReceipts] = src

	s.sources = report
	s.held = held
	s.logger.Info("collections loaded",
		zap.Any("sources", report),
		zap.Int("stock", len(s.state.Stock)),
		zap.Int("workers", len(s.state.Workers)),
		zap.Int("transactions", len(s.state.Transactions)),
	)
	return report
}

func loadCollection[T any](ctx context.Context, s *Service, collection models.Collection, decode func([]models.Row) ([]T, []models.Row, error), seed func() []T) ([]T, []models.Row, Source) {
	log := s.logger.With(zap.String("collection", string(collection)))

	rows, err := s.client.Load(ctx, collection)
	if err == nil {
		records, unreadable, decodeErr := decode(rows)
		if decodeErr == nil {
			if len(unreadable) > 0 {
				log.Warn("unreadable rows kept as-is", zap.Int("rows", len(unreadable)))
			}
			s.saveSnapshot(ctx, collection, rows)
			return records, unreadable, SourceRemote
		}
		err = decodeErr
	}
	log.Warn("remote collection unavailable", zap.String("kind", string(syncing.KindOf(err))), zap.Error(err))

	if s.local != nil {
		rows, ok, localErr := s.local.LoadSnapshot(ctx, collection)
		switch {
		case localErr != nil:
			log.Warn("local snapshot unreadable", zap.Error(localErr))
		case ok:
			records, unreadable, decodeErr := decode(rows)
			if decodeErr == nil {
				return records, unreadable, SourceLocal
			}
			log.Warn("local snapshot undecodable", zap.Error(decodeErr))
		}
	}

	log.Info("using seed data")
	return seed(), nil, SourceSeed
}

// Sources returns the load report of the last Load.
func (s *Service) Sources() LoadReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(LoadReport, len(s.sources))
	for k, v := range s.sources {
		out[k] = v
	}
	return out
}

// Snapshot returns a copy of every collection.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Today is the current calendar day in the shop's timezone.
func (s *Service) Today() time.Time {
	return models.CivilDate(s.now().In(s.loc))
}

// Now is the current time in the shop's timezone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) saveSnapshot(ctx context.Context, collection models.Collection, rows []models.Row) {
	if s.local == nil {
		return
	}
	if err := s.local.SaveSnapshot(ctx, collection, rows); err != nil {
		s.logger.Warn("local snapshot save failed", zap.String("collection", string(collection)), zap.Error(err))
	}
}

// persist writes rows, followed by the held rows of the collection, to the
// local snapshot and then replaces the remote collection. The in-memory change
// has already been made and stays even when the remote write fails.
func (s *Service) persist(ctx context.Context, collection models.Collection, rows []models.Row) error {
	rows = append(rows, s.held[collection]...)
	s.saveSnapshot(ctx, collection, rows)
	if err := s.client.Save(ctx, collection, rows); err != nil {
		return fmt.Errorf("%w: %w", ErrRemoteSave, err)
	}
	return nil
}

func (s *Service) persistStock(ctx context.Context) error {
	return s.persist(ctx, models.CollectionStock, s.codec.EncodeStock(s.state.Stock))
}

func (s *Service) persistWorkers(ctx context.Context) error {
	return s.persist(ctx, models.CollectionWorkers, s.codec.EncodeWorkers(s.state.Workers))
}

func (s *Service) persistTransactions(ctx context.Context) error {
	return s.persist(ctx, models.CollectionTransactions, s.codec.EncodeTransactions(s.state.Transactions))
}

func (s *Service) persistStocktakes(ctx context.Context) error {
	return s.persist(ctx, models.CollectionStocktakes, s.codec.EncodeStocktakes(s.state.Stocktakes))
}

func (s *Service) persistReceipts(ctx context.Context) error {
	return s.persist(ctx, models.CollectionReceipts, s.codec.EncodeReceipts(s.state.Receipts))
}

// nextID is one past the highest id among records and the held rows of
// collection.
func nextID[T any](s *Service, collection models.Collection, records []T, idOf func(T) int) int {
	maxID := 0
	for _, r := range records {
		maxID = max(maxID, idOf(r))
	}
	for _, row := range s.held[collection] {
		maxID = max(maxID, syncing.RowID(row))
	}
	return maxID + 1
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
