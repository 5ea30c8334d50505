package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/cartsim/internal/catalog/domain"
)

var (
	ErrLoad             = errors.New("catalog load failed")
	ErrNoSources        = errors.New("no catalog sources")
	ErrDuplicateProduct = errors.New("duplicate product id")
)

const maxConcurrentFetches = 4

// Store holds the products available for purchase. It is filled once by Load
// and read concurrently afterwards.
type Store struct {
	log *zap.Logger

	mu       sync.RWMutex
	products []domain.Product
	index    map[int64]int
	loaded   bool
}

func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		log:   log.Named("catalog"),
		index: make(map[int64]int),
	}
}

// Load fetches every source concurrently and merges them in argument order.
// Any failure leaves the catalog empty and returns an error wrapping ErrLoad.
func (s *Store) Load(ctx context.Context, sources ...Source) error {
	products, err := s.fetchAll(ctx, sources)
	if err != nil {
		return s.fail(err)
	}

	index := make(map[int64]int, len(products))
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return s.fail(err)
		}
		if _, dup := index[p.ID]; dup {
			return s.fail(fmt.Errorf("%w: %d", ErrDuplicateProduct, p.ID))
		}
		index[p.ID] = i
	}

	s.mu.Lock()
	s.products = products
	s.index = index
	s.loaded = true
	s.mu.Unlock()

	s.log.Info("catalog loaded", zap.Int("products", len(products)), zap.Int("sources", len(sources)))
	return nil
}

func (s *Store) fetchAll(ctx context.Context, sources []Source) ([]domain.Product, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	results := make([][]domain.Product, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for idx := range sources {
		idx := idx
		g.Go(func() error {
			src := sources[idx]
			products, err := src.Fetch(ctx)
			if err != nil {
				return fmt.Errorf("source %s: %w", src.Name(), err)
			}
			results[idx] = products
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []domain.Product
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}

// fail empties the catalog and reports err as a load failure.
func (s *Store) fail(err error) error {
	s.reset()
	s.log.Warn("catalog unavailable", zap.Error(err))
	return fmt.Errorf("%w: %w", ErrLoad, err)
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.index = make(map[int64]int)
	s.loaded = false
}

func (s *Store) FindByID(id int64) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

// List returns the products in catalog order.
func (s *Store) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
