package coupon

import (
	"context"
	"fmt"
	"sync"

	"kart-pricing/internal/model"
	"kart-pricing/internal/pricing"

	"github.com/rs/zerolog"
)

// store implements Store over catalogs loaded at initialisation time.
type store struct {
	catalogs []Catalog
	logger   zerolog.Logger
	// No mutex needed - catalogs are read-only after initialization
}

// StoreConfig holds configuration for the coupon definition store.
type StoreConfig struct {
	// FilePaths is the list of coupon definition files to load, in order.
	// When the same code appears in several files, the last file wins.
	FilePaths []string
}

// DefaultStoreConfig returns the default store configuration.
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		FilePaths: []string{
			"data/coupons/definitions.jsonl.gz",
		},
	}
}

// NewStore creates a new coupon definition store. All definition files are
// loaded concurrently at initialisation time; any failed file fails the
// whole store so a partially loaded catalog never serves lookups.
func NewStore(ctx context.Context, config *StoreConfig, loader Loader, logger zerolog.Logger) (Store, error) {
	if config == nil {
		config = DefaultStoreConfig()
	}

	logger = logger.With().Str("component", "coupon-store").Logger()

	logger.Info().
		Int("file_count", len(config.FilePaths)).
		Msg("initialising coupon store")

	s := &store{
		catalogs: make([]Catalog, 0, len(config.FilePaths)),
		logger:   logger,
	}

	type loadResult struct {
		index   int
		catalog Catalog
		err     error
	}

	resultChan := make(chan loadResult, len(config.FilePaths))
	var wg sync.WaitGroup

	for i, filePath := range config.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			catalog, err := loader.Load(ctx, path)
			resultChan <- loadResult{
				index:   index,
				catalog: catalog,
				err:     err,
			}
		}(i, filePath)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in file order so the last-file-wins rule holds.
	results := make([]loadResult, len(config.FilePaths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", config.FilePaths[i]).
				Msg("failed to load coupon definition file")
			return nil, fmt.Errorf("failed to load coupon file %s: %w", config.FilePaths[i], result.err)
		}
		s.catalogs = append(s.catalogs, result.catalog)
		logger.Info().
			Str("file", config.FilePaths[i]).
			Int("size", result.catalog.Size()).
			Msg("coupon definition file loaded")
	}

	totalCoupons := 0
	for _, catalog := range s.catalogs {
		totalCoupons += catalog.Size()
	}

	logger.Info().
		Int("total_coupons", totalCoupons).
		Msg("coupon store initialised successfully")

	return s, nil
}

// Resolve maps each code to its definition and converts it into a validated
// pricing coupon. The first unknown code aborts the whole resolution.
func (s *store) Resolve(ctx context.Context, codes []string) ([]pricing.Coupon, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	coupons := make([]pricing.Coupon, 0, len(codes))
	for _, code := range codes {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		def, ok := s.lookup(code)
		if !ok {
			s.logger.Debug().
				Str("coupon_code", code).
				Msg("coupon code not found in any catalog")
			return nil, model.ErrUnknownCoupon
		}

		c, err := def.ToCoupon()
		if err != nil {
			// Definitions are validated at load time, so this indicates a
			// catalog implementation handed back something it never loaded.
			s.logger.Error().
				Err(err).
				Str("coupon_code", code).
				Msg("stored coupon definition failed validation")
			return nil, model.ErrInvalidCoupon
		}
		coupons = append(coupons, c)
	}

	s.logger.Debug().
		Int("resolved", len(coupons)).
		Msg("coupon codes resolved")

	return coupons, nil
}

// lookup scans catalogs from the last loaded file backwards so later files
// shadow earlier ones.
func (s *store) lookup(code string) (Definition, bool) {
	for i := len(s.catalogs) - 1; i >= 0; i-- {
		if def, ok := s.catalogs[i].Get(code); ok {
			return def, true
		}
	}
	return Definition{}, false
}

// Close releases resources held by the store.
func (s *store) Close() error {
	s.catalogs = nil

	s.logger.Info().Msg("coupon store closed")

	return nil
}
