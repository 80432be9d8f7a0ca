package coupon

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped coupon definition files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based coupon definition loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coupon-loader").Logger(),
	}
}

// Load reads a gzipped coupon definition file and returns a Catalog.
// The file is expected to contain one JSON definition per line; a malformed
// definition fails the whole load so a broken file never half-applies.
func (l *fileLoader) Load(ctx context.Context, filePath string) (Catalog, error) {
	l.logger.Info().Str("file", filePath).Msg("loading coupon definition file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open coupon file")
		return nil, fmt.Errorf("failed to open coupon file %s: %w", filePath, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
	}
	defer gzipReader.Close()

	catalog, err := parseDefinitions(ctx, gzipReader, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to parse coupon file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("coupons_loaded", catalog.Size()).
		Msg("coupon definition file loaded successfully")

	return catalog, nil
}

// parseDefinitions reads JSON-lines coupon definitions from r. Definitions
// are validated through the pricing constructors as they are read.
func parseDefinitions(ctx context.Context, r io.Reader, source string) (Catalog, error) {
	catalog := NewMapCatalog(1024).(*mapCatalog)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		// Check context cancellation periodically
		if lineNo%10_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var def Definition
		if err := json.Unmarshal([]byte(line), &def); err != nil {
			return nil, fmt.Errorf("malformed coupon definition at %s:%d: %w", source, lineNo, err)
		}
		if def.Code == "" {
			return nil, fmt.Errorf("coupon definition at %s:%d has no code", source, lineNo)
		}
		if _, err := def.ToCoupon(); err != nil {
			return nil, fmt.Errorf("invalid coupon definition at %s:%d: %w", source, lineNo, err)
		}

		// Later lines win on duplicate codes.
		catalog.Add(def)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading coupon file %s: %w", source, err)
	}

	return catalog, nil
}
