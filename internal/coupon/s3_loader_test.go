package coupon

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, filePath string) (Catalog, error)
}

func (m *mockLoader) Load(ctx context.Context, filePath string) (Catalog, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, filePath)
	}
	return nil, errors.New("not implemented")
}

func catalogWith(defs ...Definition) Catalog {
	c := NewMapCatalog(len(defs)).(*mapCatalog)
	for _, def := range defs {
		c.Add(def)
	}
	return c
}

func TestFallbackLoader_S3Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	s3Catalog := catalogWith(Definition{Code: "S3ONLY", Kind: KindPercentage})
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Catalog, error) {
			assert.Equal(t, "coupons/definitions.jsonl.gz", filePath, "S3 key should have prefix")
			return s3Catalog, nil
		},
	}

	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Catalog, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "coupons/", true, logger)

	catalog, err := fallback.Load(ctx, "definitions.jsonl.gz")
	assert.NoError(t, err)
	assert.NotNil(t, catalog)

	_, ok := catalog.Get("S3ONLY")
	assert.True(t, ok)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Catalog, error) {
			return nil, errors.New("S3 connection failed")
		},
	}

	localCatalog := catalogWith(Definition{Code: "LOCALONLY", Kind: KindPercentage})
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Catalog, error) {
			assert.Equal(t, "definitions.jsonl.gz", filePath, "local file path should not have prefix")
			return localCatalog, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "coupons/", true, logger)

	catalog, err := fallback.Load(ctx, "definitions.jsonl.gz")
	assert.NoError(t, err)
	assert.NotNil(t, catalog)

	_, ok := catalog.Get("LOCALONLY")
	assert.True(t, ok)
}

func TestFallbackLoader_S3Disabled(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Catalog, error) {
			t.Error("S3 loader should not be called when S3 is disabled")
			return nil, errors.New("should not be called")
		},
	}

	localCatalog := catalogWith(Definition{Code: "LOCALONLY", Kind: KindPercentage})
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Catalog, error) {
			return localCatalog, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "coupons/", false, logger)

	catalog, err := fallback.Load(ctx, "definitions.jsonl.gz")
	assert.NoError(t, err)
	assert.NotNil(t, catalog)
}

func TestFallbackLoader_NilS3Loader(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	localCatalog := catalogWith(Definition{Code: "LOCALONLY", Kind: KindPercentage})
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Catalog, error) {
			return localCatalog, nil
		},
	}

	fallback := NewFallbackLoader(nil, fileLoader, "coupons/", true, logger)

	catalog, err := fallback.Load(ctx, "definitions.jsonl.gz")
	assert.NoError(t, err)
	assert.NotNil(t, catalog)
}

func TestFallbackLoader_BothFail(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	failing := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Catalog, error) {
			return nil, errors.New("unavailable")
		},
	}

	fallback := NewFallbackLoader(failing, failing, "coupons/", true, logger)

	catalog, err := fallback.Load(ctx, "definitions.jsonl.gz")
	assert.Error(t, err)
	assert.Nil(t, catalog)
}
