package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"motoMatch/domain"
)

type MockCatalogSource struct {
	FindAllFunc func(ctx context.Context) ([]domain.Moto, error)
}

func (m *MockCatalogSource) FindAll(ctx context.Context) ([]domain.Moto, error) {
	return m.FindAllFunc(ctx)
}

// unreachableClient dials a port nothing listens on, so every command fails.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestFindAll_FallsThroughWhenRedisUnreachable(t *testing.T) {
	want := []domain.Moto{
		{ID: "m1", Brand: "Honda", Model: "CB500F", Style: domain.StyleNaked},
		{ID: "m2", Brand: "Yamaha", Model: "Tracer 7", Style: domain.StyleTouring},
	}
	source := &MockCatalogSource{
		FindAllFunc: func(ctx context.Context) ([]domain.Moto, error) {
			return want, nil
		},
	}

	cache := NewCatalogCache(unreachableClient(), source, time.Minute)

	got, err := cache.FindAll(context.Background())
	if err != nil {
		t.Fatalf("broken redis must not surface an error, got %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d motos from source, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("moto %d: expected %s, got %s", i, want[i].ID, got[i].ID)
		}
	}
}

func TestFindAll_SourceErrorStillPropagates(t *testing.T) {
	sourceErr := errors.New("connection refused")
	source := &MockCatalogSource{
		FindAllFunc: func(ctx context.Context) ([]domain.Moto, error) {
			return nil, sourceErr
		},
	}

	cache := NewCatalogCache(unreachableClient(), source, time.Minute)

	if _, err := cache.FindAll(context.Background()); !errors.Is(err, sourceErr) {
		t.Errorf("expected source error to propagate, got %v", err)
	}
}

func TestInvalidate_SurfacesRedisError(t *testing.T) {
	source := &MockCatalogSource{
		FindAllFunc: func(ctx context.Context) ([]domain.Moto, error) {
			return nil, nil
		},
	}

	cache := NewCatalogCache(unreachableClient(), source, time.Minute)

	if err := cache.Invalidate(context.Background()); err == nil {
		t.Error("expected an error invalidating through an unreachable redis")
	}
}
