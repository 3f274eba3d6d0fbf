package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"motoMatch/domain"
	"motoMatch/pkg/logger"
)

// MotoRepository contract interface
type MotoRepository interface {
	Create(ctx context.Context, moto *domain.Moto) error
	FindByID(ctx context.Context, id string) (domain.Moto, error)
	FindAll(ctx context.Context) ([]domain.Moto, error)
	Update(ctx context.Context, moto *domain.Moto) error
	Delete(ctx context.Context, id string) error
}

// CacheInvalidator drops any cached catalog listing after a write. A nil
// invalidator is allowed (cache disabled).
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type catalogService struct {
	motoRepo MotoRepository
	cache    CacheInvalidator
}

func NewCatalogService(motoRepo MotoRepository, cache CacheInvalidator) *catalogService {
	return &catalogService{
		motoRepo: motoRepo,
		cache:    cache,
	}
}

func (s *catalogService) GetAllMotos(ctx context.Context) ([]domain.Moto, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	motos, err := s.motoRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all motos", "error", err)
		return nil, err
	}

	return motos, nil
}

func (s *catalogService) GetMotoByID(ctx context.Context, id string) (*domain.Moto, error) {
	if id == "" {
		return nil, errors.New("invalid moto id")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	moto, err := s.motoRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find moto by id", "moto_id", id, "error", err)
		return nil, err
	}

	return &moto, nil
}

func (s *catalogService) CreateMoto(ctx context.Context, moto *domain.Moto) (*domain.Moto, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateMoto(moto); err != nil {
		logger.Error("invalid moto data", "error", err)
		return nil, err
	}

	if moto.ID == "" {
		moto.ID = uuid.NewString()
	}
	moto.Style = domain.ParseMotoStyle(string(moto.Style))

	if err := s.motoRepo.Create(ctx, moto); err != nil {
		logger.Error("failed to create moto", "error", err)
		return nil, fmt.Errorf("failed to create moto: %w", err)
	}

	s.invalidateCache(ctx)
	logger.Info("moto created", "moto_id", moto.ID, "brand", moto.Brand, "model", moto.Model)

	return moto, nil
}

func (s *catalogService) UpdateMoto(ctx context.Context, moto *domain.Moto) (*domain.Moto, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if moto.ID == "" {
		return nil, errors.New("moto id is required")
	}
	if err := validateMoto(moto); err != nil {
		return nil, err
	}

	if _, err := s.motoRepo.FindByID(ctx, moto.ID); err != nil {
		return nil, err
	}

	moto.Style = domain.ParseMotoStyle(string(moto.Style))
	if err := s.motoRepo.Update(ctx, moto); err != nil {
		logger.Error("failed to update moto", "moto_id", moto.ID, "error", err)
		return nil, fmt.Errorf("failed to update moto: %w", err)
	}

	updated, err := s.motoRepo.FindByID(ctx, moto.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated moto: %w", err)
	}

	s.invalidateCache(ctx)
	logger.Info("moto updated", "moto_id", moto.ID)

	return &updated, nil
}

func (s *catalogService) DeleteMoto(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("invalid moto id")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.motoRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.motoRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete moto", "moto_id", id, "error", err)
		return fmt.Errorf("failed to delete moto: %w", err)
	}

	s.invalidateCache(ctx)
	logger.Info("moto deleted", "moto_id", id)

	return nil
}

func validateMoto(moto *domain.Moto) error {
	if moto.Brand == "" {
		return errors.New("brand is required")
	}
	if moto.Model == "" {
		return errors.New("model is required")
	}
	if moto.Power != nil && *moto.Power < 0 {
		return errors.New("power cannot be negative")
	}
	if moto.Price != nil && *moto.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if moto.Displacement != nil && *moto.Displacement < 0 {
		return errors.New("displacement cannot be negative")
	}
	if moto.Weight != nil && *moto.Weight < 0 {
		return errors.New("weight cannot be negative")
	}
	return nil
}

// cache invalidation is best-effort: a stale listing expires with the TTL
func (s *catalogService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn("failed to invalidate catalog cache", "error", err)
	}
}
