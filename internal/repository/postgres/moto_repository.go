package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"motoMatch/domain"
)

type MotoRepository struct {
	DB *gorm.DB
}

func NewMotoRepository(db *gorm.DB) *MotoRepository {
	return &MotoRepository{
		DB: db,
	}
}

func (r *MotoRepository) Create(ctx context.Context, moto *domain.Moto) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(moto).Error; err != nil {
		return fmt.Errorf("failed to create moto: %w", err)
	}

	return nil
}

func (r *MotoRepository) FindByID(ctx context.Context, id string) (domain.Moto, error) {
	if err := ctx.Err(); err != nil {
		return domain.Moto{}, fmt.Errorf("context error: %w", err)
	}

	var moto domain.Moto

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&moto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Moto{}, domain.ErrMotoNotFound
		}
		return domain.Moto{}, fmt.Errorf("failed to find moto: %w", err)
	}

	return moto, nil
}

func (r *MotoRepository) FindAll(ctx context.Context) ([]domain.Moto, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var motos []domain.Moto
	// created_at keeps catalog iteration order stable across calls, which
	// the selector's tie-break relies on
	err := r.DB.WithContext(ctx).Order("created_at, id").Find(&motos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find motos: %w", err)
	}

	return motos, nil
}

func (r *MotoRepository) Update(ctx context.Context, moto *domain.Moto) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"brand":        moto.Brand,
		"model":        moto.Model,
		"style":        moto.Style,
		"power":        moto.Power,
		"price":        moto.Price,
		"displacement": moto.Displacement,
		"weight":       moto.Weight,
		"year":         moto.Year,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Moto{}).Where("id = ?", moto.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update moto: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMotoNotFound
	}

	return nil
}

func (r *MotoRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Moto{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete moto: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMotoNotFound
	}

	return nil
}
