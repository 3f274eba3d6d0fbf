package rider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"motoMatch/domain"
	"motoMatch/pkg/logger"
)

// PreferenceRepository contract interface (profile side of the graph store)
type PreferenceRepository interface {
	GetProfile(ctx context.Context, userID string) (domain.RiderProfile, error)
	SaveProfile(ctx context.Context, profile domain.RiderProfile) error
	GetAssignment(ctx context.Context, userID string) (domain.IdealAssignment, error)
}

type riderService struct {
	prefRepo PreferenceRepository
}

func NewRiderService(prefRepo PreferenceRepository) *riderService {
	return &riderService{prefRepo: prefRepo}
}

func (s *riderService) GetProfile(ctx context.Context, userID string) (domain.RiderProfile, error) {
	if userID == "" {
		return domain.RiderProfile{}, errors.New("invalid user id")
	}
	if err := ctx.Err(); err != nil {
		return domain.RiderProfile{}, fmt.Errorf("context error: %w", err)
	}

	profile, err := s.prefRepo.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrRiderNotFound) {
			logger.Error("failed to load rider profile", "user_id", userID, "error", err)
		}
		return domain.RiderProfile{}, err
	}

	return profile, nil
}

// SaveProfile validates and stores the declared preferences. Brand keys are
// lowercased before storage so the evaluator can match case-insensitively.
func (s *riderService) SaveProfile(ctx context.Context, profile domain.RiderProfile) (domain.RiderProfile, error) {
	if profile.UserID == "" {
		return domain.RiderProfile{}, errors.New("invalid user id")
	}
	if err := ctx.Err(); err != nil {
		return domain.RiderProfile{}, fmt.Errorf("context error: %w", err)
	}

	if err := validateProfile(&profile); err != nil {
		logger.Error("invalid rider profile", "user_id", profile.UserID, "error", err)
		return domain.RiderProfile{}, fmt.Errorf("%w: %v", domain.ErrInvalidProfile, err)
	}

	if err := s.prefRepo.SaveProfile(ctx, profile); err != nil {
		logger.Error("failed to save rider profile", "user_id", profile.UserID, "error", err)
		return domain.RiderProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}

	logger.Info("rider profile saved", "user_id", profile.UserID)

	return profile, nil
}

func (s *riderService) GetAssignment(ctx context.Context, userID string) (domain.IdealAssignment, error) {
	if userID == "" {
		return domain.IdealAssignment{}, errors.New("invalid user id")
	}
	if err := ctx.Err(); err != nil {
		return domain.IdealAssignment{}, fmt.Errorf("context error: %w", err)
	}

	return s.prefRepo.GetAssignment(ctx, userID)
}

func validateProfile(p *domain.RiderProfile) error {
	switch p.Experience {
	case "", domain.ExperienceNovice, domain.ExperienceIntermediate, domain.ExperienceExpert:
	default:
		return fmt.Errorf("unknown experience level %q", p.Experience)
	}

	switch p.IntendedUse {
	case "", domain.UseUrban, domain.UseRoad, domain.UseOffroad:
	default:
		return fmt.Errorf("unknown intended use %q", p.IntendedUse)
	}

	if p.Budget != nil && *p.Budget < 0 {
		return errors.New("budget cannot be negative")
	}

	if err := validateRange("power", p.PowerMin, p.PowerMax); err != nil {
		return err
	}
	if err := validateRange("displacement", p.DisplacementMin, p.DisplacementMax); err != nil {
		return err
	}
	if err := validateRange("weight", p.WeightMin, p.WeightMax); err != nil {
		return err
	}

	if len(p.BrandWeights) > 0 {
		normalized := make(map[string]float64, len(p.BrandWeights))
		for brand, weight := range p.BrandWeights {
			if weight < 0 || weight > 1 {
				return fmt.Errorf("brand weight for %q must be in [0,1]", brand)
			}
			normalized[strings.ToLower(strings.TrimSpace(brand))] = weight
		}
		p.BrandWeights = normalized
	}

	return nil
}

func validateRange(field string, min, max *float64) error {
	if min != nil && *min < 0 {
		return fmt.Errorf("%s_min cannot be negative", field)
	}
	if max != nil && *max < 0 {
		return fmt.Errorf("%s_max cannot be negative", field)
	}
	if min != nil && max != nil && *min > *max {
		return fmt.Errorf("%s_min cannot exceed %s_max", field, field)
	}
	return nil
}
