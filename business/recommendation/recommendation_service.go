package recommendation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"motoMatch/business/evaluation"
	"motoMatch/domain"
	"motoMatch/pkg/logger"
	"motoMatch/pkg/metrics"
)

// ---- Repository interfaces ----

// CatalogRepository is the read side of the moto catalog. Ordering within
// one call is assumed stable; nothing more.
type CatalogRepository interface {
	FindAll(ctx context.Context) ([]domain.Moto, error)
}

// PreferenceRepository holds rider profiles and the single IDEAL
// relationship per rider. SetAssignment must supersede any prior
// assignment atomically.
type PreferenceRepository interface {
	GetProfile(ctx context.Context, userID string) (domain.RiderProfile, error)
	GetAssignment(ctx context.Context, userID string) (domain.IdealAssignment, error)
	SetAssignment(ctx context.Context, userID string, assignment domain.IdealAssignment) error
}

// ---- Usecase / Service ----

type RecommendationService struct {
	catalogRepo CatalogRepository
	prefRepo    PreferenceRepository
	locks       *userLocks
	timeout     time.Duration
}

func NewRecommendationService(
	catalogRepo CatalogRepository,
	prefRepo PreferenceRepository,
	timeout time.Duration,
) *RecommendationService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RecommendationService{
		catalogRepo: catalogRepo,
		prefRepo:    prefRepo,
		locks:       newUserLocks(),
		timeout:     timeout,
	}
}

// ComputeIdeal evaluates the whole catalog against the rider's profile,
// returns the topN motos ranked by score and persists the top result as the
// rider's ideal assignment.
//
// An unknown rider yields an empty ranking and no error. A catalog outage
// yields domain.ErrDataUnavailable and nothing is written. A failed write
// yields domain.ErrPersistenceError together with the computed ranking, so
// the caller can still display it while being told it was not saved.
func (s *RecommendationService) ComputeIdeal(ctx context.Context, userID string, topN int) ([]domain.RankedMoto, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if topN <= 0 {
		topN = 1
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	profile, err := s.prefRepo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRiderNotFound) {
			logger.Debug("ideal requested for unknown rider", "user_id", userID)
			return []domain.RankedMoto{}, nil
		}
		return nil, fmt.Errorf("%w: load profile: %v", domain.ErrDataUnavailable, err)
	}

	// A profile with no declared criteria would score every moto 0 and
	// persist an arbitrary catalog entry. Skip ranking entirely.
	if !profile.HasCriteria() {
		logger.Debug("rider declared no criteria, skipping ranking", "user_id", userID)
		return []domain.RankedMoto{}, nil
	}

	motos, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	if len(motos) == 0 {
		return []domain.RankedMoto{}, nil
	}

	ranked := s.rank(profile, motos, topN)
	metrics.IdealComputationsTotal.Inc()

	if len(ranked) == 0 {
		return ranked, nil
	}

	top := ranked[0]
	assignment := domain.IdealAssignment{
		MotoID:    top.MotoID,
		Score:     top.Score,
		Reasons:   top.Reasons,
		CreatedAt: time.Now().UTC(),
	}

	// Serialize the supersede-and-write per rider so a slower concurrent
	// run cannot overwrite a newer assignment.
	mu := s.locks.forUser(userID)
	mu.Lock()
	err = s.prefRepo.SetAssignment(ctx, userID, assignment)
	mu.Unlock()

	if err != nil {
		metrics.IdealPersistFailuresTotal.Inc()
		logger.Error("failed to persist ideal assignment", "user_id", userID, "error", err)
		return ranked, fmt.Errorf("%w: %v", domain.ErrPersistenceError, err)
	}

	logger.Info("ideal assignment updated",
		"user_id", userID,
		"moto_id", top.MotoID,
		"score", top.Score,
		"candidates", len(motos),
	)

	return ranked, nil
}

// rank evaluates every catalog record and keeps the topN by score. The sort
// is stable: among equal scores the record encountered first in the catalog
// wins, which keeps selection reproducible.
func (s *RecommendationService) rank(profile domain.RiderProfile, motos []domain.Moto, topN int) []domain.RankedMoto {
	ranked := make([]domain.RankedMoto, 0, len(motos))
	for _, m := range motos {
		res := evaluation.Evaluate(profile, m)
		ranked = append(ranked, domain.RankedMoto{
			MotoID:  m.ID,
			Score:   res.Score,
			Reasons: res.Reasons,
		})
	}
	metrics.EvaluationsTotal.Add(float64(len(motos)))

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// GetIdeal returns the rider's persisted ideal assignment for display.
func (s *RecommendationService) GetIdeal(ctx context.Context, userID string) (domain.IdealAssignment, error) {
	if err := ctx.Err(); err != nil {
		return domain.IdealAssignment{}, fmt.Errorf("context error: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	assignment, err := s.prefRepo.GetAssignment(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRiderNotFound) || errors.Is(err, domain.ErrNoAssignment) {
			return domain.IdealAssignment{}, err
		}
		return domain.IdealAssignment{}, fmt.Errorf("%w: load assignment: %v", domain.ErrDataUnavailable, err)
	}

	return assignment, nil
}
