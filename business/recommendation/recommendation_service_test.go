package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"motoMatch/domain"
)

func f(v float64) *float64 { return &v }

// MockCatalogRepository
type MockCatalogRepository struct {
	FindAllFunc func(ctx context.Context) ([]domain.Moto, error)
}

func (m *MockCatalogRepository) FindAll(ctx context.Context) ([]domain.Moto, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

// MockPreferenceRepository keeps assignment state so supersede semantics
// can be asserted.
type MockPreferenceRepository struct {
	GetProfileFunc    func(ctx context.Context, userID string) (domain.RiderProfile, error)
	SetAssignmentFunc func(ctx context.Context, userID string, a domain.IdealAssignment) error

	assignments map[string]domain.IdealAssignment
	setCalls    int
}

func (m *MockPreferenceRepository) GetProfile(ctx context.Context, userID string) (domain.RiderProfile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return domain.RiderProfile{UserID: userID}, nil
}

func (m *MockPreferenceRepository) GetAssignment(ctx context.Context, userID string) (domain.IdealAssignment, error) {
	a, ok := m.assignments[userID]
	if !ok {
		return domain.IdealAssignment{}, domain.ErrNoAssignment
	}
	return a, nil
}

func (m *MockPreferenceRepository) SetAssignment(ctx context.Context, userID string, a domain.IdealAssignment) error {
	m.setCalls++
	if m.SetAssignmentFunc != nil {
		return m.SetAssignmentFunc(ctx, userID, a)
	}
	if m.assignments == nil {
		m.assignments = make(map[string]domain.IdealAssignment)
	}
	m.assignments[userID] = a
	return nil
}

func noviceProfile(userID string) domain.RiderProfile {
	return domain.RiderProfile{
		UserID:      userID,
		Experience:  domain.ExperienceNovice,
		IntendedUse: domain.UseUrban,
		Budget:      f(6000),
	}
}

func testCatalog() []domain.Moto {
	return []domain.Moto{
		{ID: "sportbike", Brand: "Kawasaki", Style: domain.StyleSport, Power: f(140), Price: f(12000)},
		{ID: "commuter", Brand: "Honda", Style: domain.StyleNaked, Power: f(35), Price: f(5200)},
		{ID: "maxi-scooter", Brand: "Yamaha", Style: domain.StyleScooter, Power: f(45), Price: f(5800)},
	}
}

func TestComputeIdeal_SelectsAndPersistsTopResult(t *testing.T) {
	catalog := &MockCatalogRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Moto, error) {
			return testCatalog(), nil
		},
	}
	prefs := &MockPreferenceRepository{
		GetProfileFunc: func(ctx context.Context, userID string) (domain.RiderProfile, error) {
			return noviceProfile(userID), nil
		},
	}

	svc := NewRecommendationService(catalog, prefs, time.Second)

	ranked, err := svc.ComputeIdeal(context.Background(), "rider-1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("expected 1 result, got %d", len(ranked))
	}
	// commuter and maxi-scooter both score 3+3+2=8 -> clamped 5;
	// commuter appears first in the catalog so it must win the tie.
	if ranked[0].MotoID != "commuter" {
		t.Errorf("expected commuter as top result, got %s", ranked[0].MotoID)
	}

	saved, err := prefs.GetAssignment(context.Background(), "rider-1")
	if err != nil {
		t.Fatalf("expected persisted assignment: %v", err)
	}
	if saved.MotoID != "commuter" || saved.Score != ranked[0].Score {
		t.Errorf("persisted assignment does not match ranking: %+v", saved)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestComputeIdeal_StableTieBreakPreservesCatalogOrder(t *testing.T) {
	// two identical motos: the first-encountered one must rank first
	catalog := &MockCatalogRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Moto, error) {
			return []domain.Moto{
				{ID: "first", Style: domain.StyleNaked, Power: f(30), Price: f(5000)},
				{ID: "second", Style: domain.StyleNaked, Power: f(30), Price: f(5000)},
			}, nil
		},
	}
	prefs := &MockPreferenceRepository{
		GetProfileFunc: func(ctx context.Context, userID string) (domain.RiderProfile, error) {
			return noviceProfile(userID), nil
		},
	}

	svc := NewRecommendationService(catalog, prefs, time.Second)

	ranked, err := svc.ComputeIdeal(context.Background(), "rider-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 results, got %d", len(ranked))
	}
	if ranked[0].MotoID != "first" || ranked[1].MotoID != "second" {
		t.Errorf("tie-break broke catalog order: %s, %s", ranked[0].MotoID, ranked[1].MotoID)
	}
}

func TestComputeIdeal_UnknownRiderIsEmptyNotError(t *testing.T) {
	catalog := &MockCatalogRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Moto, error) {
			t.Error("catalog must not be read for an unknown rider")
			return nil, nil
		},
	}
	prefs := &MockPreferenceRepository{
		GetProfileFunc: func(ctx context.Context, userID string) (domain.RiderProfile, error) {
			return domain.RiderProfile{}, domain.ErrRiderNotFound
		},
	}

	svc := NewRecommendationService(catalog, prefs, time.Second)

	ranked, err := svc.ComputeIdeal(context.Background(), "ghost", 1)
	if err != nil {
		t.Fatalf("unknown rider must not be an error, got %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("expected empty ranking, got %v", ranked)
	}
	if prefs.setCalls != 0 {
		t.Error("nothing must be persisted for an unknown rider")
	}
}

func TestComputeIdeal_CatalogOutage(t *testing.T) {
	catalog := &MockCatalogRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Moto, error) {
			return nil, errors.New("connection refused")
		},
	}
	prefs := &MockPreferenceRepository{
		GetProfileFunc: func(ctx context.Context, userID string) (domain.RiderProfile, error) {
			return noviceProfile(userID), nil
		},
	}

	svc := NewRecommendationService(catalog, prefs, time.Second)

	_, err := svc.ComputeIdeal(context.Background(), "rider-1", 1)
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable, got %v", err)
	}
	if prefs.setCalls != 0 {
		t.Error("no assignment must be written on catalog outage")
	}
}

func TestComputeIdeal_PersistenceFailureStillReturnsRanking(t *testing.T) {
	catalog := &MockCatalogRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Moto, error) {
			return testCatalog(), nil
		},
	}
	prefs := &MockPreferenceRepository{
		GetProfileFunc: func(ctx context.Context, userID string) (domain.RiderProfile, error) {
			return noviceProfile(userID), nil
		},
		SetAssignmentFunc: func(ctx context.Context, userID string, a domain.IdealAssignment) error {
			return errors.New("neo4j down")
		},
	}

	svc := NewRecommendationService(catalog, prefs, time.Second)

	ranked, err := svc.ComputeIdeal(context.Background(), "rider-1", 1)
	if !errors.Is(err, domain.ErrPersistenceError) {
		t.Errorf("expected ErrPersistenceError, got %v", err)
	}
	if len(ranked) != 1 || ranked[0].MotoID != "commuter" {
		t.Errorf("ranking must still be returned on persistence failure, got %v", ranked)
	}
}

func TestComputeIdeal_RerunIsIdempotent(t *testing.T) {
	catalog := &MockCatalogRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Moto, error) {
			return testCatalog(), nil
		},
	}
	prefs := &MockPreferenceRepository{
		GetProfileFunc: func(ctx context.Context, userID string) (domain.RiderProfile, error) {
			return noviceProfile(userID), nil
		},
	}

	svc := NewRecommendationService(catalog, prefs, time.Second)

	first, err := svc.ComputeIdeal(context.Background(), "rider-1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ComputeIdeal(context.Background(), "rider-1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first[0].MotoID != second[0].MotoID || first[0].Score != second[0].Score {
		t.Errorf("rerun changed the result: %v vs %v", first[0], second[0])
	}
	if len(prefs.assignments) != 1 {
		t.Errorf("expected exactly one stored assignment, got %d", len(prefs.assignments))
	}
	if prefs.setCalls != 2 {
		t.Errorf("expected 2 supersede writes, got %d", prefs.setCalls)
	}
}

func TestComputeIdeal_TopNTruncation(t *testing.T) {
	catalog := &MockCatalogRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Moto, error) {
			return testCatalog(), nil
		},
	}
	prefs := &MockPreferenceRepository{
		GetProfileFunc: func(ctx context.Context, userID string) (domain.RiderProfile, error) {
			return noviceProfile(userID), nil
		},
	}

	svc := NewRecommendationService(catalog, prefs, time.Second)

	ranked, err := svc.ComputeIdeal(context.Background(), "rider-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 2 {
		t.Errorf("expected 2 results, got %d", len(ranked))
	}
	if ranked[0].Score < ranked[1].Score {
		t.Errorf("results not sorted by score: %v", ranked)
	}
}

func TestComputeIdeal_NoCriteriaSkipsRanking(t *testing.T) {
	catalog := &MockCatalogRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Moto, error) {
			t.Error("catalog must not be read for a rider without criteria")
			return nil, nil
		},
	}
	prefs := &MockPreferenceRepository{
		GetProfileFunc: func(ctx context.Context, userID string) (domain.RiderProfile, error) {
			return domain.RiderProfile{UserID: userID}, nil
		},
	}

	svc := NewRecommendationService(catalog, prefs, time.Second)

	ranked, err := svc.ComputeIdeal(context.Background(), "rider-1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("expected empty ranking, got %v", ranked)
	}
	if prefs.setCalls != 0 {
		t.Error("nothing must be persisted for a rider without criteria")
	}
}

func TestGetIdeal_NoAssignment(t *testing.T) {
	svc := NewRecommendationService(&MockCatalogRepository{}, &MockPreferenceRepository{}, time.Second)

	_, err := svc.GetIdeal(context.Background(), "rider-1")
	if !errors.Is(err, domain.ErrNoAssignment) {
		t.Errorf("expected ErrNoAssignment, got %v", err)
	}
}
