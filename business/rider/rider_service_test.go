package rider

import (
	"context"
	"testing"

	"motoMatch/domain"
)

type MockPreferenceRepository struct {
	saved map[string]domain.RiderProfile
}

func (m *MockPreferenceRepository) GetProfile(ctx context.Context, userID string) (domain.RiderProfile, error) {
	p, ok := m.saved[userID]
	if !ok {
		return domain.RiderProfile{}, domain.ErrRiderNotFound
	}
	return p, nil
}

func (m *MockPreferenceRepository) SaveProfile(ctx context.Context, profile domain.RiderProfile) error {
	if m.saved == nil {
		m.saved = make(map[string]domain.RiderProfile)
	}
	m.saved[profile.UserID] = profile
	return nil
}

func (m *MockPreferenceRepository) GetAssignment(ctx context.Context, userID string) (domain.IdealAssignment, error) {
	return domain.IdealAssignment{}, domain.ErrNoAssignment
}

func f(v float64) *float64 { return &v }

func TestSaveProfile_Validation(t *testing.T) {
	svc := NewRiderService(&MockPreferenceRepository{})

	tests := []struct {
		name    string
		profile domain.RiderProfile
	}{
		{"missing user id", domain.RiderProfile{}},
		{"bad experience", domain.RiderProfile{UserID: "u", Experience: "ninja"}},
		{"bad use", domain.RiderProfile{UserID: "u", IntendedUse: "space"}},
		{"negative budget", domain.RiderProfile{UserID: "u", Budget: f(-1)}},
		{"inverted power range", domain.RiderProfile{UserID: "u", PowerMin: f(100), PowerMax: f(50)}},
		{"weight out of [0,1]", domain.RiderProfile{UserID: "u", BrandWeights: map[string]float64{"honda": 1.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SaveProfile(context.Background(), tt.profile); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveProfile_LowercasesBrandKeys(t *testing.T) {
	repo := &MockPreferenceRepository{}
	svc := NewRiderService(repo)

	profile := domain.RiderProfile{
		UserID:       "u1",
		Experience:   domain.ExperienceNovice,
		BrandWeights: map[string]float64{" Yamaha ": 0.7, "HONDA": 0.2},
	}

	saved, err := svc.SaveProfile(context.Background(), profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := saved.BrandWeights["yamaha"]; !ok {
		t.Errorf("expected lowercased trimmed key yamaha, got %v", saved.BrandWeights)
	}
	if _, ok := saved.BrandWeights["honda"]; !ok {
		t.Errorf("expected lowercased key honda, got %v", saved.BrandWeights)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := NewRiderService(&MockPreferenceRepository{})

	_, err := svc.GetProfile(context.Background(), "ghost")
	if err != domain.ErrRiderNotFound {
		t.Errorf("expected ErrRiderNotFound, got %v", err)
	}
}

func TestSaveThenGetRoundTrip(t *testing.T) {
	svc := NewRiderService(&MockPreferenceRepository{})

	profile := domain.RiderProfile{
		UserID:      "u2",
		Experience:  domain.ExperienceIntermediate,
		IntendedUse: domain.UseRoad,
		Budget:      f(9000),
		PowerMin:    f(50),
		PowerMax:    f(100),
	}

	if _, err := svc.SaveProfile(context.Background(), profile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetProfile(context.Background(), "u2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Experience != domain.ExperienceIntermediate || got.Budget == nil || *got.Budget != 9000 {
		t.Errorf("profile round trip mismatch: %+v", got)
	}
}
