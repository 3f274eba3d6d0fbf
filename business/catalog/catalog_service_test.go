package catalog

import (
	"context"
	"strings"
	"testing"

	"motoMatch/domain"
)

type MockMotoRepository struct {
	created []domain.Moto

	CreateFunc  func(ctx context.Context, moto *domain.Moto) error
	FindAllFunc func(ctx context.Context) ([]domain.Moto, error)
}

func (m *MockMotoRepository) Create(ctx context.Context, moto *domain.Moto) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, moto)
	}
	m.created = append(m.created, *moto)
	return nil
}

func (m *MockMotoRepository) FindByID(ctx context.Context, id string) (domain.Moto, error) {
	for _, moto := range m.created {
		if moto.ID == id {
			return moto, nil
		}
	}
	return domain.Moto{}, domain.ErrMotoNotFound
}

func (m *MockMotoRepository) FindAll(ctx context.Context) ([]domain.Moto, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return m.created, nil
}

func (m *MockMotoRepository) Update(ctx context.Context, moto *domain.Moto) error { return nil }
func (m *MockMotoRepository) Delete(ctx context.Context, id string) error         { return nil }

func TestCreateMoto_Validation(t *testing.T) {
	repo := &MockMotoRepository{}
	svc := NewCatalogService(repo, nil)

	neg := -10.0
	tests := []struct {
		name string
		moto domain.Moto
	}{
		{"missing brand", domain.Moto{Model: "MT-07"}},
		{"missing model", domain.Moto{Brand: "Yamaha"}},
		{"negative power", domain.Moto{Brand: "Yamaha", Model: "MT-07", Power: &neg}},
		{"negative price", domain.Moto{Brand: "Yamaha", Model: "MT-07", Price: &neg}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moto := tt.moto
			if _, err := svc.CreateMoto(context.Background(), &moto); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if len(repo.created) != 0 {
		t.Errorf("invalid motos must not be persisted, got %d", len(repo.created))
	}
}

func TestCreateMoto_GeneratesIDAndNormalizesStyle(t *testing.T) {
	repo := &MockMotoRepository{}
	svc := NewCatalogService(repo, nil)

	moto := domain.Moto{Brand: "Honda", Model: "CB500F", Style: "Naked"}
	created, err := svc.CreateMoto(context.Background(), &moto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated moto id")
	}
	if created.Style != domain.StyleNaked {
		t.Errorf("expected style normalized to naked, got %s", created.Style)
	}
}

func TestImportCSV_SkipsMalformedRows(t *testing.T) {
	repo := &MockMotoRepository{}
	svc := NewCatalogService(repo, nil)

	csvData := strings.Join([]string{
		"brand,model,style,power,price,displacement,weight,year",
		"Honda,CB125R,naked,13,4800,125,130,2023",
		"Yamaha,,naked,35,6500,321,168,2022",      // missing model
		"Kawasaki,Z650,naked,abc,7200,649,187,",   // bad power
		"Suzuki,V-Strom 800,adventure,83,,,,2024", // sparse numerics are fine
		"BMW,R1250GS,adventure,136,19500,1254,249,2021",
	}, "\n")

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Imported != 3 {
		t.Errorf("expected 3 imported, got %d", result.Imported)
	}
	if result.Skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", result.Skipped)
	}
	if len(repo.created) != 3 {
		t.Fatalf("expected 3 persisted motos, got %d", len(repo.created))
	}

	vstrom := repo.created[1]
	if vstrom.Brand != "Suzuki" || vstrom.Price != nil || vstrom.Power == nil || *vstrom.Power != 83 {
		t.Errorf("sparse row parsed incorrectly: %+v", vstrom)
	}
}

func TestImportCSV_RejectsHeaderWithoutBrandModel(t *testing.T) {
	svc := NewCatalogService(&MockMotoRepository{}, nil)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("foo,bar\n1,2\n"))
	if err == nil {
		t.Error("expected header validation error")
	}
}
