package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"motoMatch/business/catalog"
	"motoMatch/domain"
	"motoMatch/pkg/logger"
)

type CatalogService interface {
	GetAllMotos(ctx context.Context) ([]domain.Moto, error)
	GetMotoByID(ctx context.Context, id string) (*domain.Moto, error)
	CreateMoto(ctx context.Context, moto *domain.Moto) (*domain.Moto, error)
	UpdateMoto(ctx context.Context, moto *domain.Moto) (*domain.Moto, error)
	DeleteMoto(ctx context.Context, id string) error
	ImportCSV(ctx context.Context, r io.Reader) (catalog.ImportResult, error)
}

type MotoHandler struct {
	catalogService CatalogService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewMotoHandler(catalogService CatalogService) *MotoHandler {
	return &MotoHandler{
		catalogService: catalogService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateMotoRequest struct {
	ID           string   `json:"moto_id"`
	Brand        string   `json:"brand" validate:"required"`
	Model        string   `json:"model" validate:"required"`
	Style        string   `json:"style"`
	Power        *float64 `json:"power" validate:"omitempty,gte=0"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Displacement *float64 `json:"displacement" validate:"omitempty,gte=0"`
	Weight       *float64 `json:"weight" validate:"omitempty,gte=0"`
	Year         *int     `json:"year" validate:"omitempty,gte=1900"`
}

func (h *MotoHandler) GetAllMotos(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	motos, err := h.catalogService.GetAllMotos(ctx)
	if err != nil {
		logger.Error("Failed to find all motos", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(motos))
}

func (h *MotoHandler) GetMotoByID(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	moto, err := h.catalogService.GetMotoByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMotoNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "moto not found"})
		}
		logger.Error("Failed to get moto", "moto_id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(moto))
}

func (h *MotoHandler) CreateMoto(c echo.Context) error {
	var req CreateMotoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	moto := domain.Moto{
		ID:           req.ID,
		Brand:        req.Brand,
		Model:        req.Model,
		Style:        domain.ParseMotoStyle(req.Style),
		Power:        req.Power,
		Price:        req.Price,
		Displacement: req.Displacement,
		Weight:       req.Weight,
		Year:         req.Year,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.catalogService.CreateMoto(ctx, &moto)
	if err != nil {
		logger.Error("Failed to create moto", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *MotoHandler) UpdateMoto(c echo.Context) error {
	id := c.Param("id")

	var req CreateMotoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	moto := domain.Moto{
		ID:           id,
		Brand:        req.Brand,
		Model:        req.Model,
		Style:        domain.ParseMotoStyle(req.Style),
		Power:        req.Power,
		Price:        req.Price,
		Displacement: req.Displacement,
		Weight:       req.Weight,
		Year:         req.Year,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.catalogService.UpdateMoto(ctx, &moto)
	if err != nil {
		if errors.Is(err, domain.ErrMotoNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "moto not found"})
		}
		logger.Error("Failed to update moto", "moto_id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *MotoHandler) DeleteMoto(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.catalogService.DeleteMoto(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMotoNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "moto not found"})
		}
		logger.Error("Failed to delete moto", "moto_id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("moto deleted"))
}

// ImportMotos loads a CSV catalog dump. Malformed rows are skipped, the
// response reports how many rows made it in.
func (h *MotoHandler) ImportMotos(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing csv file"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	defer file.Close()

	// imports can outlive the normal request budget
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*h.timeout)
	defer cancel()

	result, err := h.catalogService.ImportCSV(ctx, file)
	if err != nil {
		logger.Error("Failed to import catalog csv", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(result))
}
