package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"motoMatch/domain"
	"motoMatch/pkg/logger"
)

type (
	RecommendationHandler struct {
		validate              *validator.Validate
		recommendationService RecommendationService
	}

	RecommendationService interface {
		ComputeIdeal(ctx context.Context, userID string, topN int) ([]domain.RankedMoto, error)
		GetIdeal(ctx context.Context, userID string) (domain.IdealAssignment, error)
	}

	IdealQuery struct {
		UserID string `query:"user_id" validate:"required"`
		N      int    `query:"n"`
	}

	IdealResponse struct {
		UserID    string              `json:"user_id"`
		Persisted bool                `json:"persisted"`
		Results   []domain.RankedMoto `json:"results"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:              validator.New(),
		recommendationService: svc,
	}
}

// GET /api/v1/recommendations/ideal?user_id=ana&n=3
func (h *RecommendationHandler) ComputeIdeal(c echo.Context) error {
	var q IdealQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.N <= 0 {
		q.N = 1
	}

	results, err := h.recommendationService.ComputeIdeal(c.Request().Context(), q.UserID, q.N)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDataUnavailable):
			logger.Error("Catalog unavailable during ideal computation", "user_id", q.UserID, "error", err)
			return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "recomendaciones no disponibles"})
		case errors.Is(err, domain.ErrPersistenceError):
			// ranking is valid, only the write failed
			logger.Warn("Ideal computed but not persisted", "user_id", q.UserID, "error", err)
			return c.JSON(http.StatusOK, fres.Response.StatusOK(IdealResponse{
				UserID:    q.UserID,
				Persisted: false,
				Results:   results,
			}))
		}
		logger.Error("Failed to compute ideal", "user_id", q.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(IdealResponse{
		UserID:    q.UserID,
		Persisted: len(results) > 0,
		Results:   results,
	}))
}

// GET /api/v1/recommendations/ideal/current?user_id=ana
func (h *RecommendationHandler) CurrentIdeal(c echo.Context) error {
	var q IdealQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	assignment, err := h.recommendationService.GetIdeal(c.Request().Context(), q.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRiderNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: "rider not found"})
		case errors.Is(err, domain.ErrNoAssignment):
			return c.JSON(http.StatusNotFound, ResponseError{Message: "no ideal moto assigned"})
		}
		logger.Error("Failed to get current ideal", "user_id", q.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(assignment))
}
