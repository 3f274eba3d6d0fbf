package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"motoMatch/domain"
	"motoMatch/pkg/logger"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type RiderService interface {
	GetProfile(ctx context.Context, userID string) (domain.RiderProfile, error)
	SaveProfile(ctx context.Context, profile domain.RiderProfile) (domain.RiderProfile, error)
	GetAssignment(ctx context.Context, userID string) (domain.IdealAssignment, error)
}

type RiderHandler struct {
	riderService RiderService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewRiderHandler(riderService RiderService) *RiderHandler {
	return &RiderHandler{
		riderService: riderService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type SaveProfileRequest struct {
	Experience      string             `json:"experience" validate:"omitempty,oneof=novice intermediate expert"`
	IntendedUse     string             `json:"intended_use" validate:"omitempty,oneof=urban road offroad"`
	Budget          *float64           `json:"budget" validate:"omitempty,gte=0"`
	PowerMin        *float64           `json:"power_min" validate:"omitempty,gte=0"`
	PowerMax        *float64           `json:"power_max" validate:"omitempty,gte=0"`
	DisplacementMin *float64           `json:"displacement_min" validate:"omitempty,gte=0"`
	DisplacementMax *float64           `json:"displacement_max" validate:"omitempty,gte=0"`
	WeightMin       *float64           `json:"weight_min" validate:"omitempty,gte=0"`
	WeightMax       *float64           `json:"weight_max" validate:"omitempty,gte=0"`
	BrandWeights    map[string]float64 `json:"brand_weights" validate:"omitempty,dive,gte=0,lte=1"`
}

func (h *RiderHandler) GetProfile(c echo.Context) error {
	userID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.riderService.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRiderNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "rider not found"})
		}
		logger.Error("Failed to get rider profile", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile))
}

func (h *RiderHandler) SaveProfile(c echo.Context) error {
	userID := c.Param("id")

	var req SaveProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	profile := domain.RiderProfile{
		UserID:          userID,
		Experience:      domain.ExperienceLevel(req.Experience),
		IntendedUse:     domain.IntendedUse(req.IntendedUse),
		Budget:          req.Budget,
		PowerMin:        req.PowerMin,
		PowerMax:        req.PowerMax,
		DisplacementMin: req.DisplacementMin,
		DisplacementMax: req.DisplacementMax,
		WeightMin:       req.WeightMin,
		WeightMax:       req.WeightMax,
		BrandWeights:    req.BrandWeights,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.riderService.SaveProfile(ctx, profile)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProfile) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to save rider profile", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(saved))
}

func (h *RiderHandler) GetIdeal(c echo.Context) error {
	userID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	assignment, err := h.riderService.GetAssignment(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRiderNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: "rider not found"})
		case errors.Is(err, domain.ErrNoAssignment):
			return c.JSON(http.StatusNotFound, ResponseError{Message: "no ideal moto assigned"})
		}
		logger.Error("Failed to get ideal assignment", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(assignment))
}
