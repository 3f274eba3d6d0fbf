package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"motoMatch/app/echo-server/metrics"
	"motoMatch/internal/rest"
)

func SetupMotoRoutes(api *echo.Group, handler *rest.MotoHandler) {
	motos := api.Group("/motos")

	motos.GET("", handler.GetAllMotos)
	motos.GET("/:id", handler.GetMotoByID)
	motos.POST("", handler.CreateMoto)
	motos.PUT("/:id", handler.UpdateMoto)
	motos.DELETE("/:id", handler.DeleteMoto)
	motos.POST("/import", handler.ImportMotos)
}

func SetupRiderRoutes(api *echo.Group, handler *rest.RiderHandler) {
	riders := api.Group("/riders")

	riders.GET("/:id/profile", handler.GetProfile)
	riders.PUT("/:id/profile", handler.SaveProfile)
	riders.GET("/:id/ideal", handler.GetIdeal)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")
	reco.GET("/ideal", handler.ComputeIdeal, timed)
	reco.GET("/ideal/current", handler.CurrentIdeal)
}

// timed records request count and latency for the recommendation endpoint.
func timed(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		metrics.IdealRequestDuration.Observe(time.Since(start).Seconds())
		metrics.IdealRequestsTotal.Inc()
		return err
	}
}
