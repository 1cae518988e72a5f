package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register mounts the API on e. validate runs on every documented route,
// authenticate on every route except the public tracking lookup.
func (s *Server) Register(
	e *echo.Echo,
	gatherer prometheus.Gatherer,
	authenticate echo.MiddlewareFunc,
	validate echo.MiddlewareFunc,
) {
	e.Validator = NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	e.GET("/api/v1/tracking/:trackingId", s.GetTrackingEvents, validate)

	api := e.Group("/api/v1", authenticate, validate)
	api.POST("/parcels", s.CreateParcel)
	api.GET("/parcels/:parcelId", s.GetParcel)
	api.POST("/parcels/:parcelId/checkout", s.StartCheckout)
	api.PATCH("/parcels/:parcelId/delivery", s.CompleteDelivery)
	api.POST("/payments/reconcile", s.ReconcilePayment)
	api.GET("/payments", s.GetPaymentHistory)
	api.POST("/riders", s.CreateRider)

	api.PATCH("/parcels/:parcelId/rider", s.AssignRider, RequireAdmin)
	api.PATCH("/parcels/:parcelId/status", s.UpdateDeliveryStatus, RequireAdmin)
	api.GET("/riders/available", s.GetAvailableRiders, RequireAdmin)
	api.PATCH("/riders/:riderId/review", s.ReviewRider, RequireAdmin)
}
