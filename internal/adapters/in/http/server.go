// Package http is the echo adapter that exposes the use cases as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/application/usecases/queries"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/core/ports"
	"parceldelivery/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case ports of the server. The command and query handlers satisfy them.
type (
	CreateParcelHandler interface {
		Handle(ctx context.Context, cmd commands.CreateParcelCommand) error
	}
	StartCheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.StartCheckoutCommand) (ports.CheckoutSession, error)
	}
	ReconcilePaymentHandler interface {
		Handle(ctx context.Context, cmd commands.ReconcilePaymentCommand) (commands.ReconcilePaymentResult, error)
	}
	AssignRiderHandler interface {
		Handle(ctx context.Context, cmd commands.AssignRiderCommand) error
	}
	CompleteDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteDeliveryCommand) error
	}
	UpdateDeliveryStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDeliveryStatusCommand) error
	}
	CreateRiderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateRiderCommand) error
	}
	ReviewRiderHandler interface {
		Handle(ctx context.Context, cmd commands.ReviewRiderCommand) error
	}
	GetParcelHandler interface {
		Handle(ctx context.Context, query queries.GetParcelQuery) (queries.GetParcelQueryResponse, error)
	}
	GetTrackingEventsHandler interface {
		Handle(ctx context.Context, query queries.GetTrackingEventsQuery) ([]queries.GetTrackingEventsQueryResponse, error)
	}
	GetPaymentHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetPaymentHistoryQuery) ([]queries.GetPaymentHistoryQueryResponse, error)
	}
	GetAvailableRidersHandler interface {
		Handle(ctx context.Context, query queries.GetAvailableRidersQuery) ([]queries.GetAvailableRidersQueryResponse, error)
	}
)

type Handlers struct {
	CreateParcel         CreateParcelHandler
	StartCheckout        StartCheckoutHandler
	ReconcilePayment     ReconcilePaymentHandler
	AssignRider          AssignRiderHandler
	CompleteDelivery     CompleteDeliveryHandler
	UpdateDeliveryStatus UpdateDeliveryStatusHandler
	CreateRider          CreateRiderHandler
	ReviewRider          ReviewRiderHandler

	GetParcel          GetParcelHandler
	GetTrackingEvents  GetTrackingEventsHandler
	GetPaymentHistory  GetPaymentHistoryHandler
	GetAvailableRiders GetAvailableRidersHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewServer(handlers Handlers, m *metrics.Metrics, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		metrics:  m,
		logger:   logger.With("component", "http"),
	}
}

// CreateParcel handles POST /api/v1/parcels. The caller becomes the sender.
func (s *Server) CreateParcel(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return writeErrorStatus(c, http.StatusUnauthorized, err.Error())
	}

	var req NewParcelRequest
	if err = s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(parcelID, caller.Email, parcel.Shipment{
		SenderName:      req.SenderName,
		ReceiverName:    req.ReceiverName,
		ReceiverAddress: req.ReceiverAddress,
		District:        req.District,
		WeightGrams:     req.WeightGrams,
	}, req.CostAmount, req.Currency)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.handlers.CreateParcel.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: parcelID.String()})
}

// GetParcel handles GET /api/v1/parcels/:parcelId.
func (s *Server) GetParcel(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return writeErrorStatus(c, http.StatusUnauthorized, err.Error())
	}
	parcelID, err := bindUUIDParam(c, "parcelId")
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetParcelQuery(parcelID, caller.Email, caller.IsAdmin())
	if err != nil {
		return s.writeError(c, err)
	}

	p, err := s.handlers.GetParcel.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newParcelResponse(p))
}

// StartCheckout handles POST /api/v1/parcels/:parcelId/checkout.
func (s *Server) StartCheckout(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return writeErrorStatus(c, http.StatusUnauthorized, err.Error())
	}
	parcelID, err := bindUUIDParam(c, "parcelId")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewStartCheckoutCommand(parcelID, caller.Email)
	if err != nil {
		return s.writeError(c, err)
	}

	session, err := s.handlers.StartCheckout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CheckoutResponse{SessionID: session.Reference, URL: session.URL})
}

// ReconcilePayment handles POST /api/v1/payments/reconcile. Repeating the call
// for the same session returns the original payment with duplicate=true.
func (s *Server) ReconcilePayment(c echo.Context) error {
	var req ReconcileRequest
	if err := s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewReconcilePaymentCommand(req.SessionID)
	if err != nil {
		return s.writeError(c, err)
	}

	result, err := s.handlers.ReconcilePayment.Handle(c.Request().Context(), cmd)
	s.metrics.ObserveReconciliation("callback", result, err)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newReconcileResponse(result))
}

// GetPaymentHistory handles GET /api/v1/payments?email=.
func (s *Server) GetPaymentHistory(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return writeErrorStatus(c, http.StatusUnauthorized, err.Error())
	}

	var owner string
	err = runtime.BindQueryParameter("form", true, true, "email", c.QueryParams(), &owner)
	if err != nil {
		return writeErrorStatus(c, http.StatusBadRequest, err.Error())
	}

	query, err := queries.NewGetPaymentHistoryQuery(owner, caller.Email)
	if err != nil {
		return s.writeError(c, err)
	}

	payments, err := s.handlers.GetPaymentHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		response[i] = newPaymentResponse(p)
	}
	return c.JSON(http.StatusOK, response)
}

// GetTrackingEvents handles GET /api/v1/tracking/:trackingId. No token needed.
func (s *Server) GetTrackingEvents(c echo.Context) error {
	var trackingID string
	err := runtime.BindStyledParameterWithOptions("simple", "trackingId", c.Param("trackingId"), &trackingID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return writeErrorStatus(c, http.StatusBadRequest, err.Error())
	}

	query, err := queries.NewGetTrackingEventsQuery(trackingID)
	if err != nil {
		return s.writeError(c, err)
	}

	events, err := s.handlers.GetTrackingEvents.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]TrackingEventResponse, len(events))
	for i, e := range events {
		response[i] = TrackingEventResponse{
			ID:         e.ID.String(),
			TrackingID: e.TrackingID,
			Status:     e.Status,
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// AssignRider handles PATCH /api/v1/parcels/:parcelId/rider (admin).
func (s *Server) AssignRider(c echo.Context) error {
	parcelID, err := bindUUIDParam(c, "parcelId")
	if err != nil {
		return s.writeError(c, err)
	}
	var req RiderRequest
	if err = s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}
	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewAssignRiderCommand(parcelID, riderID)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.handlers.AssignRider.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles PATCH /api/v1/parcels/:parcelId/delivery. The caller
// must be the named rider or an admin.
func (s *Server) CompleteDelivery(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return writeErrorStatus(c, http.StatusUnauthorized, err.Error())
	}
	parcelID, err := bindUUIDParam(c, "parcelId")
	if err != nil {
		return s.writeError(c, err)
	}
	var req RiderRequest
	if err = s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}
	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(parcelID, riderID, caller.Email, caller.IsAdmin())
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.handlers.CompleteDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateDeliveryStatus handles PATCH /api/v1/parcels/:parcelId/status (admin).
// The caller's email is recorded as the acting identity.
func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return writeErrorStatus(c, http.StatusUnauthorized, err.Error())
	}
	parcelID, err := bindUUIDParam(c, "parcelId")
	if err != nil {
		return s.writeError(c, err)
	}
	var req StatusOverrideRequest
	if err = s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	var riderID *kernel.UUID
	if req.RiderID != "" {
		id, idErr := kernel.UUIDFromString(req.RiderID)
		if idErr != nil {
			return s.writeError(c, idErr)
		}
		riderID = &id
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(parcelID, req.Status, riderID, caller.Email)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.handlers.UpdateDeliveryStatus.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateRider handles POST /api/v1/riders. The caller applies for themselves.
func (s *Server) CreateRider(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return writeErrorStatus(c, http.StatusUnauthorized, err.Error())
	}
	var req NewRiderRequest
	if err = s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	riderID := kernel.NewUUID()
	cmd, err := commands.NewCreateRiderCommand(riderID, req.Name, caller.Email, req.District)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.handlers.CreateRider.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: riderID.String()})
}

// ReviewRider handles PATCH /api/v1/riders/:riderId/review (admin).
func (s *Server) ReviewRider(c echo.Context) error {
	riderID, err := bindUUIDParam(c, "riderId")
	if err != nil {
		return s.writeError(c, err)
	}
	var req RiderReviewRequest
	if err = s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewReviewRiderCommand(riderID, req.Decision)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.handlers.ReviewRider.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetAvailableRiders handles GET /api/v1/riders/available?district= (admin).
func (s *Server) GetAvailableRiders(c echo.Context) error {
	var district string
	err := runtime.BindQueryParameter("form", true, false, "district", c.QueryParams(), &district)
	if err != nil {
		return writeErrorStatus(c, http.StatusBadRequest, err.Error())
	}

	riders, err := s.handlers.GetAvailableRiders.Handle(c.Request().Context(), queries.NewGetAvailableRidersQuery(district))
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]RiderResponse, len(riders))
	for i, r := range riders {
		response[i] = RiderResponse{ID: r.ID.String(), Name: r.Name, Email: r.Email, District: r.District}
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return invalidBody(err)
	}
	return c.Validate(req)
}

func bindUUIDParam(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, invalidParam(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}
