package reservation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"venus/infras/otel"
	"venus/internal/domains/reservation/model/dto"
	"venus/internal/domains/reservation/service"
	"venus/shared/constant"
	"venus/shared/validator"
	"venus/transport/http/middleware"
	"venus/transport/http/response"
)

type Handler struct {
	service    service.Reservation
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Reservation, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Group(func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)
		routerGroup.Get("/hotels/{id}/reservations", handler.ListForHotel)
		routerGroup.Get("/clients/{id}/reservations", handler.ListForClient)
		routerGroup.Post("/reservations", handler.CreateReservation)
		routerGroup.Patch("/reservations/{id}/status", handler.UpdateStatus)
	})
}

// ListForHotel retrieves the reservations made at a hotel.
// @Summary List reservations of a hotel
// @Tags Reservation
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Data[[]dto.ReservationResponse] "List of reservations"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/reservations [get]
// @Security BearerAuth
func (handler *Handler) ListForHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListForHotel")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamID)

	reservations, err := handler.service.ListByHotel(ctx, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("failed to list hotel reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// ListForClient retrieves the reservations of a client.
// @Summary List reservations of a client
// @Tags Reservation
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} response.Data[[]dto.ReservationResponse] "List of reservations"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clients/{id}/reservations [get]
// @Security BearerAuth
func (handler *Handler) ListForClient(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListForClient")
	defer scope.End()

	clientID := chi.URLParam(r, constant.RequestParamID)

	reservations, err := handler.service.ListByClient(ctx, clientID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("client_id", clientID).Msg("failed to list client reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// CreateReservation books a room for the calling client.
// @Summary Create a reservation
// @Description Dates use the YYYY-MM-DD format; checkOut must be after checkIn.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Created reservation"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateStatus moves a reservation to another status.
// @Summary Update reservation status
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message "Reservation status updated"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to update reservation status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Reservation status updated")
}
