package room

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"venus/infras/otel"
	"venus/internal/domains/room/model/dto"
	"venus/internal/domains/room/service"
	"venus/shared/constant"
	"venus/shared/validator"
	"venus/transport/http/middleware"
	"venus/transport/http/response"
)

type Handler struct {
	service    service.Room
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Room, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/hotels/{id}/rooms", handler.ListRooms)

	router.Group(func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)
		routerGroup.Put("/rooms", handler.SaveRoom)
		routerGroup.Delete("/rooms/{id}", handler.DeleteRoom)
	})
}

// ListRooms retrieves the rooms of a hotel.
// @Summary List rooms of a hotel
// @Tags Room
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Data[[]dto.RoomResponse] "List of rooms"
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/rooms [get]
func (handler *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListRooms")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamID)

	rooms, err := handler.service.ListByHotel(ctx, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("failed to list rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// SaveRoom creates a room, or replaces it when the id already exists.
// @Summary Save a room
// @Description Rooms without an id are created; the hotel defaults to the caller.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.SaveRoomRequest true "Save Room Request"
// @Success 200 {object} response.Data[dto.RoomResponse] "Saved room"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [put]
// @Security BearerAuth
func (handler *Handler) SaveRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveRoom")
	defer scope.End()

	req := dto.SaveRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Save(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save room")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room saved successfully by user " + user)

	response.WithJSON(writer, http.StatusOK, room)
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Description Deleting a room that does not exist succeeds.
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}
