package hotel

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"venus/infras/otel"
	"venus/internal/domains/account/model/dto"
	"venus/internal/domains/account/service"
	"venus/shared/constant"
	"venus/shared/validator"
	"venus/transport/http/middleware"
	"venus/transport/http/response"
)

type Handler struct {
	service    service.Account
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Account, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/hotels", handler.ListHotels)

	r.Group(func(r chi.Router) {
		r.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)
		r.Put("/hotels/{id}", handler.UpdateHotel)
	})
}

// ListHotels returns every hotel in registration order.
// @Summary List hotels
// @Tags Hotel
// @Produce json
// @Success 200 {object} response.Data[[]dto.UserResponse] "List of hotels"
// @Failure 500 {object} response.Error
// @Router /v1/hotels [get]
func (handler *Handler) ListHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListHotels")
	defer scope.End()

	hotels, err := handler.service.ListHotels(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list hotels")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hotels)
}

// UpdateHotel replaces the profile of the calling hotel.
// @Summary Update hotel profile
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body dto.UpdateHotelRequest true "Update Hotel Request"
// @Success 200 {object} response.Data[dto.UserResponse] "Updated hotel"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHotel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateHotelRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateHotel(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("hotel_id", id).Msg("failed to update hotel")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}
