package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"venus/infras/otel"
	"venus/internal/domains/notification/service"
	"venus/shared"
	"venus/shared/constant"
	"venus/transport/http/middleware"
	"venus/transport/http/response"
)

type Handler struct {
	service    service.Notification
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Notification, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Group(func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)
		routerGroup.Get("/notifications", handler.ListNotifications)
		routerGroup.Patch("/notifications/{id}/read", handler.MarkRead)
	})
}

// ListNotifications returns the caller's feed, newest first.
// @Summary List notifications
// @Tags Notification
// @Produce json
// @Success 200 {object} response.Data[[]dto.NotificationResponse] "Notifications"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications [get]
// @Security BearerAuth
func (handler *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListNotifications")
	defer scope.End()

	userID, _ := shared.ActorFromContext(ctx)

	notifications, err := handler.service.ListForUser(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list notifications")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, notifications)
}

// MarkRead flags a notification of the caller as read.
// @Summary Mark notification as read
// @Tags Notification
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Message "Notification marked as read"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/{id}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkRead")
	defer scope.End()

	userID, _ := shared.ActorFromContext(ctx)
	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkRead(ctx, userID, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("notification_id", id).Msg("failed to mark notification as read")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Notification marked as read")
}
