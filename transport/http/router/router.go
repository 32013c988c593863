package router

import (
	"github.com/go-chi/chi/v5"

	"venus/internal/handlers/auth"
	"venus/internal/handlers/hotel"
	"venus/internal/handlers/notification"
	"venus/internal/handlers/reservation"
	"venus/internal/handlers/room"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Hotel        hotel.Handler
	Room         room.Handler
	Reservation  reservation.Handler
	Notification notification.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
