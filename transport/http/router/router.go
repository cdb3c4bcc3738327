package router

import (
	"agenda/internal/handlers/auth"
	"agenda/internal/handlers/booking"
	"agenda/internal/handlers/notification"
	"agenda/internal/handlers/professional"
	"agenda/internal/handlers/profile"
	"agenda/internal/handlers/schedule"
	"agenda/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Professional professional.Handler
	Schedule     schedule.Handler
	Booking      booking.Handler
	Notification notification.Handler
	Profile      profile.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Professional.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
		r.DomainHandlers.Profile.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
