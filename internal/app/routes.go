package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

// Routes assembles the full router. It is exported so integration tests can
// drive the application through the real middleware chain.
func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cineflow-api", otelchi.WithChiRoutes(r)))
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.ensureGuestUserSession)

	r.Get("/health", app.GetHealth)

	r.Post("/users", app.RegisterUser)
	r.Post("/sessions", app.Login)
	r.Delete("/sessions", app.Logout)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMovies)
		r.Get("/{movieId}", app.GetMovieById)
		r.With(app.requireAdmin).Post("/", app.CreateMovie)
		r.With(app.requireAdmin).Delete("/{movieId}", app.DeleteMovie)
	})

	r.Route("/cities", func(r chi.Router) {
		r.Get("/", app.GetCities)
		r.Get("/{city}/cinemas", app.GetCinemasByCity)
		r.With(app.requireAdmin).Post("/", app.CreateCity)
	})

	r.With(app.requireAdmin).Post("/cinemas", app.CreateCinema)

	r.Route("/showtimes", func(r chi.Router) {
		r.Get("/", app.GetShowtimes)
		r.Get("/{showtimeId}", app.GetShowtimeById)
		r.With(app.requireAdmin).Post("/", app.CreateShowtime)

		r.Get("/{showtimeId}/seats", app.GetSeatMapByShowtime)
		r.Get("/{showtimeId}/seats/events", app.StreamSeatChanges)

		r.Post("/{showtimeId}/selection", app.CreateSelection)
		r.Delete("/{showtimeId}/selection", app.DeleteSelection)
	})

	r.With(app.requireAuthentication).Post("/checkout", app.Checkout)

	r.With(app.requireAuthentication).Route("/users/me", func(r chi.Router) {
		r.Get("/", app.GetCurrentUser)
		r.Get("/bookings", app.GetUserBookings)
		r.Get("/bookings/{bookingId}", app.GetUserBookingById)
		r.Get("/bookings/{bookingId}/ticket", app.GetTicketQR)
	})

	return r
}
