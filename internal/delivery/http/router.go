package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventscatalogue/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// mediaDir is the on-disk directory holding uploaded images, served under /images/.
func NewRouter(eventController *controllers.EventController, bookingController *controllers.BookingController, mediaDir string) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events/{slug}", eventController.GetEventBySlug)
	mux.HandleFunc("GET /events/{slug}/similar", eventController.ListSimilarEvents)
	mux.HandleFunc("GET /events/{slug}/bookings", bookingController.ListEventBookings)

	// Bookings
	mux.HandleFunc("POST /bookings", bookingController.CreateBooking)

	// Uploaded media
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(mediaDir))))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
