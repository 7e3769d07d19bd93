// Package api defines the request and response types of the public HTTP API.
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrorResponse is the envelope for all non-validation errors.
type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type SystemInfo struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

type HealthCheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=70"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Movie struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Genres      []string  `json:"genres,omitempty"`
	ReleaseYear int       `json:"releaseYear,omitempty"`
	Duration    int       `json:"duration,omitempty"`
	PosterUrl   string    `json:"posterUrl,omitempty"`
	TrailerUrl  string    `json:"trailerUrl,omitempty"`
	Director    string    `json:"director,omitempty"`
	CastMembers []string  `json:"castMembers,omitempty"`
	AgeRating   string    `json:"ageRating,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
}

type MoviesResponse struct {
	Movies   []Movie  `json:"movies"`
	Metadata Metadata `json:"metadata"`
}

type MovieResponse struct {
	Movie Movie `json:"movie"`
}

type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Genres      []string `json:"genres" validate:"max=10"`
	ReleaseYear int      `json:"releaseYear" validate:"required,gt=1887"`
	Duration    int      `json:"duration" validate:"required,gt=0"`
	PosterUrl   string   `json:"posterUrl" validate:"omitempty,url"`
	TrailerUrl  string   `json:"trailerUrl" validate:"omitempty,url"`
	Director    string   `json:"director" validate:"max=100"`
	CastMembers []string `json:"castMembers" validate:"max=30"`
	AgeRating   string   `json:"ageRating" validate:"max=10"`
	Rating      float64  `json:"rating" validate:"min=0,max=10"`
}

type City struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CitiesResponse struct {
	Cities []City `json:"cities"`
}

type CreateCityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type Cinema struct {
	Id      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	City    string    `json:"city"`
	Address string    `json:"address,omitempty"`
}

type CinemasResponse struct {
	Cinemas []Cinema `json:"cinemas"`
}

type CreateCinemaRequest struct {
	Name    string `json:"name" validate:"required,max=150"`
	City    string `json:"city" validate:"required,max=100"`
	Address string `json:"address" validate:"max=300"`
}

type Showtime struct {
	Id         uuid.UUID       `json:"id"`
	MovieId    uuid.UUID       `json:"movieId"`
	CinemaId   uuid.UUID       `json:"cinemaId"`
	MovieTitle string          `json:"movieTitle,omitempty"`
	CinemaName string          `json:"cinemaName,omitempty"`
	City       string          `json:"city,omitempty"`
	Auditorium string          `json:"auditorium"`
	StartsAt   time.Time       `json:"startsAt"`
	BasePrice  decimal.Decimal `json:"basePrice"`
}

type ShowtimesResponse struct {
	Showtimes []Showtime `json:"showtimes"`
}

type ShowtimeResponse struct {
	Showtime Showtime `json:"showtime"`
}

type CreateShowtimeRequest struct {
	MovieId    uuid.UUID       `json:"movieId" validate:"required"`
	CinemaId   uuid.UUID       `json:"cinemaId" validate:"required"`
	Auditorium string          `json:"auditorium" validate:"required,max=50"`
	StartsAt   time.Time       `json:"startsAt" validate:"required"`
	BasePrice  decimal.Decimal `json:"basePrice" validate:"required"`
}

type Seat struct {
	Label    string          `json:"label"`
	Price    decimal.Decimal `json:"price"`
	Reserved bool            `json:"reserved"`
}

type SeatRow struct {
	Row   string `json:"row"`
	Seats []Seat `json:"seats"`
}

// SeatMapResponse is the full auditorium grid for one showtime, with
// per-seat tier pricing and current availability. Degraded reports that the
// reserved set could not be refreshed and may be stale.
type SeatMapResponse struct {
	ShowtimeId uuid.UUID `json:"showtimeId"`
	SeatRows   []SeatRow `json:"seatRows"`
	Degraded   bool      `json:"degraded,omitempty"`
}

type CreateSelectionRequest struct {
	Seats []string `json:"seats" validate:"required,min=1,max=10,dive,seat_label"`
}

type SelectionSeat struct {
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

type Selection struct {
	SelectionId  uuid.UUID       `json:"selectionId"`
	ShowtimeId   uuid.UUID       `json:"showtimeId"`
	MovieTitle   string          `json:"movieTitle"`
	PosterUrl    string          `json:"posterUrl,omitempty"`
	ShowtimeDate string          `json:"showtimeDate"`
	City         string          `json:"city"`
	CinemaName   string          `json:"cinemaName"`
	Auditorium   string          `json:"auditorium"`
	Seats        []SelectionSeat `json:"seats"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	HoldTime     int             `json:"holdTime"`
}

type SelectionResponse struct {
	Selection Selection `json:"selection"`
}

type Booking struct {
	BookingId    uuid.UUID       `json:"bookingId"`
	MovieTitle   string          `json:"movieTitle"`
	PosterUrl    string          `json:"posterUrl,omitempty"`
	ShowtimeDate time.Time       `json:"showtimeDate"`
	City         string          `json:"city"`
	CinemaName   string          `json:"cinemaName"`
	Auditorium   string          `json:"auditorium"`
	Seats        []string        `json:"seats"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type BookingResponse struct {
	Booking Booking `json:"booking"`
}

type BookingsResponse struct {
	Bookings []Booking `json:"bookings"`
	Metadata Metadata  `json:"metadata"`
}

// CheckoutResponse is returned by a successful confirm: the new booking plus
// the payload encoded into its QR ticket.
type CheckoutResponse struct {
	BookingId     uuid.UUID       `json:"bookingId"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	TicketPayload string          `json:"ticketPayload"`
	CreatedAt     time.Time       `json:"createdAt"`
}
