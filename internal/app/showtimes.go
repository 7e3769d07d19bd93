package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/Behramm10/Cine-Flow/api"
	"github.com/Behramm10/Cine-Flow/internal/domain"
)

func (app *Application) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	movieId, err := uuid.Parse(r.URL.Query().Get("movieId"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid movieId parameter"))
		return
	}

	cinemaId, err := uuid.Parse(r.URL.Query().Get("cinemaId"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid cinemaId parameter"))
		return
	}

	showtimes, err := app.showtimeRepo.GetByMovieAndCinema(r.Context(), movieId, cinemaId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	apiShowtimes := make([]api.Showtime, len(showtimes))
	for i, v := range showtimes {
		apiShowtimes[i] = toApiShowtime(v)
	}

	resp := api.ShowtimesResponse{Showtimes: apiShowtimes}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowtimeById(w http.ResponseWriter, r *http.Request) {
	showtimeId, err := app.readUUIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), showtimeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.ShowtimeResponse{Showtime: toApiShowtime(showtime)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var input api.CreateShowtimeRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if !input.BasePrice.IsPositive() {
		app.badRequestResponse(w, r, fmt.Errorf("base price must be positive"))
		return
	}

	showtime := domain.Showtime{
		MovieID:    input.MovieId,
		CinemaID:   input.CinemaId,
		Auditorium: input.Auditorium,
		StartsAt:   input.StartsAt,
		BasePrice:  input.BasePrice,
	}

	err = app.showtimeRepo.Create(r.Context(), &showtime)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ShowtimeResponse{Showtime: toApiShowtime(&showtime)}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiShowtime(showtime *domain.Showtime) api.Showtime {
	return api.Showtime{
		Id:         showtime.ID,
		MovieId:    showtime.MovieID,
		CinemaId:   showtime.CinemaID,
		MovieTitle: showtime.MovieTitle,
		CinemaName: showtime.CinemaName,
		City:       showtime.City,
		Auditorium: showtime.Auditorium,
		StartsAt:   showtime.StartsAt,
		BasePrice:  showtime.BasePrice,
	}
}
