package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Behramm10/Cine-Flow/api"
	"github.com/Behramm10/Cine-Flow/internal/domain"
)

func (app *Application) GetCities(w http.ResponseWriter, r *http.Request) {
	cities, err := app.cinemaRepo.GetCities(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	apiCities := make([]api.City, len(cities))
	for i, v := range cities {
		apiCities[i] = api.City{Id: v.ID, Name: v.Name}
	}

	resp := api.CitiesResponse{Cities: apiCities}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetCinemasByCity(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	if city == "" {
		app.badRequestResponse(w, r, fmt.Errorf("city must not be empty"))
		return
	}

	cinemas, err := app.cinemaRepo.GetByCity(r.Context(), city)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	apiCinemas := make([]api.Cinema, len(cinemas))
	for i, v := range cinemas {
		apiCinemas[i] = api.Cinema{
			Id:      v.ID,
			Name:    v.Name,
			City:    v.City,
			Address: v.Address,
		}
	}

	resp := api.CinemasResponse{Cinemas: apiCinemas}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateCity(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateCityRequest

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

	city := domain.City{Name: input.Name}

	err = app.cinemaRepo.CreateCity(r.Context(), &city)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCityAlreadyExists):
			logger.Warn("attempt to create duplicate city", "city", input.Name)
			app.editConflictResponseWithErr(w, r, fmt.Errorf("city %q already exists", input.Name))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.City{Id: city.ID, Name: city.Name}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateCinema(w http.ResponseWriter, r *http.Request) {
	var input api.CreateCinemaRequest

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

	cinema := domain.Cinema{
		Name:    input.Name,
		City:    input.City,
		Address: input.Address,
	}

	err = app.cinemaRepo.Create(r.Context(), &cinema)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.Cinema{
		Id:      cinema.ID,
		Name:    cinema.Name,
		City:    cinema.City,
		Address: cinema.Address,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
