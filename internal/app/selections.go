package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Behramm10/Cine-Flow/api"
	"github.com/Behramm10/Cine-Flow/internal/domain"
)

// selectionTTL bounds how long a priced selection survives without being
// confirmed. Selections never hold seats, so expiry costs the user nothing
// but a re-pick.
const selectionTTL = 10 * time.Minute

func selectionSessionKey(sessionID string) string {
	return fmt.Sprintf("selection:%s", sessionID)
}

func (app *Application) CreateSelection(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeId, err := app.readUUIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CreateSelectionRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	sessionID := app.sessionManager.Token(r.Context())

	existing, err := app.redis.Get(r.Context(), selectionSessionKey(sessionID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.Error("failed to check for existing selection in redis", "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	if existing != "" {
		logger.Warn("selection creation rejected, session already holds one")
		app.badRequestResponse(w, r, fmt.Errorf("a selection already exists for this session"))
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

	unavailable := make(map[string]bool)
	for _, label := range domain.BaselineReservedSeats(showtimeId.String()) {
		unavailable[label] = true
	}

	bookedSeats, err := app.bookingRepo.SeatLabelsByShowtime(r.Context(), showtimeId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	for _, label := range bookedSeats {
		unavailable[label] = true
	}

	for _, seat := range input.Seats {
		if unavailable[seat] {
			logger.Warn("selection conflict, seat already reserved", "seat", seat)
			app.editConflictResponseWithErr(w, r, fmt.Errorf("seat %s is already reserved", seat))
			return
		}
	}

	selection := domain.NewSelection(showtimeId, input.Seats, showtime.BasePrice, domain.DefaultTierConfig())
	selection.MovieTitle = showtime.MovieTitle
	selection.PosterURL = showtime.PosterUrl
	selection.ShowtimeDisplay = showtime.StartsAt.Format(time.RFC1123)
	selection.City = showtime.City
	selection.CinemaName = showtime.CinemaName
	selection.Auditorium = showtime.Auditorium

	err = app.storeSelection(r.Context(), sessionID, &selection)
	if err != nil {
		logger.Error("failed to store selection", "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.SelectionResponse{Selection: toApiSelection(&selection)}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteSelection(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeId, err := app.readUUIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sessionID := app.sessionManager.Token(r.Context())

	selection, selectionId, err := app.getSessionSelection(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelectionNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if selection.ShowtimeID != showtimeId {
		logger.Warn(
			"selection deletion attempt with mismatched showtime ID in URL",
			"selection_showtime_id", selection.ShowtimeID,
			"url_showtime_id", showtimeId,
		)
		app.notFoundResponse(w, r)
		return
	}

	pipe := app.redis.TxPipeline()
	pipe.Del(r.Context(), selectionId)
	pipe.Del(r.Context(), selectionSessionKey(sessionID))

	_, err = pipe.Exec(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) storeSelection(ctx context.Context, sessionID string, selection *domain.Selection) error {
	selectionBytes, err := json.Marshal(selection)
	if err != nil {
		return err
	}

	pipe := app.redis.TxPipeline()
	pipe.Set(ctx, selectionSessionKey(sessionID), selection.ID.String(), selectionTTL)
	pipe.Set(ctx, selection.ID.String(), selectionBytes, selectionTTL)

	_, err = pipe.Exec(ctx)

	return err
}

// getSessionSelection resolves the selection bound to the session, cleaning
// up a dangling pointer key when the selection blob has already expired.
func (app *Application) getSessionSelection(ctx context.Context, sessionID string) (*domain.Selection, string, error) {
	selectionId, err := app.redis.Get(ctx, selectionSessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", domain.ErrSelectionNotFound
		}
		return nil, "", err
	}

	selectionBytes, err := app.redis.Get(ctx, selectionId).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			app.logger.Warn("dangling selection session key found and cleaned up", "selection_id", selectionId)
			app.redis.Del(ctx, selectionSessionKey(sessionID))
			return nil, "", domain.ErrSelectionNotFound
		}
		return nil, "", err
	}

	var selection domain.Selection

	err = json.Unmarshal(selectionBytes, &selection)
	if err != nil {
		return nil, "", fmt.Errorf("unmarshaling selection %s: %w", selectionId, err)
	}

	return &selection, selectionId, nil
}

func (app *Application) deleteSessionSelection(ctx context.Context, sessionID, selectionId string) error {
	pipe := app.redis.TxPipeline()
	pipe.Del(ctx, selectionId)
	pipe.Del(ctx, selectionSessionKey(sessionID))

	_, err := pipe.Exec(ctx)

	return err
}

// migrateSessionSelection re-binds the selection pointer after a session
// token renewal, preserving the remaining TTL.
func (app *Application) migrateSessionSelection(ctx context.Context, oldSessionId, newSessionId string) error {
	selectionId, err := app.redis.Get(ctx, selectionSessionKey(oldSessionId)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to get selection ID for session %s: %w", oldSessionId, err)
	}

	ttl, err := app.redis.TTL(ctx, selectionId).Result()
	if err != nil {
		return fmt.Errorf("failed to get TTL for selection %s: %w", selectionId, err)
	}

	if ttl <= 0 {
		// Key either doesn't exist (-2) or is persistent (-1), nothing to move.
		return nil
	}

	pipe := app.redis.TxPipeline()
	pipe.Set(ctx, selectionSessionKey(newSessionId), selectionId, ttl)
	pipe.Del(ctx, selectionSessionKey(oldSessionId))

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate selection to session %s: %w", newSessionId, err)
	}

	return nil
}

func toApiSelection(selection *domain.Selection) api.Selection {
	seats := make([]api.SelectionSeat, len(selection.Seats))

	for i, label := range selection.Seats {
		seats[i] = api.SelectionSeat{
			Label: label,
			Price: selection.SeatPrices[label],
		}
	}

	return api.Selection{
		SelectionId:  selection.ID,
		ShowtimeId:   selection.ShowtimeID,
		MovieTitle:   selection.MovieTitle,
		PosterUrl:    selection.PosterURL,
		ShowtimeDate: selection.ShowtimeDisplay,
		City:         selection.City,
		CinemaName:   selection.CinemaName,
		Auditorium:   selection.Auditorium,
		Seats:        seats,
		TotalPrice:   selection.Total,
		HoldTime:     int(selectionTTL.Seconds()),
	}
}
