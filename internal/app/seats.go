package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Behramm10/Cine-Flow/api"
	"github.com/Behramm10/Cine-Flow/internal/domain"
	"github.com/Behramm10/Cine-Flow/internal/reserved"
)

func (app *Application) GetSeatMapByShowtime(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

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

	// The baseline is always available; a repository failure only degrades
	// the live portion of the reserved set.
	unavailable := make(map[string]bool)
	for _, label := range domain.BaselineReservedSeats(showtimeId.String()) {
		unavailable[label] = true
	}

	degraded := false

	bookedSeats, err := app.bookingRepo.SeatLabelsByShowtime(r.Context(), showtimeId)
	if err != nil {
		logger.Warn("serving baseline-only seat map, booked seats unavailable", "showtime_id", showtimeId, "error", err)
		degraded = true
	}

	for _, label := range bookedSeats {
		unavailable[label] = true
	}

	resp := toSeatMapResponse(showtime, unavailable, degraded)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatMapResponse(showtime *domain.Showtime, unavailable map[string]bool, degraded bool) api.SeatMapResponse {
	tiers := domain.DefaultTierConfig()

	seatRows := make([]api.SeatRow, 0, len(domain.SeatRows))

	for _, row := range domain.SeatRows {
		seatRow := api.SeatRow{Row: string(row)}

		for col := 1; col <= domain.SeatColumns; col++ {
			label := fmt.Sprintf("%c%d", row, col)

			seatRow.Seats = append(seatRow.Seats, api.Seat{
				Label:    label,
				Price:    domain.PriceForSeat(label, showtime.BasePrice, tiers),
				Reserved: unavailable[label],
			})
		}

		seatRows = append(seatRows, seatRow)
	}

	return api.SeatMapResponse{
		ShowtimeId: showtime.ID,
		SeatRows:   seatRows,
		Degraded:   degraded,
	}
}

// seatChangeEvent is the payload of one SSE message on the seat stream.
type seatChangeEvent struct {
	ShowtimeId uuid.UUID `json:"showtimeId"`
	Reserved   []string  `json:"reserved"`
	Degraded   bool      `json:"degraded,omitempty"`
}

// StreamSeatChanges pushes the showtime's reserved seat set to the client
// over server-sent events. An event fires immediately on connect and then on
// every seat change; the stream never carries seat holds, only facts.
func (app *Application) StreamSeatChanges(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeId, err := app.readUUIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.showtimeRepo.GetById(r.Context(), showtimeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		app.serverErrorResponse(w, r, fmt.Errorf("streaming unsupported by the underlying connection"))
		return
	}

	// The server-wide write deadline would cut long-lived streams short.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		logger.Warn("failed to clear write deadline for seat stream", "error", err)
	}

	updates := make(chan struct{}, 1)

	view := reserved.NewView(showtimeId, app.bookingRepo, app.seatFeed, logger, reserved.WithUpdateFunc(func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	}))
	defer view.Close()

	if err := view.Start(r.Context()); err != nil {
		// Baseline-only mode still gives the client a usable stream.
		logger.Warn("seat stream started degraded", "showtime_id", showtimeId, "error", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	writeEvent := func() error {
		event := seatChangeEvent{
			ShowtimeId: showtimeId,
			Reserved:   view.Reserved(),
			Degraded:   view.Degraded(),
		}

		data, err := json.Marshal(event)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(w, "event: seats\ndata: %s\n\n", data)
		if err != nil {
			return err
		}

		flusher.Flush()

		return nil
	}

	if err := writeEvent(); err != nil {
		logger.Warn("failed to write initial seat event", "error", err)
		return
	}

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case <-updates:
			if err := writeEvent(); err != nil {
				logger.Warn("failed to write seat event, closing stream", "error", err)
				return
			}

		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
