package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Behramm10/Cine-Flow/api"
	"github.com/Behramm10/Cine-Flow/internal/domain"
)

// Checkout charges the session's selection and confirms it into a booking.
// The prices captured at selection time are what the user pays, regardless
// of any base price change since.
func (app *Application) Checkout(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	userId := app.contextGetUserId(r)
	sessionID := app.sessionManager.Token(r.Context())

	selection, selectionId, err := app.getSessionSelection(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelectionNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("there is no selection bound to the current session"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	_, err = app.paymentProvider.Charge(r.Context(), userId, selection.Total, domain.BookingCurrency)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPaymentDeclined):
			logger.Warn("payment declined during checkout", "selection_id", selectionId)
			app.errorResponse(w, r, http.StatusPaymentRequired, "Payment was declined")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	booking, err := app.bookingEngine.Confirm(r.Context(), userId, selection)
	if err != nil {
		var partialErr *domain.PartialCommitError

		switch {
		case errors.Is(err, domain.ErrInvalidSelection):
			app.badRequestResponse(w, r, fmt.Errorf("the selection is incomplete and cannot be confirmed"))

		case errors.Is(err, domain.ErrConfirmInFlight):
			logger.Warn("duplicate confirm attempt for in-flight selection", "selection_id", selectionId)
			app.editConflictResponseWithErr(w, r, fmt.Errorf("this selection is already being confirmed"))

		case errors.Is(err, domain.ErrSeatAlreadyReserved):
			logger.Warn("checkout conflict, selected seats were booked meanwhile", "selection_id", selectionId)
			app.editConflictResponseWithErr(w, r, fmt.Errorf("some of the selected seats are already reserved"))

		case errors.As(err, &partialErr):
			logger.Error(
				"booking left partially committed",
				"booking_id", partialErr.BookingID,
				"error", err,
			)
			app.serverErrorResponse(w, r, err)

		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.deleteSessionSelection(r.Context(), sessionID, selectionId)
	if err != nil {
		// The selection expires on its own; a failed cleanup must not undo a
		// confirmed booking.
		logger.Warn("failed to clean up selection after checkout", "selection_id", selectionId, "error", err)
	}

	app.sendBookingConfirmationMail(r, booking, selection)

	resp := api.CheckoutResponse{
		BookingId:     booking.ID,
		TotalAmount:   booking.TotalAmount,
		Currency:      booking.Currency,
		Status:        booking.Status,
		TicketPayload: booking.TicketPayload(),
		CreatedAt:     booking.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendBookingConfirmationMail(
	r *http.Request,
	booking *domain.Booking,
	selection *domain.Selection) {

	logger := app.contextGetLogger(r)

	user, err := app.userRepo.GetById(r.Context(), booking.UserID)
	if err != nil {
		logger.Error("failed to load user for confirmation mail", "error", err)
		return
	}

	data := map[string]any{
		"Name":            user.Name,
		"MovieTitle":      selection.MovieTitle,
		"CinemaName":      selection.CinemaName,
		"City":            selection.City,
		"ShowtimeDisplay": selection.ShowtimeDisplay,
		"Seats":           selection.Seats,
		"Total":           booking.TotalAmount.StringFixed(2),
		"Currency":        booking.Currency,
		"BookingID":       booking.ID.String(),
	}

	app.background(logger, func() {
		err := app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
		if err != nil {
			logger.Error("failed to send booking confirmation email", "error", err)
			return
		}

		logger.Info("booking confirmation email sent", "booking_id", booking.ID)
	})
}

func (app *Application) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)
	pagination := app.readPagination(r)

	summaries, metadata, err := app.bookingRepo.GetSummariesByUserId(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	bookings := make([]api.Booking, len(summaries))
	for i, v := range summaries {
		bookings[i] = toApiBooking(v)
	}

	resp := api.BookingsResponse{
		Bookings: bookings,
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookingById(w http.ResponseWriter, r *http.Request) {
	bookingId, err := app.readUUIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	summary, err := app.bookingRepo.GetByIdAndUserId(r.Context(), bookingId, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.BookingResponse{Booking: toApiBooking(*summary)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiBooking(summary domain.BookingSummary) api.Booking {
	return api.Booking{
		BookingId:    summary.BookingID,
		MovieTitle:   summary.MovieTitle,
		PosterUrl:    summary.PosterURL,
		ShowtimeDate: summary.ShowtimeDate,
		City:         summary.City,
		CinemaName:   summary.CinemaName,
		Auditorium:   summary.Auditorium,
		Seats:        summary.SeatLabels,
		TotalAmount:  summary.TotalAmount,
		Currency:     summary.Currency,
		Status:       summary.Status,
		CreatedAt:    summary.CreatedAt,
	}
}
