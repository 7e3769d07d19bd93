package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/skip2/go-qrcode"

	"github.com/Behramm10/Cine-Flow/internal/domain"
)

const ticketQRSize = 256

// GetTicketQR renders the booking's digital ticket as a QR code PNG. The
// encoded payload is the stable "cineflow:<bookingId>" string that entrance
// scanners verify.
func (app *Application) GetTicketQR(w http.ResponseWriter, r *http.Request) {
	bookingId, err := app.readUUIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	// Ownership check doubles as existence check.
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

	payload := fmt.Sprintf("%s:%s", domain.TicketPrefix, summary.BookingID)

	png, err := qrcode.Encode(payload, qrcode.Medium, ticketQRSize)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
