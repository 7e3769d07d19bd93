package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Behramm10/Cine-Flow/api"
	"github.com/Behramm10/Cine-Flow/internal/booking"
	"github.com/Behramm10/Cine-Flow/internal/domain"
	"github.com/Behramm10/Cine-Flow/internal/mocks"
	"github.com/Behramm10/Cine-Flow/internal/payment"
)

type mockPaymentProvider struct {
	ChargeFunc func(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, currency string) (*payment.Result, error)
}

func (m *mockPaymentProvider) Charge(
	ctx context.Context,
	userID uuid.UUID,
	amount decimal.Decimal,
	currency string) (*payment.Result, error) {

	if m.ChargeFunc != nil {
		return m.ChargeFunc(ctx, userID, amount, currency)
	}

	return &payment.Result{Reference: "sim_test", ChargedAt: time.Now()}, nil
}

type CheckoutTestSuite struct {
	suite.Suite
	app           *Application
	bookingRepo   *mocks.MockBookingRepo
	seatFeed      *mocks.MockSeatFeed
	userRepo      *mocks.MockUserRepo
	redisClient   *mocks.MockRedisClient
	redisPipeline *mocks.MockTxPipeline
	provider      *mockPaymentProvider

	userId    uuid.UUID
	selection domain.Selection
}

func (s *CheckoutTestSuite) SetupTest() {
	s.bookingRepo = new(mocks.MockBookingRepo)
	s.seatFeed = mocks.NewMockSeatFeed()
	s.userRepo = &mocks.MockUserRepo{}
	s.redisClient = new(mocks.MockRedisClient)
	s.redisPipeline = new(mocks.MockTxPipeline)
	s.provider = &mockPaymentProvider{}

	s.userId = uuid.New()

	s.userRepo.GetByIdFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return &domain.User{ID: id, Name: "Asha Rao", Email: "asha@example.com"}, nil
	}

	s.selection = domain.NewSelection(
		uuid.New(),
		[]string{"D4", "D5"},
		decimal.NewFromInt(200),
		domain.DefaultTierConfig(),
	)
	s.selection.MovieTitle = "Dune"
	s.selection.ShowtimeDisplay = "Sat, 05 Sep 2026 18:30:00 IST"
	s.selection.City = "Pune"
	s.selection.CinemaName = "Galaxy Central"
	s.selection.Auditorium = "Audi 1"

	s.app = newTestApplication(func(a *Application) {
		a.bookingRepo = s.bookingRepo
		a.seatFeed = s.seatFeed
		a.userRepo = s.userRepo
		a.redis = s.redisClient
		a.sessionManager = scs.New()
		a.bookingEngine = booking.NewEngine(s.bookingRepo, s.seatFeed, a.logger)
		a.paymentProvider = s.provider
	})
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

func (s *CheckoutTestSuite) stubSelection(selection *domain.Selection) {
	selectionBytes, err := json.Marshal(selection)
	s.Require().NoError(err)

	s.redisClient.On("Get", mock.Anything, selectionSessionKey("")).
		Return(redis.NewStringResult(selection.ID.String(), nil)).Once()
	s.redisClient.On("Get", mock.Anything, selection.ID.String()).
		Return(redis.NewStringResult(string(selectionBytes), nil)).Once()
}

func (s *CheckoutTestSuite) checkout() *httptest.ResponseRecorder {
	w, r := executeRequest(s.T(), http.MethodPost, "/checkout", nil)
	r = setupTestSession(s.T(), s.app, r, s.userId)
	r = setupAuthContext(r, s.userId)

	s.app.Checkout(w, r)

	return w
}

func (s *CheckoutTestSuite) TestCheckout_NoSelection() {
	s.redisClient.On("Get", mock.Anything, mock.Anything).Return(redis.NewStringResult("", redis.Nil)).Once()

	w := s.checkout()

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *CheckoutTestSuite) TestCheckout_PaymentDeclined() {
	s.stubSelection(&s.selection)

	s.provider.ChargeFunc = func(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, currency string) (*payment.Result, error) {
		return nil, domain.ErrPaymentDeclined
	}

	w := s.checkout()

	s.Equal(http.StatusPaymentRequired, w.Code)
	s.bookingRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *CheckoutTestSuite) TestCheckout_IncompleteSelection() {
	incomplete := domain.NewSelection(
		uuid.New(),
		[]string{"A1"},
		decimal.NewFromInt(200),
		domain.DefaultTierConfig(),
	)
	// No city or cinema captured: the engine must refuse to confirm it.
	s.stubSelection(&incomplete)

	w := s.checkout()

	s.Equal(http.StatusBadRequest, w.Code)
	s.bookingRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *CheckoutTestSuite) TestCheckout_SeatConflict() {
	s.stubSelection(&s.selection)

	bookingId := uuid.New()

	s.bookingRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			b := args.Get(1).(*domain.Booking)
			b.ID = bookingId
			b.CreatedAt = time.Now()
		}).
		Return(nil).Once()
	s.bookingRepo.On("InsertSeats", mock.Anything, mock.Anything).
		Return(domain.ErrSeatAlreadyReserved).Once()
	s.bookingRepo.On("Delete", mock.Anything, bookingId).Return(nil).Once()

	w := s.checkout()

	s.Equal(http.StatusConflict, w.Code)
	s.bookingRepo.AssertNumberOfCalls(s.T(), "Delete", 1)
}

func (s *CheckoutTestSuite) TestCheckout_Success() {
	s.stubSelection(&s.selection)

	bookingId := uuid.New()
	createdAt := time.Now()

	s.bookingRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			b := args.Get(1).(*domain.Booking)
			b.ID = bookingId
			b.CreatedAt = createdAt
		}).
		Return(nil).Once()
	s.bookingRepo.On("InsertSeats", mock.Anything, mock.Anything).Return(nil).Once()

	s.redisClient.On("TxPipeline").Return(s.redisPipeline).Once()
	s.redisPipeline.On("Del", mock.Anything, mock.Anything).Return(redis.NewIntResult(1, nil)).Twice()
	s.redisPipeline.On("Exec", mock.Anything).Return([]redis.Cmder{}, nil).Once()

	w := s.checkout()

	s.Require().Equal(http.StatusCreated, w.Code)

	var resp api.CheckoutResponse
	s.NoError(json.NewDecoder(w.Body).Decode(&resp))

	s.Equal(bookingId, resp.BookingId)
	s.Equal(domain.BookingStatusConfirmed, resp.Status)
	s.Equal(domain.BookingCurrency, resp.Currency)
	s.True(s.selection.Total.Equal(resp.TotalAmount))
	s.Equal("cineflow:"+bookingId.String(), resp.TicketPayload)

	s.bookingRepo.AssertExpectations(s.T())
	s.redisPipeline.AssertExpectations(s.T())
}

func (s *CheckoutTestSuite) TestGetUserBookings() {
	summary := domain.BookingSummary{
		BookingID:    uuid.New(),
		MovieTitle:   "Dune",
		City:         "Pune",
		CinemaName:   "Galaxy Central",
		Auditorium:   "Audi 1",
		SeatLabels:   []string{"D4", "D5"},
		TotalAmount:  decimal.NewFromInt(600),
		Currency:     domain.BookingCurrency,
		Status:       domain.BookingStatusConfirmed,
		ShowtimeDate: time.Now().Add(48 * time.Hour),
		CreatedAt:    time.Now(),
	}

	s.bookingRepo.On("GetSummariesByUserId", mock.Anything, s.userId, domain.Pagination{Page: 1, PageSize: 10}).
		Return([]domain.BookingSummary{summary}, domain.NewMetadata(1, 1, 10), nil).Once()

	w, r := executeRequest(s.T(), http.MethodGet, "/users/me/bookings", nil)
	r = setupAuthContext(r, s.userId)

	s.app.GetUserBookings(w, r)

	s.Require().Equal(http.StatusOK, w.Code)

	var resp api.BookingsResponse
	s.NoError(json.NewDecoder(w.Body).Decode(&resp))

	s.Require().Len(resp.Bookings, 1)
	s.Equal(summary.BookingID, resp.Bookings[0].BookingId)
	s.Equal([]string{"D4", "D5"}, resp.Bookings[0].Seats)
	s.Equal(1, resp.Metadata.TotalRecords)
}

func (s *CheckoutTestSuite) TestGetUserBookingById() {
	s.Run("should 404 for another user's booking", func() {
		bookingId := uuid.New()

		s.bookingRepo.On("GetByIdAndUserId", mock.Anything, bookingId, s.userId).
			Return(nil, domain.ErrRecordNotFound).Once()

		w, r := executeRequest(s.T(), http.MethodGet, "/users/me/bookings/"+bookingId.String(), nil)
		r = withUrlParam(r, "bookingId", bookingId.String())
		r = setupAuthContext(r, s.userId)

		s.app.GetUserBookingById(w, r)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("should return the booking detail", func() {
		summary := &domain.BookingSummary{
			BookingID:   uuid.New(),
			MovieTitle:  "Dune",
			SeatLabels:  []string{"G7"},
			TotalAmount: decimal.NewFromInt(400),
			Currency:    domain.BookingCurrency,
			Status:      domain.BookingStatusConfirmed,
		}

		s.bookingRepo.On("GetByIdAndUserId", mock.Anything, summary.BookingID, s.userId).
			Return(summary, nil).Once()

		w, r := executeRequest(s.T(), http.MethodGet, "/users/me/bookings/"+summary.BookingID.String(), nil)
		r = withUrlParam(r, "bookingId", summary.BookingID.String())
		r = setupAuthContext(r, s.userId)

		s.app.GetUserBookingById(w, r)

		s.Require().Equal(http.StatusOK, w.Code)

		var resp api.BookingResponse
		s.NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal(summary.BookingID, resp.Booking.BookingId)
		s.Equal([]string{"G7"}, resp.Booking.Seats)
	})
}
