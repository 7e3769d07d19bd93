package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Behramm10/Cine-Flow/api"
	"github.com/Behramm10/Cine-Flow/internal/domain"
	"github.com/Behramm10/Cine-Flow/internal/mocks"
)

type AuthTestSuite struct {
	suite.Suite
	app         *Application
	userRepo    *mocks.MockUserRepo
	redisClient *mocks.MockRedisClient
}

func (s *AuthTestSuite) SetupTest() {
	s.userRepo = &mocks.MockUserRepo{}
	s.redisClient = new(mocks.MockRedisClient)

	s.app = newTestApplication(func(a *Application) {
		a.userRepo = s.userRepo
		a.sessionManager = scs.New()
		a.redis = s.redisClient
	})
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

func (s *AuthTestSuite) TestRegisterUser() {
	tests := []struct {
		name           string
		input          api.RegisterUserRequest
		createFunc     func(ctx context.Context, user *domain.User) error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "should fail when email is invalid",
			input: api.RegisterUserRequest{
				Name:     "Asha Rao",
				Email:    "not-an-email",
				Password: "SecurePass1!",
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be a valid email address",
		},
		{
			name: "should fail when password is weak",
			input: api.RegisterUserRequest{
				Name:     "Asha Rao",
				Email:    "asha@example.com",
				Password: "password",
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantErrMessage: "must be at least 8 characters long and include at least one uppercase letter, one lowercase letter, " +
				"one number, and one special character (!@#$%^&*).",
		},
		{
			name: "should not reveal that the email already exists",
			input: api.RegisterUserRequest{
				Name:     "Asha Rao",
				Email:    "asha@example.com",
				Password: "SecurePass1!",
			},
			createFunc: func(ctx context.Context, user *domain.User) error {
				return domain.ErrUserAlreadyExists
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid input data",
		},
		{
			name: "should create user successfully",
			input: api.RegisterUserRequest{
				Name:     "Asha Rao",
				Email:    "asha@example.com",
				Password: "SecurePass1!",
			},
			createFunc: func(ctx context.Context, user *domain.User) error {
				user.ID = uuid.New()
				user.CreatedAt = time.Now()
				return nil
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.userRepo.CreateFunc = tt.createFunc

			w, r := executeRequest(s.T(), http.MethodPost, "/users", tt.input)

			s.app.RegisterUser(w, r)

			s.Equal(tt.wantStatus, w.Code)

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})

			if tt.wantStatus == http.StatusCreated {
				var resp api.UserResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.NotEqual(uuid.Nil, resp.Id)
				s.Equal(tt.input.Email, resp.Email)
			}
		})
	}
}

func (s *AuthTestSuite) TestLogin() {
	user := &domain.User{
		ID:    uuid.New(),
		Name:  "Asha Rao",
		Email: "asha@example.com",
	}
	s.NoError(user.Password.Set("SecurePass1!"))

	s.redisClient.On("Get", mock.Anything, mock.Anything).Return(redis.NewStringResult("", redis.Nil))

	tests := []struct {
		name           string
		input          api.LoginRequest
		getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
		wantStatus     int
	}{
		{
			name:       "should reject malformed email",
			input:      api.LoginRequest{Email: "nope", Password: "SecurePass1!"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "should reject unknown user",
			input: api.LoginRequest{Email: "ghost@example.com", Password: "SecurePass1!"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "should reject wrong password",
			input: api.LoginRequest{Email: "asha@example.com", Password: "WrongPass1!"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return user, nil
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "should log in with valid credentials",
			input: api.LoginRequest{Email: "asha@example.com", Password: "SecurePass1!"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return user, nil
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.userRepo.GetByEmailFunc = tt.getByEmailFunc

			w, r := executeRequest(s.T(), http.MethodPost, "/sessions", tt.input)
			r = setupTestSession(s.T(), s.app, r, uuid.Nil)

			s.app.Login(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusNoContent {
				got := s.app.sessionManager.GetString(r.Context(), SessionKeyUserId.String())
				s.Equal(user.ID.String(), got)
			}
		})
	}
}

func (s *AuthTestSuite) TestLogout() {
	s.Run("should 404 when not logged in", func() {
		w, r := executeRequest(s.T(), http.MethodDelete, "/sessions", nil)
		r = setupTestSession(s.T(), s.app, r, uuid.Nil)

		s.app.Logout(w, r)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("should destroy the session when logged in", func() {
		userId := uuid.New()

		w, r := executeRequest(s.T(), http.MethodDelete, "/sessions", nil)
		r = setupTestSession(s.T(), s.app, r, userId)

		s.app.Logout(w, r)

		s.Equal(http.StatusNoContent, w.Code)
		s.Empty(s.app.sessionManager.GetString(r.Context(), SessionKeyUserId.String()))
	})
}
