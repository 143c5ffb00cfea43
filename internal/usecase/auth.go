package usecase

import (
	"context"
	"errors"
	"net/http"

	"auth_api/dto"
	"auth_api/internal/oauth"
	"auth_api/internal/repository"
	"auth_api/model"
	"auth_api/utils"
)

var (
	ErrMissingFields       = utils.NewApiError(http.StatusBadRequest, "All fields are required")
	ErrInvalidEmail        = utils.NewApiError(http.StatusBadRequest, "Invalid email address")
	ErrUserExists          = utils.NewApiError(http.StatusConflict, "User already exists")
	ErrUserNotFound        = utils.NewApiError(http.StatusNotFound, "User not found")
	ErrWrongProvider       = utils.NewApiError(http.StatusBadRequest, "Please login using Google")
	ErrInvalidPassword     = utils.NewApiError(http.StatusUnauthorized, "Invalid password")
	ErrInvalidGoogleToken  = utils.NewApiError(http.StatusUnauthorized, "Invalid Google token")
	ErrMissingRefreshToken = utils.NewApiError(http.StatusUnauthorized, "No refresh token")
	ErrExpiredRefreshToken = utils.NewApiError(http.StatusUnauthorized, "Refresh token invalid or expired")
	ErrInvalidRefreshToken = utils.NewApiError(http.StatusForbidden, "Invalid refresh token")
	ErrInvalidOldPassword  = utils.NewApiError(http.StatusBadRequest, "Invalid old password")
)

// GoogleVerifier is the external identity collaborator. The workflow never
// inspects Google tokens itself.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, rawIDToken string) (*oauth.UserInfo, error)
	LoginURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth.UserInfo, error)
}

type Mailer interface {
	SendWelcome(to, username string)
	SendPasswordChanged(to, username string)
}

type Metrics interface {
	RecordRegistration()
	RecordLogin(method string)
	RecordTokenRefresh()
	RecordAuthFailure(reason string)
}

type AuthUsecase interface {
	Register(ctx context.Context, input *dto.Register) (*dto.AuthResult, error)
	Login(ctx context.Context, input *dto.Login) (*dto.AuthResult, error)
	GoogleLogin(ctx context.Context, idToken string) (*dto.AuthResult, error)
	GoogleLoginURL(state string) string
	GoogleCallback(ctx context.Context, code string) (*dto.AuthResult, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.AuthResult, error)
	Logout(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID string, input *dto.ChangePassword) error
	GetProfile(ctx context.Context, userID string) (*model.User, error)
}

type authUsecase struct {
	userRepo repository.UserRepository
	tokens   *utils.TokenMaker
	google   GoogleVerifier
	mailer   Mailer
	metrics  Metrics
}

func NewAuthUsecase(userRepo repository.UserRepository, tokens *utils.TokenMaker, google GoogleVerifier, mailer Mailer, metrics Metrics) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		google:   google,
		mailer:   mailer,
		metrics:  metrics,
	}
}

func (u *authUsecase) Register(ctx context.Context, input *dto.Register) (*dto.AuthResult, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	if !utils.IsValidEmail(input.Email) {
		return nil, ErrInvalidEmail
	}

	if _, err := u.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		Provider: model.ProviderLocal,
	}
	// the unique email index resolves the duplicate race: a concurrent
	// registration that slipped past the lookup fails here with a
	// duplicate-key error, translated to Conflict at the boundary
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	result, err := u.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	u.recordRegistration()
	if u.mailer != nil {
		u.mailer.SendWelcome(user.Email, user.Username)
	}
	return result, nil
}

func (u *authUsecase) Login(ctx context.Context, input *dto.Login) (*dto.AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := u.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if user.Provider == model.ProviderGoogle {
		return nil, ErrWrongProvider
	}
	if !utils.CheckPassword(user.Password, input.Password) {
		u.recordAuthFailure("bad_password")
		return nil, ErrInvalidPassword
	}

	result, err := u.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	u.recordLogin("password")
	return result, nil
}

func (u *authUsecase) GoogleLogin(ctx context.Context, idToken string) (*dto.AuthResult, error) {
	info, err := u.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		u.recordAuthFailure("google_token")
		return nil, ErrInvalidGoogleToken
	}
	return u.loginGoogleUser(ctx, info)
}

func (u *authUsecase) GoogleLoginURL(state string) string {
	return u.google.LoginURL(state)
}

func (u *authUsecase) GoogleCallback(ctx context.Context, code string) (*dto.AuthResult, error) {
	info, err := u.google.Exchange(ctx, code)
	if err != nil {
		u.recordAuthFailure("google_exchange")
		return nil, ErrInvalidGoogleToken
	}
	return u.loginGoogleUser(ctx, info)
}

// loginGoogleUser finds or creates the account for a verified Google
// identity. Accounts created here have no password and can never take the
// password login path.
func (u *authUsecase) loginGoogleUser(ctx context.Context, info *oauth.UserInfo) (*dto.AuthResult, error) {
	user, err := u.userRepo.FindByEmail(ctx, info.Email)
	if errors.Is(err, repository.ErrNotFound) {
		user = &model.User{
			Username: info.Name,
			Email:    info.Email,
			Provider: model.ProviderGoogle,
			GoogleID: info.Subject,
		}
		if err := u.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		u.recordRegistration()
	} else if err != nil {
		return nil, err
	}

	result, err := u.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	u.recordLogin("google")
	return result, nil
}

// RefreshAccessToken verifies the presented refresh token, then rotates it
// with a compare-and-swap against the stored one. A superseded or revoked
// token fails the swap and is rejected.
func (u *authUsecase) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.AuthResult, error) {
	if refreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	claims, err := u.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		u.recordAuthFailure("refresh_verify")
		return nil, ErrExpiredRefreshToken
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, err
	}

	access, refresh, err := u.tokens.GeneratePair(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	err = u.userRepo.RotateRefreshToken(ctx, user.ID.Hex(), refreshToken, refresh)
	if errors.Is(err, repository.ErrTokenMismatch) {
		u.recordAuthFailure("refresh_reuse")
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, err
	}

	u.recordTokenRefresh()
	return &dto.AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// Logout clears the stored refresh token. Logging out twice is fine.
func (u *authUsecase) Logout(ctx context.Context, userID string) error {
	err := u.userRepo.UpdateRefreshToken(ctx, userID, "")
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// ChangePassword replaces the hash and revokes the current session, so a
// stolen refresh token dies with the old password.
func (u *authUsecase) ChangePassword(ctx context.Context, userID string, input *dto.ChangePassword) error {
	if input.OldPassword == "" || input.NewPassword == "" {
		return ErrMissingFields
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if user.Provider == model.ProviderGoogle {
		return ErrWrongProvider
	}
	if !utils.CheckPassword(user.Password, input.OldPassword) {
		u.recordAuthFailure("bad_old_password")
		return ErrInvalidOldPassword
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}
	if err := u.userRepo.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return err
	}

	if u.mailer != nil {
		u.mailer.SendPasswordChanged(user.Email, user.Username)
	}
	return nil
}

func (u *authUsecase) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// issueSession mints a token pair and stores the refresh token, making it
// the user's single live session. The token is handed out only after the
// store succeeded.
func (u *authUsecase) issueSession(ctx context.Context, user *model.User) (*dto.AuthResult, error) {
	access, refresh, err := u.tokens.GeneratePair(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	if err := u.userRepo.UpdateRefreshToken(ctx, user.ID.Hex(), refresh); err != nil {
		return nil, err
	}
	user.RefreshToken = refresh
	return &dto.AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (u *authUsecase) recordRegistration() {
	if u.metrics != nil {
		u.metrics.RecordRegistration()
	}
}

func (u *authUsecase) recordLogin(method string) {
	if u.metrics != nil {
		u.metrics.RecordLogin(method)
	}
}

func (u *authUsecase) recordTokenRefresh() {
	if u.metrics != nil {
		u.metrics.RecordTokenRefresh()
	}
}

func (u *authUsecase) recordAuthFailure(reason string) {
	if u.metrics != nil {
		u.metrics.RecordAuthFailure(reason)
	}
}
