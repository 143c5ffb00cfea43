package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"auth_api/dto"
	"auth_api/internal/usecase"
	"auth_api/middleware"
	"auth_api/utils"
)

const stateCookie = "oauthState"

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	refreshTTL  time.Duration
	production  bool
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, refreshTTL time.Duration, production bool) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		refreshTTL:  refreshTTL,
		production:  production,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input dto.Register
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authUsecase.Register(r.Context(), &input)
	if err != nil {
		utils.WriteApiError(w, err, h.production)
		return
	}

	utils.SetAuthCookies(w, result.AccessToken, result.RefreshToken, h.refreshTTL, h.production)
	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User registered successfully",
		"user":    result.User,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input dto.Login
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authUsecase.Login(r.Context(), &input)
	if err != nil {
		utils.WriteApiError(w, err, h.production)
		return
	}

	utils.SetAuthCookies(w, result.AccessToken, result.RefreshToken, h.refreshTTL, h.production)
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"user":    result.User,
	})
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var input dto.GoogleLogin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.IDToken == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing idToken")
		return
	}

	result, err := h.authUsecase.GoogleLogin(r.Context(), input.IDToken)
	if err != nil {
		utils.WriteApiError(w, err, h.production)
		return
	}

	utils.SetAuthCookies(w, result.AccessToken, result.RefreshToken, h.refreshTTL, h.production)
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Google login successful",
		"user":    result.User,
	})
}

// GoogleOAuthLogin starts the web redirect flow. The state nonce is pinned
// in a short-lived cookie and checked on callback.
func (h *AuthHandler) GoogleOAuthLogin(w http.ResponseWriter, r *http.Request) {
	state := utils.GenerateState()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.authUsecase.GoogleLoginURL(state), http.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteError(w, http.StatusBadRequest, "No code provided")
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		utils.WriteError(w, http.StatusBadRequest, "Invalid state")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	result, err := h.authUsecase.GoogleCallback(r.Context(), code)
	if err != nil {
		utils.WriteApiError(w, err, h.production)
		return
	}

	utils.SetAuthCookies(w, result.AccessToken, result.RefreshToken, h.refreshTTL, h.production)
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Google login successful",
		"user":    result.User,
	})
}

// RefreshToken reads the refresh token from the cookie, falling back to
// the body for cookie-less clients. The rotated pair goes out as cookies;
// the body repeats only the access token.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(utils.RefreshTokenCookie); err == nil {
		token = cookie.Value
	} else {
		var input dto.RefreshToken
		if err := json.NewDecoder(r.Body).Decode(&input); err == nil {
			token = input.RefreshToken
		}
	}

	result, err := h.authUsecase.RefreshAccessToken(r.Context(), token)
	if err != nil {
		utils.WriteApiError(w, err, h.production)
		return
	}

	utils.SetAuthCookies(w, result.AccessToken, result.RefreshToken, h.refreshTTL, h.production)
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"accessToken": result.AccessToken,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid access token")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), claims.UserID); err != nil {
		utils.WriteApiError(w, err, h.production)
		return
	}

	utils.ClearAuthCookies(w, h.production)
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid access token")
		return
	}

	var input dto.ChangePassword
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authUsecase.ChangePassword(r.Context(), claims.UserID, &input); err != nil {
		utils.WriteApiError(w, err, h.production)
		return
	}

	// the session was revoked along with the old password
	utils.ClearAuthCookies(w, h.production)
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Password changed successfully",
	})
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid access token")
		return
	}

	user, err := h.authUsecase.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		utils.WriteApiError(w, err, h.production)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}
