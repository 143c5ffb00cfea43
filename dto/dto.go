package dto

import "auth_api/model"

type Register struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLogin struct {
	IDToken string `json:"idToken"`
}

type RefreshToken struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePassword struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// AuthResult is what the session workflow hands back to the HTTP layer:
// the user plus a freshly issued token pair. Tokens travel to the client
// as cookies, never inside the user object.
type AuthResult struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}
