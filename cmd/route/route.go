package route

import (
	"net/http"

	"auth_api/internal/handler"
	"auth_api/utils"

	"github.com/gorilla/mux"
)

func SetupRoute(auth *handler.AuthHandler, authMW func(http.Handler) http.Handler, metricsHandler http.Handler) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/users").Subrouter()
	api.HandleFunc("/register", auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/google-login", auth.GoogleLogin).Methods(http.MethodPost)
	api.HandleFunc("/refresh-token", auth.RefreshToken).Methods(http.MethodPost)

	// google web redirect flow
	api.HandleFunc("/google/login", auth.GoogleOAuthLogin).Methods(http.MethodGet)
	api.HandleFunc("/google/callback", auth.GoogleOAuthCallback).Methods(http.MethodGet)

	secure := api.NewRoute().Subrouter()
	secure.Use(authMW)
	secure.HandleFunc("/logout", auth.Logout).Methods(http.MethodPost)
	secure.HandleFunc("/change-password", auth.ChangePassword).Methods(http.MethodPost)
	secure.HandleFunc("/get-profile", auth.GetProfile).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)

	return r
}
