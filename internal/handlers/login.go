package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aprilmaraat/simple-account-api/internal/models"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, req models.LoginRequest) models.Response[struct{}]
}

// NewLoginHandler returns an HTTP handler for the login existence check.
// No token or credential material is issued.
// @Summary User login
// @Description Checks whether a user exists with the exact email and password.
// @Tags user
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login request"
// @Success 200 {object} models.Response[struct{}] "Match found"
// @Failure 400 {object} models.Response[struct{}] "No match / invalid request"
// @Failure 500 {object} models.Response[struct{}] "Storage failure"
// @Router /api/user/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.NewError[struct{}]("invalid request body"))
			return
		}

		resp := svc.Login(r.Context(), req)

		switch resp.State {
		case models.StateException:
			w.WriteHeader(http.StatusInternalServerError)
		case models.StateError:
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
