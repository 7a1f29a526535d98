package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aprilmaraat/simple-account-api/internal/models"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, user models.User) models.Response[struct{}]
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique email and sends a welcome notification.
// @Tags user
// @Accept json
// @Produce json
// @Param user body models.User true "User data (id is ignored)"
// @Success 200 {object} models.Response[struct{}] "User registered"
// @Failure 400 {object} models.Response[struct{}] "Duplicate email / invalid request"
// @Failure 500 {object} models.Response[struct{}] "Storage failure"
// @Router /api/user/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User

		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.NewError[struct{}]("invalid request body"))
			return
		}

		resp := svc.Register(r.Context(), user)

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
