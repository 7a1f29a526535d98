package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aprilmaraat/simple-account-api/internal/models"
)

// Updater defines the interface that the update service must implement.
type Updater interface {
	Update(ctx context.Context, user models.User) models.Response[models.User]
}

// NewUpdateHandler returns an HTTP handler for updating a user.
// @Summary Update a user
// @Description Overwrites first name, last name and password of an existing user. The stored email is kept.
// @Tags user
// @Accept json
// @Produce json
// @Param user body models.User true "User data with id"
// @Success 200 {object} models.Response[models.User] "Updated user envelope"
// @Failure 400 {object} models.Response[models.User] "Missing user / email taken / invalid request"
// @Failure 500 {object} models.Response[models.User] "Storage failure"
// @Router /api/user/update [put]
func NewUpdateHandler(svc Updater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User

		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.NewError[models.User]("invalid request body"))
			return
		}

		resp := svc.Update(r.Context(), user)

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
