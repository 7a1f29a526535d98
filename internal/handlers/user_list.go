package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aprilmaraat/simple-account-api/internal/models"
)

// Lister defines the interface that the user list service must implement.
type Lister interface {
	List(ctx context.Context) models.Response[[]models.User]
}

// NewUserListHandler returns an HTTP handler for listing all users.
// @Summary List users
// @Description Returns every user account in storage order.
// @Tags user
// @Produce json
// @Success 200 {object} models.Response[[]models.User] "User list envelope"
// @Failure 500 {object} models.Response[[]models.User] "Storage failure"
// @Router /api/user/user-list [get]
func NewUserListHandler(svc Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := svc.List(r.Context())

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
