package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aprilmaraat/simple-account-api/internal/models"
)

// Detailer defines the interface that the user detail service must implement.
type Detailer interface {
	Detail(ctx context.Context, id int64) models.Response[models.User]
}

// NewUserDetailHandler returns an HTTP handler for fetching a single user.
// A missing user is a success with an empty payload, never an error.
// @Summary Get user detail
// @Description Returns the user with the given id; empty payload when absent.
// @Tags user
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} models.Response[models.User] "User envelope"
// @Failure 400 {string} string "Invalid id"
// @Failure 500 {object} models.Response[models.User] "Storage failure"
// @Router /api/user/user-detail/{id} [get]
func NewUserDetailHandler(svc Detailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.NewError[models.User]("invalid user id"))
			return
		}

		resp := svc.Detail(r.Context(), id)

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
