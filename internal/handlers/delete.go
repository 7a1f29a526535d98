package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aprilmaraat/simple-account-api/internal/models"
)

// Deleter defines the interface that the delete service must implement.
type Deleter interface {
	Delete(ctx context.Context, id int64) models.Response[struct{}]
}

// NewDeleteHandler returns an HTTP handler for deleting a user.
// @Summary Delete a user
// @Description Removes the user with the given id.
// @Tags user
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} models.Response[struct{}] "User deleted"
// @Failure 400 {object} models.Response[struct{}] "Missing user / invalid id"
// @Failure 500 {object} models.Response[struct{}] "Storage failure"
// @Router /api/user/delete/{id} [delete]
func NewDeleteHandler(svc Deleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.NewError[struct{}]("invalid user id"))
			return
		}

		resp := svc.Delete(r.Context(), id)

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
