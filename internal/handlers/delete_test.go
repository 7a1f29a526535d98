package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/aprilmaraat/simple-account-api/internal/models"
)

func newDeleteRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/api/user/delete/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestDeleteHandler(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		mockSetup    func(m *MockDeleter)
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			id:   "1",
			mockSetup: func(m *MockDeleter) {
				m.EXPECT().Delete(gomock.Any(), int64(1)).Return(models.NewSuccess[struct{}](nil))
			},
			expectedCode: 200,
		},
		{
			name: "missing user",
			id:   "42",
			mockSetup: func(m *MockDeleter) {
				m.EXPECT().Delete(gomock.Any(), int64(42)).Return(models.NewError[struct{}]("User doesn't exist."))
			},
			expectedCode: 400,
			expectedMsg:  "User doesn't exist.",
		},
		{
			name:         "invalid id",
			id:           "abc",
			mockSetup:    func(m *MockDeleter) {},
			expectedCode: 400,
			expectedMsg:  "invalid user id",
		},
		{
			name: "storage failure",
			id:   "1",
			mockSetup: func(m *MockDeleter) {
				m.EXPECT().Delete(gomock.Any(), int64(1)).Return(models.NewException[struct{}](errors.New("db error")))
			},
			expectedCode: 500,
			expectedMsg:  "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockDeleter(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewDeleteHandler(mockSvc)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, newDeleteRequest(tt.id))

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp models.Response[struct{}]
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}
}
