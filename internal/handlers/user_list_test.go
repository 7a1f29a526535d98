package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/aprilmaraat/simple-account-api/internal/models"
)

func TestUserListHandler(t *testing.T) {
	users := []models.User{
		{ID: 1, Email: "a@x.com"},
		{ID: 2, Email: "b@x.com"},
	}

	tests := []struct {
		name         string
		mockSetup    func(m *MockLister)
		expectedCode int
		expectedLen  int
	}{
		{
			name: "success",
			mockSetup: func(m *MockLister) {
				m.EXPECT().List(gomock.Any()).Return(models.NewSuccess(&users))
			},
			expectedCode: 200,
			expectedLen:  2,
		},
		{
			name: "storage failure",
			mockSetup: func(m *MockLister) {
				m.EXPECT().List(gomock.Any()).Return(models.NewException[[]models.User](errors.New("db error")))
			},
			expectedCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockLister(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewUserListHandler(mockSvc)
			req := httptest.NewRequest(http.MethodGet, "/api/user/user-list", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp models.Response[[]models.User]
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			if tt.expectedCode == 200 {
				assert.Equal(t, models.StateSuccess, resp.State)
				assert.Len(t, *resp.Data, tt.expectedLen)
			} else {
				assert.Equal(t, models.StateException, resp.State)
				assert.Equal(t, "db error", resp.Message)
			}
		})
	}
}
