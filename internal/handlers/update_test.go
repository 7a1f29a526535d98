package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/aprilmaraat/simple-account-api/internal/models"
)

func TestUpdateHandler(t *testing.T) {
	updated := models.User{ID: 1, Email: "a@x.com", FirstName: "New", LastName: "Name"}

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockUpdater)
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			body: `{"id":1,"email":"changed@x.com","first_name":"New","last_name":"Name"}`,
			mockSetup: func(m *MockUpdater) {
				m.EXPECT().
					Update(gomock.Any(), models.User{ID: 1, Email: "changed@x.com", FirstName: "New", LastName: "Name"}).
					Return(models.NewSuccess(&updated))
			},
			expectedCode: 200,
		},
		{
			name: "missing user",
			body: `{"id":42}`,
			mockSetup: func(m *MockUpdater) {
				m.EXPECT().
					Update(gomock.Any(), models.User{ID: 42}).
					Return(models.NewError[models.User]("User doesn't exist."))
			},
			expectedCode: 400,
			expectedMsg:  "User doesn't exist.",
		},
		{
			name: "email taken",
			body: `{"id":1,"email":"b@x.com"}`,
			mockSetup: func(m *MockUpdater) {
				m.EXPECT().
					Update(gomock.Any(), models.User{ID: 1, Email: "b@x.com"}).
					Return(models.NewError[models.User]("Email already used."))
			},
			expectedCode: 400,
			expectedMsg:  "Email already used.",
		},
		{
			name: "storage failure",
			body: `{"id":1}`,
			mockSetup: func(m *MockUpdater) {
				m.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					Return(models.NewException[models.User](errors.New("db error")))
			},
			expectedCode: 500,
			expectedMsg:  "db error",
		},
		{
			name:         "invalid json",
			body:         `{invalid`,
			mockSetup:    func(m *MockUpdater) {},
			expectedCode: 400,
			expectedMsg:  "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockUpdater(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewUpdateHandler(mockSvc)
			req := httptest.NewRequest(http.MethodPut, "/api/user/update", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp models.Response[models.User]
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMsg, resp.Message)
			if tt.name == "success" {
				assert.Equal(t, updated, *resp.Data)
			}
		})
	}
}
