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

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockLoginer)
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "match",
			body: `{"email":"a@x.com","password":"p"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), models.LoginRequest{Email: "a@x.com", Password: "p"}).
					Return(models.NewSuccess[struct{}](nil))
			},
			expectedCode: 200,
		},
		{
			name: "no match",
			body: `{"email":"a@x.com","password":"wrong"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), models.LoginRequest{Email: "a@x.com", Password: "wrong"}).
					Return(models.NewError[struct{}]("User doesn't exist."))
			},
			expectedCode: 400,
			expectedMsg:  "User doesn't exist.",
		},
		{
			name: "storage failure",
			body: `{"email":"a@x.com","password":"p"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return(models.NewException[struct{}](errors.New("db error")))
			},
			expectedCode: 500,
			expectedMsg:  "db error",
		},
		{
			name:         "invalid json",
			body:         `{invalid`,
			mockSetup:    func(m *MockLoginer) {},
			expectedCode: 400,
			expectedMsg:  "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockLoginer(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewLoginHandler(mockSvc)
			req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp models.Response[struct{}]
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}
}
