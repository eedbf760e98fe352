package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadetan/expense-tracking/internal/http/api"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestBind(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "Valid", body: `{"email":"jane@example.com","password":"x"}`},
		{name: "Malformed", body: `{"email":`, wantErr: "Invalid request body"},
		{name: "Missing", body: `{"email":"jane@example.com"}`, wantErr: "password is required"},
		{name: "BadEmail", body: `{"email":"jane","password":"x"}`, wantErr: "email must be a valid email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var req loginRequest
			err := api.Bind(r, &req)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "jane@example.com", req.Email)
		})
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	api.Error(w, http.StatusConflict, "Category already exists")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Category already exists"}`, w.Body.String())
}
