package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"staybnb/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.FieldError("title", "This field is required."), http.StatusBadRequest, "VALIDATION_ERROR"},
		{fmt.Errorf("load: %w", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{&domain.IntegrityError{Err: errors.New("UNIQUE constraint failed")}, http.StatusConflict, "INTEGRITY_ERROR"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		FromError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		var body struct {
			Success bool `json:"success"`
			Error   struct {
				Code    string            `json:"code"`
				Message string            `json:"message"`
				Details map[string]string `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.code, body.Error.Code)
		if tc.status == http.StatusBadRequest {
			assert.Equal(t, "This field is required.", body.Error.Details["title"])
		}
		if tc.status == http.StatusConflict {
			assert.Equal(t, "The request conflicts with existing data", body.Error.Message)
			assert.NotContains(t, w.Body.String(), "UNIQUE constraint failed")
			require.Len(t, c.Errors, 1)
			assert.Contains(t, c.Errors[0].Error(), "UNIQUE constraint failed")
		}
		if tc.status == http.StatusInternalServerError {
			assert.Len(t, c.Errors, 1)
		}
	}
}
