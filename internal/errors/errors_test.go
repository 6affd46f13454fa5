package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		respond func(*gin.Context, string)
		message string
		status  int
		want    string
	}{
		{"unauthorized default", Unauthorized, "", http.StatusUnauthorized, "Authentication required"},
		{"not found", NotFound, "Task not found", http.StatusNotFound, "Task not found"},
		{"bad request default", BadRequest, "", http.StatusBadRequest, "Invalid request"},
		{"internal default", InternalError, "", http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.respond(c, tt.message)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, map[string]any{"message": tt.want}, body)
		})
	}
}
