package response

import (
	"Chronicle/internal/api/dto"
	"Chronicle/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var res dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"sentinel", service.ErrPostNotFound, NotFound, service.ErrPostNotFound.Error()},
		{"wrapped", fmt.Errorf("%w: field [Title] failed rule [required]", service.ErrValidation), BadRequest, service.ErrValidation.Error()},
		{"storage cause hidden", fmt.Errorf("%w: connection refused", service.ErrStorage), InternalServerError, service.ErrStorage.Error()},
		{"unknown", errors.New("driver exploded"), InternalServerError, service.UnExpectedError.Error()},
		{"body too large", &http.MaxBytesError{Limit: 10}, PayloadTooLarge, service.ErrPayloadTooLarge.Error()},
		{"media type", service.ErrUnsupportedMediaType, UnsupportedMediaType, service.ErrUnsupportedMediaType.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, tt.err)

			res := decode(t, w)
			assert.Equal(t, tt.wantCode, res.Code)
			assert.Equal(t, tt.wantMsg, res.Message)
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestRedirect(t *testing.T) {
	for method, want := range map[string]int{
		http.MethodGet:    http.StatusFound,
		http.MethodPost:   http.StatusSeeOther,
		http.MethodDelete: http.StatusSeeOther,
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(method, "/dashboard", nil)

		Redirect(c, "/admin")

		assert.Equal(t, want, w.Code, method)
		assert.Equal(t, "/admin", w.Header().Get("Location"))
	}
}
