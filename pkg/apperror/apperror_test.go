package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("Skill", "1"), http.StatusNotFound},
		{"validation", NewFieldError("email", "required"), http.StatusBadRequest},
		{"duplicate", NewDuplicateKey("Skill", "name", "Go"), http.StatusBadRequest},
		{"singleton", NewSingletonViolation("PortfolioSettings"), http.StatusBadRequest},
		{"auth required", NewAuthRequired("missing token"), http.StatusUnauthorized},
		{"forbidden", NewPermissionDenied("not admin"), http.StatusForbidden},
		{"rate limited", NewRateLimited(time.Minute), http.StatusTooManyRequests},
		{"import failed", NewImportFailed(errors.New("boom")), http.StatusInternalServerError},
		{"unavailable", NewUnavailable("no uploader"), http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("ctx: %w", NewPermissionDenied("x")), http.StatusForbidden},
		{"plain", errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHTTPStatus(tc.err))
		})
	}
}

func TestImportFailedKeepsCause(t *testing.T) {
	cause := errors.New("unique violation")
	err := NewImportFailed(cause)

	assert.ErrorIs(t, err, ErrImportFailed)
	assert.ErrorIs(t, err, cause)
}

func TestToJSONHidesDetails(t *testing.T) {
	err := NewInternal("pq: relation \"skills\" does not exist", errors.New("driver"))
	body := err.ToJSON()

	assert.Equal(t, "An internal server error occurred", body["message"])
	assert.NotContains(t, fmt.Sprint(body), "relation")
	assert.NotContains(t, body, "fields")
}

func TestToJSONEnumeratesFields(t *testing.T) {
	err := NewValidation(map[string]string{"email": "is required"})
	body := err.ToJSON()

	assert.Equal(t, map[string]string{"email": "is required"}, body["fields"])
}

func TestFrom(t *testing.T) {
	appErr := NewNotFound("Project", "x")
	assert.Same(t, appErr, From(fmt.Errorf("wrap: %w", appErr)))
	assert.ErrorIs(t, From(errors.New("raw")), ErrInternal)
}
