package scanerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		kind     Kind
		expected string
	}{
		{"validation", Validation("URL too long (max %d characters)", 2048), KindValidation, "URL too long (max 2048 characters)"},
		{"security", Security("domain '%s' is blocked", "localhost"), KindSecurity, "domain 'localhost' is blocked"},
		{"scan", Scan("request timeout"), KindScan, "request timeout"},
		{"image analysis", ImageAnalysis("content is not text"), KindImageAnalysis, "content is not text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.Nil(t, tt.err.Unwrap())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:443: connect: connection refused")

	err := Wrap(KindScan, cause, "request failed")

	assert.Equal(t, KindScan, err.Kind)
	assert.Equal(t, "request failed", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrap_KeepsExistingCategory(t *testing.T) {
	inner := Security("resolved IP '%s' is not allowed", "10.0.0.1")
	wrapped := fmt.Errorf("redirect: %w", inner)

	err := Wrap(KindScan, wrapped, "request failed")

	assert.Same(t, inner, err)
	assert.Equal(t, KindSecurity, err.Kind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindSecurity, KindOf(fmt.Errorf("outer: %w", Security("x"))))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnexpected, KindOf(nil))

	assert.True(t, IsKind(Scan("x"), KindScan))
	assert.False(t, IsKind(nil, KindScan))
}

func TestFormat(t *testing.T) {
	require.Equal(t, "security_error: domain 'localhost' is blocked",
		Format(Security("domain '%s' is blocked", "localhost")))

	// Untyped errors never leak their text
	msg := Format(errors.New("open /var/lib/app/secret.db: permission denied"))
	assert.Equal(t, "unexpected_error: internal error while scanning", msg)
	assert.NotContains(t, msg, "/var/lib")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(KindSecurity))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(KindScan))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindImageAnalysis))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindUnexpected))
}
