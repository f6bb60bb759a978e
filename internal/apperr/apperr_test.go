package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "bad input", err: BadInput("email is required."), want: CodeBadInput},
		{name: "wrapped bad input", err: fmt.Errorf("create: %w", BadInput("x")), want: CodeBadInput},
		{name: "unauthorized", err: Unauthorized(), want: CodeUnauthorized},
		{name: "plain error", err: errors.New("db down"), want: CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestMessagesAreVerbatim(t *testing.T) {
	assert.Equal(t, "Employee not found.", BadInput("Employee not found.").Error())
	assert.Equal(t, "Unauthorized", Unauthorized().Error())
	assert.True(t, IsBadInput(BadInput("x")))
	assert.True(t, IsUnauthorized(Unauthorized()))
	assert.False(t, IsBadInput(errors.New("x")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeBadInput))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(CodeUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeInternal))
}
