package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPredicatesAndStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		check  func(error) bool
		status int
	}{
		{NewValidationError("bad input"), IsValidationError, http.StatusBadRequest},
		{NewNotFoundError("missing"), IsNotFoundError, http.StatusNotFound},
		{NewConflictError("taken"), IsConflictError, http.StatusConflict},
		{NewForbiddenError("nope"), IsForbiddenError, http.StatusForbidden},
		{NewInvalidStateError("too late"), IsInvalidStateError, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		assert.True(t, tc.check(tc.err))
		assert.Equal(t, tc.status, HTTPStatus(tc.err))
	}
}

func TestWrappedServiceErrorsKeepTheirCode(t *testing.T) {
	err := fmt.Errorf("while booking: %w", NewConflictError("taken"))
	assert.True(t, IsConflictError(err))
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestUnknownErrorsAreInternal(t *testing.T) {
	err := errors.New("disk on fire")
	assert.False(t, IsValidationError(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}
