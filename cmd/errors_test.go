package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"spotlogin/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainAPIError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, explainAPIError(nil))
	})

	t.Run("unauthorized", func(t *testing.T) {
		apiErr := &provider.APIError{StatusCode: http.StatusUnauthorized, Endpoint: "/me", Message: "The access token expired"}
		err := explainAPIError(fmt.Errorf("wrapped: %w", apiErr))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "access token rejected")
		var target *provider.APIError
		assert.ErrorAs(t, err, &target)
		assert.Equal(t, ExitCodeError, getExitCode(err))
	})

	t.Run("rate limited", func(t *testing.T) {
		apiErr := &provider.APIError{StatusCode: http.StatusTooManyRequests, Endpoint: "/search"}
		err := explainAPIError(apiErr)

		assert.Contains(t, err.Error(), "try again later")
		assert.ErrorIs(t, err, apiErr)
	})

	t.Run("other errors unchanged", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Same(t, plain, explainAPIError(plain))

		notFound := &provider.APIError{StatusCode: http.StatusNotFound, Endpoint: "/artists/x"}
		assert.Equal(t, notFound.Error(), explainAPIError(notFound).Error())
	})
}
