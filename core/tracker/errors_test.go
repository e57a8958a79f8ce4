package tracker

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResponse(t *testing.T) {
	t.Run("ConflictStatusCodes", func(t *testing.T) {
		for _, code := range []int{http.StatusBadRequest, http.StatusConflict} {
			err := classifyResponse(code, []byte(`{"errorMessages":["bad"]}`))
			var conflict *ConflictError
			assert.ErrorAs(t, err, &conflict)
			assert.Equal(t, code, conflict.StatusCode)
		}
	})

	t.Run("AlreadyExistsMessage", func(t *testing.T) {
		err := classifyResponse(http.StatusInternalServerError, []byte(`{"errorMessages":["A status with this name already exists"]}`))
		assert.True(t, IsConflict(err))
	})

	t.Run("NotFound", func(t *testing.T) {
		err := classifyResponse(http.StatusNotFound, []byte(`{"errorMessages":["No project"]}`))
		assert.True(t, IsNotFound(err))
		assert.False(t, IsConflict(err))
	})

	t.Run("Auth", func(t *testing.T) {
		for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
			var authErr *AuthError
			assert.ErrorAs(t, classifyResponse(code, nil), &authErr)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		err := classifyResponse(http.StatusBadGateway, []byte("upstream down"))
		var te *TransportError
		assert.ErrorAs(t, err, &te)
		assert.Equal(t, "upstream down", te.Message)
		assert.True(t, isRetryable(err))
	})
}

func TestIsConflict(t *testing.T) {
	assert.False(t, IsConflict(nil))
	assert.True(t, IsConflict(fmt.Errorf("create field: %w", &ConflictError{StatusCode: 400})))
	assert.True(t, IsConflict(errors.New("Field Already Exists")))
	assert.False(t, IsConflict(errors.New("boom")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&TransportError{Err: errors.New("dial tcp")}))
	assert.True(t, isRetryable(&TransportError{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, isRetryable(&TransportError{StatusCode: http.StatusTeapot}))
	assert.False(t, isRetryable(&ConflictError{StatusCode: 409}))
	assert.False(t, isRetryable(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	body := []byte(`{"errorMessages":["first"],"errors":{"name":"taken","jql":"invalid"}}`)
	assert.Equal(t, "first; jql: invalid; name: taken", errorMessage(body))
	assert.Equal(t, "plain text", errorMessage([]byte(" plain text ")))
	assert.Equal(t, "{}", errorMessage([]byte("{}")))
}
