package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"syscall"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind entities.TransientKind
	}{
		{"openai 429", &openai.Error{StatusCode: http.StatusTooManyRequests}, entities.KindRateLimited},
		{"openai 503", &openai.Error{StatusCode: http.StatusServiceUnavailable}, entities.KindUpstream},
		{"openai 408", &openai.Error{StatusCode: http.StatusRequestTimeout}, entities.KindTimeout},
		{"openai 422", &openai.Error{StatusCode: http.StatusUnprocessableEntity}, ""},
		{"gemini 429", genai.APIError{Code: http.StatusTooManyRequests}, entities.KindRateLimited},
		{"gemini 400", genai.APIError{Code: http.StatusBadRequest}, ""},
		{"deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), entities.KindTimeout},
		{"net timeout", timeoutErr{}, entities.KindTimeout},
		{"conn reset", fmt.Errorf("read: %w", syscall.ECONNRESET), entities.KindUpstream},
		{"unexpected eof", io.ErrUnexpectedEOF, entities.KindUpstream},
		{"plain", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(context.Background(), tt.err)
			assert.Equal(t, tt.kind, entities.TransientKindOf(got))

			// genai.APIError is not comparable, so errors.Is cannot find it
			if want, ok := tt.err.(genai.APIError); ok {
				var apiErr genai.APIError
				require.ErrorAs(t, got, &apiErr)
				assert.Equal(t, want.Code, apiErr.Code)
				return
			}
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassifyError_ParentDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := classifyError(ctx, context.DeadlineExceeded)
	assert.False(t, entities.IsTransient(err))
}

func TestClassifyError_AlreadyTransient(t *testing.T) {
	in := &entities.TransientUpstreamError{Kind: entities.KindRateLimited, Err: errors.New("x")}
	assert.Same(t, in, classifyError(context.Background(), in))
	assert.Nil(t, classifyError(context.Background(), nil))
}
