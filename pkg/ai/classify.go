package ai

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"

	"github.com/openai/openai-go"
	"google.golang.org/genai"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// classifyError wraps retry-safe failures in TransientUpstreamError. parent is
// the caller's context: when it is done the failure is the caller's and is
// returned as is.
func classifyError(parent context.Context, err error) error {
	if err == nil {
		return nil
	}
	if entities.IsTransient(err) {
		return err
	}
	if parent.Err() != nil {
		return err
	}

	if kind, ok := kindForStatus(statusCode(err)); ok {
		return &entities.TransientUpstreamError{Kind: kind, Err: err}
	}
	if statusCode(err) != 0 {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &entities.TransientUpstreamError{Kind: entities.KindTimeout, Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() {
			return &entities.TransientUpstreamError{Kind: entities.KindTimeout, Err: err}
		}
		return &entities.TransientUpstreamError{Kind: entities.KindUpstream, Err: err}
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return &entities.TransientUpstreamError{Kind: entities.KindUpstream, Err: err}
	}
	return err
}

// statusCode extracts the HTTP status of an SDK error, 0 when there is none
func statusCode(err error) int {
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return oaErr.StatusCode
	}
	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	return 0
}

func kindForStatus(code int) (entities.TransientKind, bool) {
	switch {
	case code == http.StatusTooManyRequests:
		return entities.KindRateLimited, true
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return entities.KindTimeout, true
	case code >= 500:
		return entities.KindUpstream, true
	}
	return "", false
}
