package chatclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const RespondPath = "/api/chatbot/v1/respond"

// ErrTransport marks a turn that never produced a server answer
var ErrTransport = errors.New("chatbot transport failure")

// Transport delivers one turn to the response service
type Transport interface {
	Respond(ctx context.Context, req Request) (Response, error)
}

// HTTPTransport calls the chatbot HTTP API
type HTTPTransport struct {
	client *resty.Client
}

var _ Transport = (*HTTPTransport)(nil)

func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPTransport{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetTimeout(timeout),
	}
}

// Respond returns ErrTransport for network errors, non-2xx statuses and
// error envelopes.
func (t *HTTPTransport) Respond(ctx context.Context, req Request) (Response, error) {
	var out Response
	var envelope ErrorEnvelope

	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&envelope).
		Post(RespondPath)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.IsError() {
		if envelope.Error != "" {
			return Response{}, fmt.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode(), envelope.Error)
		}
		return Response{}, fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode())
	}
	if out.Source == "" || out.ConversationID == "" {
		return Response{}, fmt.Errorf("%w: malformed response: %s", ErrTransport, resp.String())
	}
	return out, nil
}
