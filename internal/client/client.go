// Package client talks to the generation proxy on behalf of the wizard and
// the headless generate command.
package client

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"

	"github.com/mark3labs/vacancy/internal/generation"
	"github.com/mark3labs/vacancy/internal/logger"
	"github.com/mark3labs/vacancy/internal/wizard"
)

// MsgNoResponse is reported when the proxy answered without any text.
const MsgNoResponse = "Нет ответа от сервера"

// Client calls the generation proxy. Generate never returns a Go error;
// failures come back in Result.Error.
type Client struct {
	http    *resty.Client
	group   singleflight.Group
	loading atomic.Int32
}

type generateRequest struct {
	Answers []string `json:"answers"`
}

type questionsResponse struct {
	Questions []wizard.Question `json:"questions"`
}

// New returns a client for the proxy at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{http: c}
}

// Loading reports whether a generation call is outstanding.
func (c *Client) Loading() bool {
	return c.loading.Load() > 0
}

// Generate sends answers to the proxy. A call made while another call for
// the same answers is in flight joins it and receives the same result.
func (c *Client) Generate(ctx context.Context, answers []string) generation.Result {
	v, _, shared := c.group.Do(flightKey(answers), func() (interface{}, error) {
		c.loading.Add(1)
		defer c.loading.Add(-1)
		return c.generate(ctx, answers), nil
	})
	if shared {
		logger.Debug("client: joined in-flight generation")
	}
	return v.(generation.Result)
}

// flightKey identifies a generation call by its answers.
func flightKey(answers []string) string {
	return strings.Join(answers, "\x00")
}

func (c *Client) generate(ctx context.Context, answers []string) generation.Result {
	var out generation.Result
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{Answers: answers}).
		SetResult(&out).
		SetError(&out).
		Post("/api/generate-vacancy")
	if err != nil {
		logger.Error("client: generate request failed: %v", err)
		return generation.Result{Error: err.Error()}
	}

	if resp.IsError() {
		logger.Warn("client: generate returned HTTP %d", resp.StatusCode())
		msg := out.Error
		if msg == "" {
			msg = out.Text
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode())
		}
		return generation.Result{Error: msg}
	}

	if out.Error != "" {
		return generation.Result{Error: out.Error}
	}
	if out.Text == "" {
		return generation.Result{Error: MsgNoResponse}
	}
	return generation.Result{Text: out.Text}
}

// Questions fetches the questionnaire from the proxy.
func (c *Client) Questions(ctx context.Context) ([]wizard.Question, error) {
	var out questionsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/questions")
	if err != nil {
		return nil, fmt.Errorf("fetching questions: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching questions: HTTP %d", resp.StatusCode())
	}
	return out.Questions, nil
}
