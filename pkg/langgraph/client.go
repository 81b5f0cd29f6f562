package langgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultCredentialHeader = "credential-key"
	DefaultAssistantID      = "agent"
	maxResponseSizeBytes    = 2 << 20
)

type Config struct {
	URL              string        `envconfig:"URL" split_words:"true" required:"true"`
	APIKey           string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	CredentialHeader string        `envconfig:"CREDENTIAL_HEADER" split_words:"true" default:"credential-key"`
	AssistantID      string        `envconfig:"ASSISTANT_ID" split_words:"true" default:"agent"`
	Timeout          time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"0s"`
}

// ClientOption customizes Client.
type ClientOption func(*Client)

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client speaks the thread/run protocol of a LangGraph deployment over REST.
type Client struct {
	baseURL          string
	apiKey           string
	credentialHeader string
	assistantID      string
	httpClient       *http.Client
}

func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("langgraph url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid langgraph url: %w", err)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("langgraph api key is required")
	}

	header := strings.TrimSpace(cfg.CredentialHeader)
	if header == "" {
		header = DefaultCredentialHeader
	}
	assistantID := strings.TrimSpace(cfg.AssistantID)
	if assistantID == "" {
		assistantID = DefaultAssistantID
	}

	client := &Client{
		baseURL:          baseURL,
		apiKey:           apiKey,
		credentialHeader: header,
		assistantID:      assistantID,
		// A zero timeout lets the join call block until the run completes.
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

func MustNew(cfg Config, opts ...ClientOption) *Client {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// CreateThread opens a new conversation thread.
func (c *Client) CreateThread(ctx context.Context) (Thread, error) {
	var thread Thread
	body := createThreadRequest{Metadata: map[string]any{}}
	if err := c.do(ctx, http.MethodPost, "/threads", body, &thread); err != nil {
		return Thread{}, err
	}
	if strings.TrimSpace(thread.ThreadID) == "" {
		return Thread{}, fmt.Errorf("%w: thread_id is empty", ErrMalformedResponse)
	}
	return thread, nil
}

// CreateRun starts the assistant on the thread with the given input.
func (c *Client) CreateRun(ctx context.Context, threadID string, input RunInput) (Run, error) {
	if strings.TrimSpace(threadID) == "" {
		return Run{}, errors.New("thread id is empty")
	}
	if input.Examples == nil {
		input.Examples = []string{}
	}
	if input.InputInfo == nil {
		input.InputInfo = map[string]string{}
	}

	var run Run
	body := createRunRequest{AssistantID: c.assistantID, Input: input}
	if err := c.do(ctx, http.MethodPost, "/threads/"+url.PathEscape(threadID)+"/runs", body, &run); err != nil {
		return Run{}, err
	}
	if strings.TrimSpace(run.RunID) == "" {
		return Run{}, fmt.Errorf("%w: run_id is empty", ErrMalformedResponse)
	}
	return run, nil
}

// JoinRun blocks until the run finishes. The response body is ignored.
func (c *Client) JoinRun(ctx context.Context, threadID, runID string) error {
	if strings.TrimSpace(threadID) == "" || strings.TrimSpace(runID) == "" {
		return errors.New("thread id and run id are required")
	}
	path := "/threads/" + url.PathEscape(threadID) + "/runs/" + url.PathEscape(runID) + "/join"
	return c.do(ctx, http.MethodGet, path, nil, nil)
}

// GetState fetches the current thread state.
func (c *Client) GetState(ctx context.Context, threadID string) (ThreadState, error) {
	if strings.TrimSpace(threadID) == "" {
		return ThreadState{}, errors.New("thread id is empty")
	}
	var state ThreadState
	if err := c.do(ctx, http.MethodGet, "/threads/"+url.PathEscape(threadID)+"/state", nil, &state); err != nil {
		return ThreadState{}, err
	}
	return state, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if c == nil {
		return errors.New("nil langgraph client")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set(c.credentialHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s %s response: %w", ErrTransport, method, path, err)
	}

	if resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}
