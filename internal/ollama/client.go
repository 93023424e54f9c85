package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultURL is the local Ollama generate endpoint.
	DefaultURL = "http://localhost:11434/api/generate"

	// DefaultModel is used when no model is configured.
	DefaultModel = "llama3:8b"

	// DefaultTimeout bounds one whole streaming request.
	DefaultTimeout = 120 * time.Second
)

// chunkTextFields are the fragment keys that may carry partial answer text,
// checked in priority order. Older and newer Ollama builds have disagreed on
// the field name, so all three are tried per chunk.
var chunkTextFields = []string{"response", "content", "text"}

// maxChunkSize bounds a single stream fragment on read.
const maxChunkSize = 1 << 20

// maxErrorBody limits how much of a non-success response ends up in the
// error message.
const maxErrorBody = 400

const cannedText = "You're welcome 😎"

var cannedInputs = map[string]struct{}{
	"thanks":    {},
	"thank you": {},
	"ty":        {},
	"thx":       {},
}

// CannedReply returns a fixed reply for trivial acknowledgements, matched
// case-insensitively after trimming. The caller can answer these without a
// network round trip.
func CannedReply(question string) (string, bool) {
	if _, ok := cannedInputs[strings.ToLower(strings.TrimSpace(question))]; ok {
		return cannedText, true
	}
	return "", false
}

// Client is a minimal streaming client for a local Ollama server.
type Client struct {
	url        string
	model      string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates an Ollama client. Zero values fall back to the package
// defaults.
func NewClient(url, model string, timeout time.Duration, log zerolog.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:   url,
		model: model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Generate sends one streaming generation request and reassembles the
// incremental fragments into the full answer text, trimmed of surrounding
// whitespace. Transport failures, non-success statuses, and mid-stream read
// errors all come back as ordinary errors.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt, Stream: true})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("ollama non-success status=%d body=%s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var text strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxChunkSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk map[string]any
		if err := json.Unmarshal(line, &chunk); err != nil {
			c.log.Debug().Err(err).Msg("skipping unparseable stream chunk")
			continue
		}
		text.WriteString(chunkText(chunk))
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("ollama stream aborted: %w", err)
	}

	return strings.TrimSpace(text.String()), nil
}

// chunkText extracts the partial answer text from one fragment: the first
// non-empty field in chunkTextFields wins. The terminal {"done":true}
// fragment carries none of them and contributes nothing.
func chunkText(chunk map[string]any) string {
	for _, field := range chunkTextFields {
		if s, ok := chunk[field].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
