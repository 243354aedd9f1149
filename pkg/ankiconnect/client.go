// Copyright 2025 astragull
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ankiconnect is a client for the AnkiConnect add-on, which exposes
// a running Anki instance over a local JSON endpoint. Every action is a POST
// of {action, version, params} answered by a {result, error} envelope.
package ankiconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/astragull/KKLC-Sentences/pkg/pace"
)

// protocolVersion is the AnkiConnect API version this client speaks.
const protocolVersion = 6

// 🔧 Options configures a Client
type Options struct {
	URL        string       // endpoint, e.g. http://127.0.0.1:8765
	HTTPClient *http.Client // defaults to http.DefaultClient
	Gate       *pace.Gate   // optional, paces consecutive requests
}

// 🔌 Client talks to a running Anki instance through AnkiConnect
type Client struct {
	url  string
	http *http.Client
	gate *pace.Gate
}

// 🎯 New creates a new AnkiConnect client
func New(opts Options) (*Client, error) {
	if opts.URL == "" {
		return nil, errors.Errorf("url is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		url:  opts.URL,
		http: httpClient,
		gate: opts.Gate,
	}, nil
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke performs one AnkiConnect action and decodes its result into out.
// The pace gate is held across the whole round trip so the quiet interval
// is measured from completion, not from the start of the request.
func (c *Client) invoke(ctx context.Context, action string, params any, out any) error {
	logger := zerolog.Ctx(ctx)

	if err := c.gate.Wait(ctx); err != nil {
		return errors.Errorf("waiting before %s: %w", action, err)
	}
	defer c.gate.Done()

	body, err := json.Marshal(request{Action: action, Version: protocolVersion, Params: params})
	if err != nil {
		return errors.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errors.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug().Str("action", action).Msg("invoking AnkiConnect")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Action: action, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &TransportError{
			Action:  action,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(msg)),
		}
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &TransportError{Action: action, Err: errors.Errorf("decoding response: %w", err)}
	}

	if envelope.Error != nil && *envelope.Error != "" {
		return &RemoteError{Action: action, Message: *envelope.Error}
	}

	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return &TransportError{Action: action, Err: errors.Errorf("decoding result: %w", err)}
		}
	}

	return nil
}
