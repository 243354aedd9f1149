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

// Package jisho looks up words through the public jisho.org dictionary API.
package jisho

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/astragull/KKLC-Sentences/pkg/lookup"
	"github.com/astragull/KKLC-Sentences/pkg/pace"
)

// Name is the registry name of this provider.
const Name = "jisho"

func init() {
	lookup.Register(Name, func(ctx context.Context, opts lookup.Options) (lookup.Provider, error) {
		return New(opts)
	})
}

// 🔌 Provider queries the jisho.org word search endpoint
type Provider struct {
	url  string
	http *http.Client
	gate *pace.Gate
}

// 🎯 New creates a new jisho provider
func New(opts lookup.Options) (*Provider, error) {
	if opts.Config.URL == "" {
		return nil, errors.Errorf("url is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Provider{
		url:  strings.TrimSuffix(opts.Config.URL, "/"),
		http: httpClient,
		gate: opts.Gate,
	}, nil
}

// 📝 Name returns the provider's registry name
func (p *Provider) Name() string {
	return Name
}

// 🔍 Search queries jisho.org for key and returns every match in the API's
// own relevance order.
func (p *Provider) Search(ctx context.Context, key string) ([]lookup.Entry, error) {
	logger := zerolog.Ctx(ctx)

	if err := p.gate.Wait(ctx); err != nil {
		return nil, errors.Errorf("waiting before lookup: %w", err)
	}
	defer p.gate.Done()

	searchURL := p.url + "/search/words?keyword=" + url.QueryEscape(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	logger.Debug().Str("key", key).Msg("searching jisho")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, errors.Errorf("searching jisho: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload struct {
		Meta struct {
			Status int `json:"status"`
		} `json:"meta"`
		Data []struct {
			Slug     string `json:"slug"`
			Japanese []struct {
				Word    string `json:"word"`
				Reading string `json:"reading"`
			} `json:"japanese"`
			Senses []struct {
				EnglishDefinitions []string `json:"english_definitions"`
			} `json:"senses"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Errorf("decoding response: %w", err)
	}

	if payload.Meta.Status != http.StatusOK {
		return nil, errors.Errorf("jisho reported status %d for %q", payload.Meta.Status, key)
	}

	entries := make([]lookup.Entry, 0, len(payload.Data))
	for _, match := range payload.Data {
		if len(match.Senses) == 0 || len(match.Senses[0].EnglishDefinitions) == 0 {
			logger.Debug().Str("slug", match.Slug).Msg("skipping entry without definitions")
			continue
		}

		entry := lookup.Entry{
			// Some matches carry only a reading; the slug still names the word
			Word:    match.Slug,
			Meaning: strings.Join(match.Senses[0].EnglishDefinitions, "; "),
		}
		if len(match.Japanese) > 0 {
			if match.Japanese[0].Word != "" {
				entry.Word = match.Japanese[0].Word
			}
			entry.Reading = match.Japanese[0].Reading
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
