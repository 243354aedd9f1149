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

package lookup

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/astragull/KKLC-Sentences/pkg/config"
	"github.com/astragull/KKLC-Sentences/pkg/pace"
)

// 📦 Entry is one dictionary match for a looked-up key
type Entry struct {
	Word    string // primary form, as the dictionary writes it
	Reading string // phonetic form, may be empty
	Meaning string // translation of the best sense
}

// 🔌 Provider resolves a key, a kanji or a word, to dictionary entries
type Provider interface {
	// 🔍 Search returns entries for key in the service's own order, best
	// match first. An empty result is not an error.
	Search(ctx context.Context, key string) ([]Entry, error)

	// 📝 Name returns the provider's registry name
	Name() string
}

// 🔧 Options configures a provider instance
type Options struct {
	Config     config.LookupArgs
	HTTPClient *http.Client // defaults to http.DefaultClient
	Gate       *pace.Gate   // optional, paces consecutive requests
}

// 🏭 Factory creates a configured provider
type Factory func(ctx context.Context, opts Options) (Provider, error)

var (
	// 🗺️ providers is a map of provider names to factories
	providers = make(map[string]Factory)
)

// 📝 Register registers a provider factory
func Register(name string, factory Factory) {
	providers[name] = factory
}

// 🎯 New builds the provider named in the config
func New(ctx context.Context, opts Options) (Provider, error) {
	factory, ok := providers[opts.Config.Provider]
	if !ok {
		options := make([]string, 0, len(providers))
		for k := range providers {
			options = append(options, k)
		}
		sort.Strings(options)
		return nil, errors.Errorf("lookup provider %s not found, options: %s",
			opts.Config.Provider, strings.Join(options, ", "))
	}
	return factory(ctx, opts)
}
