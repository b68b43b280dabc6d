// This file is part of Chimeraboy.
//
// Chimeraboy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chimeraboy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chimeraboy.  If not, see <https://www.gnu.org/licenses/>.

package generation_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jetsetilly/chimeraboy/config"
	"github.com/jetsetilly/chimeraboy/creature"
	"github.com/jetsetilly/chimeraboy/generation"
	"github.com/jetsetilly/chimeraboy/test"
)

func validDocument() string {
	sprite := make([]byte, creature.SpriteBytes)
	for i := range sprite {
		sprite[i] = byte(i)
	}
	return fmt.Sprintf(`{
		"name": "Pyrewisp",
		"level": 35,
		"base_stats": {"hp": 80, "atk": 70, "def": 60, "spd": 90, "spc": 110},
		"moves": [52, 109, 83, 123],
		"types": [20, 8],
		"sprite": %q
	}`, base64.StdEncoding.EncodeToString(sprite))
}

func TestHTTPProvider(t *testing.T) {
	var gotPrompt string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		test.DemandSuccess(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req["prompt"]
		fmt.Fprint(w, validDocument())
	}))
	defer srv.Close()

	cfg := config.Default().Generation
	cfg.ProviderURL = srv.URL
	prv, err := generation.NewHTTPProvider(cfg)
	test.DemandSuccess(t, err)

	cr, err := prv.Generate(context.Background(), "fire")
	test.DemandSuccess(t, err)

	test.Equate(t, cr.Name, "Pyrewisp")
	test.Equate(t, cr.Level, 35)
	test.Equate(t, cr.Base.Special, 110)
	test.Equate(t, cr.Moves[1], 109)
	test.Equate(t, cr.Types[0], 20)
	test.Equate(t, cr.Sprite[255], 255)

	// the type hint reached the prompt via the template
	test.Equate(t, gotPrompt, "a small fire creature for an 8-bit monster battler")
}

func TestHTTPProviderRejectsInvalidDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// moves missing entirely. the schema must catch this before any
		// decoding is attempted
		fmt.Fprint(w, `{"name": "Bad", "level": 5, "base_stats": {"hp":1,"atk":1,"def":1,"spd":1,"spc":1}, "types": [0,0], "sprite": ""}`)
	}))
	defer srv.Close()

	cfg := config.Default().Generation
	cfg.ProviderURL = srv.URL
	prv, err := generation.NewHTTPProvider(cfg)
	test.DemandSuccess(t, err)

	_, err = prv.Generate(context.Background(), "fire")
	test.ExpectedFailure(t, err)
}

func TestHTTPProviderRejectsShortSprite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"name": "Stub",
			"level": 5,
			"base_stats": {"hp": 10, "atk": 10, "def": 10, "spd": 10, "spc": 10},
			"moves": [1, 2, 3, 4],
			"types": [0, 0],
			"sprite": "AAAA"
		}`)
	}))
	defer srv.Close()

	cfg := config.Default().Generation
	cfg.ProviderURL = srv.URL
	prv, err := generation.NewHTTPProvider(cfg)
	test.DemandSuccess(t, err)

	_, err = prv.Generate(context.Background(), "fire")
	test.ExpectedFailure(t, err)
}

func TestHTTPProviderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := config.Default().Generation
	cfg.ProviderURL = srv.URL
	prv, err := generation.NewHTTPProvider(cfg)
	test.DemandSuccess(t, err)

	_, err = prv.Generate(context.Background(), "fire")
	test.ExpectedFailure(t, err)
}

func TestNoProviderURL(t *testing.T) {
	_, err := generation.NewHTTPProvider(config.Default().Generation)
	test.ExpectedFailure(t, err)
}
