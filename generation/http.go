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

package generation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jetsetilly/chimeraboy/config"
	"github.com/jetsetilly/chimeraboy/creature"
	"github.com/jetsetilly/chimeraboy/curated"
)

// nothing the provider returns is trusted until it has passed schema
// validation. a malformed document is a transient generation failure like
// any other, never a panic
const responseSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["name", "level", "base_stats", "moves", "types", "sprite"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"level": {"type": "integer", "minimum": 1, "maximum": 100},
		"base_stats": {
			"type": "object",
			"required": ["hp", "atk", "def", "spd", "spc"],
			"properties": {
				"hp":  {"type": "integer", "minimum": 1, "maximum": 255},
				"atk": {"type": "integer", "minimum": 1, "maximum": 255},
				"def": {"type": "integer", "minimum": 1, "maximum": 255},
				"spd": {"type": "integer", "minimum": 1, "maximum": 255},
				"spc": {"type": "integer", "minimum": 1, "maximum": 255}
			}
		},
		"moves": {
			"type": "array",
			"minItems": 4, "maxItems": 4,
			"items": {"type": "integer", "minimum": 0, "maximum": 255}
		},
		"types": {
			"type": "array",
			"minItems": 2, "maxItems": 2,
			"items": {"type": "integer", "minimum": 0, "maximum": 255}
		},
		"sprite": {"type": "string"}
	}
}`

// maximum acceptable size for a provider response
const maxResponseSize = 1048576

type response struct {
	Name      string `json:"name"`
	Level     int    `json:"level"`
	BaseStats struct {
		HP  int `json:"hp"`
		Atk int `json:"atk"`
		Def int `json:"def"`
		Spd int `json:"spd"`
		Spc int `json:"spc"`
	} `json:"base_stats"`
	Moves  []int  `json:"moves"`
	Types  []int  `json:"types"`
	Sprite string `json:"sprite"`
}

// HTTPProvider asks a network service to synthesise a creature. The
// service is expected to accept a JSON request containing a prompt and a
// type hint and to respond with a document matching the response schema.
type HTTPProvider struct {
	client   *http.Client
	url      string
	template string
	schema   *jsonschema.Schema
}

// NewHTTPProvider is the preferred method of initialisation for the
// HTTPProvider type.
func NewHTTPProvider(cfg config.Generation) (*HTTPProvider, error) {
	if cfg.ProviderURL == "" {
		return nil, curated.Errorf("generation: no provider url")
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("response.json", strings.NewReader(responseSchema)); err != nil {
		return nil, curated.Errorf("generation: %v", err)
	}
	schema, err := compiler.Compile("response.json")
	if err != nil {
		return nil, curated.Errorf("generation: %v", err)
	}

	return &HTTPProvider{
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		},
		url:      cfg.ProviderURL,
		template: cfg.PromptTemplate,
		schema:   schema,
	}, nil
}

// Generate implements the Provider interface.
func (prv *HTTPProvider) Generate(ctx context.Context, hint string) (creature.Creature, error) {
	reqBody, err := json.Marshal(map[string]string{
		"prompt":    strings.ReplaceAll(prv.template, "%TYPE%", hint),
		"type_hint": hint,
	})
	if err != nil {
		return creature.Creature{}, curated.Errorf("generation: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, prv.url, bytes.NewReader(reqBody))
	if err != nil {
		return creature.Creature{}, curated.Errorf("generation: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := prv.client.Do(req)
	if err != nil {
		return creature.Creature{}, curated.Errorf("generation: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return creature.Creature{}, curated.Errorf("generation: provider returned %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return creature.Creature{}, curated.Errorf("generation: %v", err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return creature.Creature{}, curated.Errorf("generation: %v", err)
	}
	if err := prv.schema.Validate(doc); err != nil {
		return creature.Creature{}, curated.Errorf("generation: response failed validation: %v", err)
	}

	var rsp response
	if err := json.Unmarshal(raw, &rsp); err != nil {
		return creature.Creature{}, curated.Errorf("generation: %v", err)
	}

	return decodeResponse(rsp, hint)
}

func decodeResponse(rsp response, hint string) (creature.Creature, error) {
	sprite, err := base64.StdEncoding.DecodeString(rsp.Sprite)
	if err != nil {
		return creature.Creature{}, curated.Errorf("generation: sprite: %v", err)
	}
	if len(sprite) != creature.SpriteBytes {
		return creature.Creature{}, curated.Errorf("generation: sprite is %d bytes instead of %d", len(sprite), creature.SpriteBytes)
	}

	name := rsp.Name
	if len(name) > creature.MaxNameLength {
		name = name[:creature.MaxNameLength]
	}

	cr := creature.Creature{
		Name:    name,
		Species: hint,
		Level:   uint8(rsp.Level),
		Base: creature.Stats{
			HP:      uint8(rsp.BaseStats.HP),
			Attack:  uint8(rsp.BaseStats.Atk),
			Defence: uint8(rsp.BaseStats.Def),
			Speed:   uint8(rsp.BaseStats.Spd),
			Special: uint8(rsp.BaseStats.Spc),
		},
	}
	for i := 0; i < 4; i++ {
		cr.Moves[i] = uint8(rsp.Moves[i])
	}
	cr.Types[0] = uint8(rsp.Types[0])
	cr.Types[1] = uint8(rsp.Types[1])
	copy(cr.Sprite[:], sprite)

	if err := cr.Validate(); err != nil {
		return creature.Creature{}, err
	}

	return cr, nil
}
