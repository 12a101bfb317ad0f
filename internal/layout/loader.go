package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// fileLayout is the on-disk representation of a custom layout.
type fileLayout struct {
	Name  string              `toml:"name" json:"name" yaml:"name"`
	Rules map[string]fileRule `toml:"rules" json:"rules" yaml:"rules"`
}

type fileRule struct {
	Text     string `toml:"text" json:"text" yaml:"text"`
	Category string `toml:"category" json:"category" yaml:"category"`
}

// layoutSchema validates JSON layout files before decoding. TOML and
// YAML layouts go through the same structural checks in NewTable.
const layoutSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "rules"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "rules": {
      "type": "object",
      "minProperties": 1,
      "patternProperties": {
        "^[a-z0-9]{1,3}$": {
          "type": "object",
          "required": ["text", "category"],
          "properties": {
            "text": {"type": "string", "minLength": 1},
            "category": {
              "enum": ["vowel", "consonant", "vowel_sign", "digit", "special"]
            }
          },
          "additionalProperties": false
        }
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

// Load reads a layout file and builds an immutable Table from it.
// The format is chosen by extension: .toml, .json, .yaml/.yml.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	var fl fileLayout
	switch ext := filepath.Ext(path); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &fl); err != nil {
			return nil, fmt.Errorf("decode TOML layout: %w", err)
		}
	case ".json":
		if err := validateJSONLayout(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &fl); err != nil {
			return nil, fmt.Errorf("decode JSON layout: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fl); err != nil {
			return nil, fmt.Errorf("decode YAML layout: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported layout format %q (want .toml, .json, .yaml)", ext)
	}

	return fl.toTable()
}

func (fl fileLayout) toTable() (*Table, error) {
	if fl.Name == "" {
		return nil, fmt.Errorf("layout has no name")
	}
	rules := make([]Rule, 0, len(fl.Rules))
	for key, fr := range fl.Rules {
		cat, err := ParseCategory(fr.Category)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", key, err)
		}
		rules = append(rules, Rule{Key: key, Glyph: Glyph{Text: fr.Text, Category: cat}})
	}
	return NewTable(fl.Name, rules)
}

var compiledLayoutSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("layout.schema.json", bytes.NewReader([]byte(layoutSchema))); err != nil {
		panic(err)
	}
	return compiler.MustCompile("layout.schema.json")
}()

func validateJSONLayout(data []byte) error {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("parse JSON layout: %w", err)
	}
	if err := compiledLayoutSchema.Validate(instance); err != nil {
		return fmt.Errorf("layout schema: %w", err)
	}
	return nil
}
