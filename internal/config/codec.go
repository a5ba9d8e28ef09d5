package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format is the markup language of a configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from the file extension. Anything that is
// not TOML or JSON is read as YAML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json", ".jsonc":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Decode parses data into a generic mapping. Empty and comment-only
// documents decode to an empty mapping.
func (f Format) Decode(data []byte) (map[string]any, error) {
	var out map[string]any

	switch f {
	case FormatTOML:
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	case FormatJSON:
		data = jsonc.ToJSON(data)
		if len(bytes.TrimSpace(data)) == 0 {
			break
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	}

	if out == nil {
		out = make(map[string]any)
	}
	return out, nil
}

// Encode renders v in format f.
func (f Format) Encode(v map[string]any) ([]byte, error) {
	switch f {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(dropNil(v)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}

// dropNil removes nil values, which TOML cannot represent.
func dropNil(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		if sub, ok := v.(map[string]any); ok {
			out[k] = dropNil(sub)
			continue
		}
		out[k] = v
	}
	return out
}
