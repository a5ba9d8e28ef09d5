package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"base.yml", FormatYAML},
		{"base.yaml", FormatYAML},
		{"base.toml", FormatTOML},
		{"base.json", FormatJSON},
		{"base.JSONC", FormatJSON},
		{"base.conf", FormatYAML},
		{"base", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFor(tt.path); got != tt.want {
				t.Errorf("FormatFor(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	want := map[string]any{
		"general": map[string]any{"edi_compression": "gz"},
	}

	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"yaml", FormatYAML, "general:\n  edi_compression: gz\n"},
		{"toml", FormatTOML, "[general]\nedi_compression = \"gz\"\n"},
		{"json with comments", FormatJSON, "{\n  // compression\n  \"general\": {\"edi_compression\": \"gz\",},\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.format.Decode([]byte(tt.data))
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	for _, f := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			got, err := f.Decode([]byte("   \n"))
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("Decode() = %v, want empty map", got)
			}
		})
	}

	got, err := FormatYAML.Decode([]byte("# only a comment\n"))
	if err != nil || len(got) != 0 {
		t.Errorf("Decode(comment) = %v, %v; want empty map", got, err)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"yaml", FormatYAML, "general: [unclosed\n"},
		{"toml", FormatTOML, "[general\n"},
		{"json", FormatJSON, "{\"general\": }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.format.Decode([]byte(tt.data)); err == nil {
				t.Error("Decode() should fail")
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	doc := map[string]any{
		"general":   map[string]any{"edi_compression": "xz", "unset": nil},
		"playbooks": map[string]any{"base": map[string]any{"path": "base.yml"}},
	}

	for _, f := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			data, err := f.Encode(doc)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			got, err := f.Decode(data)
			if err != nil {
				t.Fatalf("Decode() error: %v\n%s", err, data)
			}
			if got["playbooks"].(map[string]any)["base"].(map[string]any)["path"] != "base.yml" {
				t.Errorf("round trip lost playbooks.base.path:\n%s", data)
			}
		})
	}
}
