package config

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edi-build/edi/internal/errors"
)

func TestFromMap(t *testing.T) {
	raw := map[string]any{
		"general": map[string]any{"edi_compression": "gz"},
		"qemu":    nil,
		"keys": map[string]any{
			"repo": map[string]any{"path": "keys/repo.key"},
			"off":  nil,
		},
		"unknown": map[string]any{"ignored": true},
	}

	doc, err := FromMap(raw)
	if err != nil {
		t.Fatalf("FromMap() error: %v", err)
	}

	if diff := cmp.Diff(Values{"edi_compression": "gz"}, doc.Values(SectionGeneral)); diff != "" {
		t.Errorf("general mismatch (-want +got):\n%s", diff)
	}
	if _, ok := doc.Flat[SectionQemu]; ok {
		t.Error("null section should be absent")
	}
	if got := doc.Items(SectionKeys).Names(); !cmp.Equal(got, []string{"off", "repo"}) {
		t.Errorf("Names() = %v, want [off repo]", got)
	}
	if _, ok := doc.Map()["unknown"]; ok {
		t.Error("unknown section should be dropped")
	}
}

func TestFromMap_WrongShape(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"flat section is a list", map[string]any{"general": []any{"x"}}},
		{"nested section is a string", map[string]any{"playbooks": "base.yml"}},
		{"item is a string", map[string]any{"playbooks": map[string]any{"base": "base.yml"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.raw)
			if errors.GetExitCode(err) != errors.ExitConfigError {
				t.Errorf("FromMap() error = %v, want config error", err)
			}
		})
	}
}

func TestItemAccessors(t *testing.T) {
	item := Item{
		"skip":       true,
		"path":       "a/b.yml",
		"parameters": map[string]any{"k": "v"},
	}

	if !item.Skip() {
		t.Error("Skip() = false, want true")
	}
	if got := item.Path(); got != "a/b.yml" {
		t.Errorf("Path() = %q, want %q", got, "a/b.yml")
	}
	if got := item.Parameters()["k"]; got != "v" {
		t.Errorf("Parameters()[k] = %v, want v", got)
	}

	var empty Item
	if empty.Skip() || empty.Path() != "" || empty.Parameters() != nil {
		t.Error("nil item should report zero values")
	}

	if !(Item{"skip": "yes"}).Skip() {
		t.Error("skip: yes should switch the item off")
	}
	if (Item{"skip": "maybe"}).Skip() {
		t.Error("unrecognized skip should not switch the item off")
	}
}

func TestFromMap_SkipSpellings(t *testing.T) {
	tests := []struct {
		skip    any
		want    any
		wantErr bool
	}{
		{true, true, false},
		{false, false, false},
		{"yes", true, false},
		{"True", true, false},
		{"on", true, false},
		{"y", true, false},
		{"no", false, false},
		{"false", false, false},
		{"OFF", false, false},
		{nil, nil, false},
		{"maybe", nil, true},
		{1, nil, true},
		{[]any{true}, nil, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.skip), func(t *testing.T) {
			doc, err := FromMap(map[string]any{
				"playbooks": map[string]any{
					"base": map[string]any{"path": "base.yml", "skip": tt.skip},
				},
			})
			if tt.wantErr {
				if errors.GetExitCode(err) != errors.ExitConfigError {
					t.Errorf("FromMap() error = %v, want config error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromMap() error: %v", err)
			}
			if got := doc.Items(SectionPlaybooks)["base"]["skip"]; got != tt.want {
				t.Errorf("skip = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc := NewDocument()
	doc.Nested[SectionPlaybooks] = Items{
		"p": {"parameters": map[string]any{"k": "v"}},
	}

	clone := doc.Clone()
	clone.Items(SectionPlaybooks)["p"].Parameters()["k"] = "changed"

	if doc.Items(SectionPlaybooks)["p"].Parameters()["k"] != "v" {
		t.Error("Clone() shares nested maps with the original")
	}
}
