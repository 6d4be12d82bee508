package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/errors"
)

var testSchema = Schema{
	Widget: "offcanvas",
	Options: []Option{
		{Name: "backdrop", Type: Bool, Default: true},
		{Name: "keyboard", Type: Bool, Default: true},
		{Name: "scroll", Type: Bool, Default: false},
		{Name: "showClass", Type: String, Default: "show"},
	},
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{Bool, "boolean"},
		{Bool | String, "boolean|string"},
		{Element | Null, "element|null"},
		{0, "none"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"false", false},
		{"", nil},
		{"null", nil},
		{"42", 42.0},
		{"0.5", 0.5},
		{"1.50", "1.50"},
		{"#panel", "#panel"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestCamel(t *testing.T) {
	tests := map[string]string{
		"show-class":          "showClass",
		"transitioning-class": "transitioningClass",
		"backdrop":            "backdrop",
		"-lead":               "lead",
	}
	for in, want := range tests {
		if got := Camel(in); got != want {
			t.Errorf("Camel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDataAttributes(t *testing.T) {
	tree := dom.NewTree()
	el := tree.NewElement("div")
	el.SetAttr("data-toggle", "offcanvas")
	el.SetAttr("data-target", "#x")
	el.SetAttr("data-dismiss", "offcanvas")
	el.SetAttr("data-backdrop", "false")
	el.SetAttr("data-show-class", "open")
	el.SetAttr("aria-hidden", "true")

	want := map[string]any{"backdrop": false, "showClass": "open"}
	if diff := cmp.Diff(want, DataAttributes(el)); diff != "" {
		t.Errorf("DataAttributes mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePrecedence(t *testing.T) {
	tree := dom.NewTree()
	el := tree.NewElement("div")
	el.SetAttr("data-keyboard", "false")
	el.SetAttr("data-scroll", "true")

	layer := map[string]any{"backdrop": false, "keyboard": true, "showClass": "open"}
	override := map[string]any{"scroll": false, "extra": 3}

	v, err := Resolve(testSchema, el, override, layer)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := map[string]any{
		"backdrop":  false,
		"keyboard":  false,
		"scroll":    false,
		"showClass": "open",
		"extra":     3.0,
	}
	if diff := cmp.Diff(want, v.Map()); diff != "" {
		t.Errorf("resolved values mismatch (-want +got):\n%s", diff)
	}
	if v.Widget() != "offcanvas" || v.Bool("backdrop") || v.String("showClass") != "open" || v.Number("extra") != 3 {
		t.Errorf("accessors disagree with the map: %+v", v.Map())
	}
}

func TestResolveStringOverrideIgnored(t *testing.T) {
	v, err := Resolve(testSchema, nil, "toggle")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !v.Bool("backdrop") || v.String("showClass") != "show" {
		t.Errorf("a command name must not change the configuration: %+v", v.Map())
	}
}

func TestResolveTypeError(t *testing.T) {
	tree := dom.NewTree()
	el := tree.NewElement("div")
	el.SetAttr("data-backdrop", "static")

	_, err := Resolve(testSchema, el, nil)
	var cte *errors.ConfigTypeError
	if !errors.As(err, &cte) {
		t.Fatalf("err = %v, want *ConfigTypeError", err)
	}
	if cte.Widget != "offcanvas" || cte.Option != "backdrop" || cte.Value != "static" ||
		cte.Expected != "boolean" || cte.Got != "string" {
		t.Errorf("unexpected error fields: %+v", cte)
	}
	if !errors.Is(err, errors.ErrType) {
		t.Error("ConfigTypeError should match ErrType")
	}
}

func TestResolveNullRejectedUnlessDeclared(t *testing.T) {
	_, err := Resolve(testSchema, nil, map[string]any{"keyboard": nil})
	if err == nil {
		t.Fatal("nil for a boolean option should fail")
	}
	nullable := Schema{Widget: "w", Options: []Option{{Name: "parent", Type: Element | Null}}}
	if _, err := Resolve(nullable, nil, nil); err != nil {
		t.Errorf("nullable option with nil default: %v", err)
	}
}

func TestParseDefaults(t *testing.T) {
	yamlDoc := []byte("offcanvas:\n  backdrop: false\n  zIndex: 1040\n")
	tomlDoc := []byte("[offcanvas]\nbackdrop = false\nzIndex = 1040\n")
	want := Defaults{"offcanvas": {"backdrop": false, "zIndex": 1040.0}}

	for _, tc := range []struct {
		format string
		data   []byte
	}{{"yaml", yamlDoc}, {".toml", tomlDoc}} {
		got, err := ParseDefaults(tc.data, tc.format)
		if err != nil {
			t.Fatalf("ParseDefaults(%s): %v", tc.format, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ParseDefaults(%s) mismatch (-want +got):\n%s", tc.format, diff)
		}
	}

	if _, err := ParseDefaults(yamlDoc, "json"); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yml")
	if err := os.WriteFile(path, []byte("alert:\n  fade: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadDefaults(path)
	if err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}
	if got := d.For("alert")["fade"]; got != true {
		t.Errorf("For(alert)[fade] = %v, want true", got)
	}
	if d.For("offcanvas") != nil {
		t.Error("missing widget should return nil")
	}
	if _, err := LoadDefaults(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
