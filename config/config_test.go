package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const tomlProblems = `
[defaults]
tolerance = 1e-8
max_iterations = 200
on_exhausted = "best-effort"

[[problem]]
name = "near-zero"
method = "false-position"
expression = "x^2 + 5*x + cos(x)"
bracket = [-1, 0]

[[problem]]
method = "newton"
expression = "x^2 + 5*x + cos(x)"
derivative = "numeric"
x0 = 0.2
tolerance = 1e-6
max_runtime = "250ms"

[[problem]]
name = "roots"
method = "quadratic"
coefficients = [1, -3, 2]
`

const yamlProblems = `
defaults:
  tolerance: 1e-8
  max_iterations: 200
  on_exhausted: best-effort
problems:
  - name: near-zero
    method: false-position
    expression: x^2 + 5*x + cos(x)
    bracket: [-1, 0]
  - method: newton
    expression: x^2 + 5*x + cos(x)
    derivative: numeric
    x0: 0.2
    tolerance: 1e-6
    max_runtime: 250ms
  - name: roots
    method: quadratic
    coefficients: [1, -3, 2]
`

func checkProblems(t *testing.T, f *File) {
	t.Helper()
	if len(f.Problems) != 3 {
		t.Fatalf("want 3 problems, got %d", len(f.Problems))
	}
	fp, newton, quad := f.Problems[0], f.Problems[1], f.Problems[2]

	if fp.Name != "near-zero" || fp.Method != "false-position" || fp.Expression != "x^2 + 5*x + cos(x)" {
		t.Errorf("unexpected first problem %+v", fp)
	}
	if !reflect.DeepEqual(fp.Bracket, []float64{-1, 0}) {
		t.Errorf("bracket: got %v", fp.Bracket)
	}
	if fp.Tolerance != 1e-8 || fp.MaxIterations != 200 || fp.OnExhausted != "best-effort" {
		t.Errorf("defaults not applied: %+v", fp)
	}

	if newton.Name != "problem-2" {
		t.Errorf("want generated name problem-2, got %q", newton.Name)
	}
	if newton.X0 == nil || *newton.X0 != 0.2 {
		t.Errorf("x0: got %v", newton.X0)
	}
	if newton.Tolerance != 1e-6 {
		t.Errorf("problem tolerance must override the default, got %v", newton.Tolerance)
	}
	if newton.MaxRuntime.Duration != 250*time.Millisecond {
		t.Errorf("max_runtime: got %v", newton.MaxRuntime)
	}
	if newton.Derivative != "numeric" {
		t.Errorf("derivative: got %q", newton.Derivative)
	}

	if !reflect.DeepEqual(quad.Coefficients, []float64{1, -3, 2}) {
		t.Errorf("coefficients: got %v", quad.Coefficients)
	}
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(tomlProblems), FormatTOML)
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	checkProblems(t, f)

	g, err := Parse([]byte(yamlProblems), FormatYAML)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	checkProblems(t, g)

	if !reflect.DeepEqual(f, g) {
		t.Errorf("toml and yaml files differ:\n%+v\n%+v", f, g)
	}
}

func TestRoundTrip(t *testing.T) {
	f, err := Parse([]byte(tomlProblems), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []Format{FormatTOML, FormatYAML} {
		data, err := Marshal(f, format)
		if err != nil {
			t.Fatalf("%v: %v", format, err)
		}
		g, err := Parse(data, format)
		if err != nil {
			t.Fatalf("%v: %v\n%s", format, err, data)
		}
		if !reflect.DeepEqual(f, g) {
			t.Errorf("%v: round trip changed the file:\n%s", format, data)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"problems.toml": tomlProblems,
		"problems.yaml": yamlProblems,
		"problems.yml":  yamlProblems,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		f, err := Load(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		checkProblems(t, f)
	}

	if _, err := Load(filepath.Join(dir, "problems.json")); err == nil {
		t.Errorf("unknown extension should be an error")
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Errorf("missing file should be an error")
	}
}

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		name, content string
		wantErr       string
	}{
		{"empty", ``, "no problems"},
		{"method", `
[[problem]]
method = "secant"
expression = "x"
`, "unknown method"},
		{"bracket", `
[[problem]]
method = "bisection"
expression = "x"
bracket = [1]
`, "bracket"},
		{"x0", `
[[problem]]
method = "newton"
expression = "x"
`, "x0"},
		{"expression", `
[[problem]]
method = "illinois"
bracket = [0, 1]
`, "expression"},
		{"coefficients", `
[[problem]]
method = "quadratic"
coefficients = [1, 2]
`, "coefficients"},
		{"tolerance", `
[[problem]]
method = "newton"
expression = "x"
x0 = 1
tolerance = -1
`, "tolerance"},
		{"limits", `
[[problem]]
method = "newton"
expression = "x"
x0 = 1
max_iterations = -5
`, "limits"},
	} {
		_, err := Parse([]byte(test.content), FormatTOML)
		if err == nil || !strings.Contains(err.Error(), test.wantErr) {
			t.Errorf("%s: want an error mentioning %q, got %v", test.name, test.wantErr, err)
		}
	}

	if _, err := Parse([]byte("problems: ["), FormatYAML); err == nil {
		t.Errorf("malformed yaml should be an error")
	}
}

func TestParseMethod(t *testing.T) {
	for s, want := range map[string]Method{
		"quadratic":      MethodQuadratic,
		"regula-falsi":   MethodFalsePosition,
		"False-Position": MethodFalsePosition,
		"illinois":       MethodIllinois,
		"bisect":         MethodBisection,
		"newton-raphson": MethodNewton,
	} {
		got, err := ParseMethod(s)
		if err != nil || got != want {
			t.Errorf("ParseMethod(%q) = %v, %v; want %v", s, got, err, want)
		}
	}
	if MethodNewton.Bracketing() || !MethodIllinois.Bracketing() {
		t.Errorf("wrong bracketing classification")
	}
}
