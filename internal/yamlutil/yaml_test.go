package yamlutil_test

// Notes:
// - Marshal error branch: not tested because yaml.Marshal only fails with
//   unmarshalable types (channels, functions) which are not realistic here.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-report2pdf/internal/yamlutil"
)

type testConfig struct {
	Title    string  `yaml:"title"`
	Margin   float64 `yaml:"margin"`
	Enabled  bool    `yaml:"enabled"`
	MaxPages int     `yaml:"maxPages"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Strict decoding
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    testConfig
		wantErr bool
	}{
		{
			name:  "all fields",
			input: "title: Laudo\nmargin: 20\nenabled: true\nmaxPages: 50\n",
			want:  testConfig{Title: "Laudo", Margin: 20, Enabled: true, MaxPages: 50},
		},
		{
			name:  "partial input keeps defaults",
			input: "title: Laudo\n",
			want:  testConfig{Title: "Laudo", Margin: 15, MaxPages: 500},
		},
		{
			name:    "unknown field rejected",
			input:   "title: Laudo\ncolour: red\n",
			wantErr: true,
		},
		{
			name:    "type mismatch rejected",
			input:   "margin: wide\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := testConfig{Margin: 15, MaxPages: 500}
			err := yamlutil.UnmarshalStrict([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatal("UnmarshalStrict() error = nil, want error")
				}
				if !strings.HasPrefix(err.Error(), "yamlutil: ") {
					t.Errorf("error %q lacks package prefix", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalStrict() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("UnmarshalStrict() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInputValidation - Empty, oversized and nil inputs
// ---------------------------------------------------------------------------

func TestInputValidation(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	if err := yamlutil.UnmarshalStrict(nil, &cfg); !errors.Is(err, yamlutil.ErrNilData) {
		t.Errorf("nil data error = %v, want ErrNilData", err)
	}
	if err := yamlutil.UnmarshalStrict([]byte("title: x"), nil); !errors.Is(err, yamlutil.ErrNilDestination) {
		t.Errorf("nil destination error = %v, want ErrNilDestination", err)
	}
	big := []byte("title: " + strings.Repeat("x", yamlutil.MaxInputSize))
	if err := yamlutil.UnmarshalStrict(big, &cfg); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("oversized error = %v, want ErrInputTooLarge", err)
	}
}

// ---------------------------------------------------------------------------
// TestReadFileStrict - File decoding
// ---------------------------------------------------------------------------

func TestReadFileStrict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "clinic.yaml")
	if err := os.WriteFile(path, []byte("title: Clínica\nmaxPages: 20\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	var cfg testConfig
	if err := yamlutil.ReadFileStrict(path, &cfg); err != nil {
		t.Fatalf("ReadFileStrict() error = %v", err)
	}
	if cfg.Title != "Clínica" || cfg.MaxPages != 20 {
		t.Errorf("ReadFileStrict() = %+v", cfg)
	}

	err := yamlutil.ReadFileStrict(filepath.Join(dir, "missing.yaml"), &cfg)
	if !os.IsNotExist(err) {
		t.Errorf("missing file error = %v, want not-exist", err)
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Encoding
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Marshal(testConfig{Title: "Laudo", Margin: 20})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{"title: Laudo", "margin: 20"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Marshal() = %q, missing %q", out, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDescribe - User-facing error rendering
// ---------------------------------------------------------------------------

func TestDescribe(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	err := yamlutil.UnmarshalStrict([]byte("title: x\ncolour: red\n"), &cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if desc := yamlutil.Describe(err); !strings.Contains(desc, "colour") {
		t.Errorf("Describe() = %q, want the offending field", desc)
	}
	if yamlutil.Describe(nil) != "" {
		t.Error("Describe(nil) must be empty")
	}
}
