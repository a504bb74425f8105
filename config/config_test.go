package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	if len(cfg.Overrides) != 5 {
		t.Errorf("len(Overrides) = %d, want 5", len(cfg.Overrides))
	}
	if got := cfg.Overrides["CC3456YG12"]; got != (Assignment{"TCS", "Analyst", "Bengaluru"}) {
		t.Errorf("Overrides[CC3456YG12] = %+v", got)
	}
	if cfg.LocationCodes["Coimbatore"] != "CBE" || cfg.FallbackCode != "OTH" {
		t.Error("unexpected location codes")
	}
	if cfg.EmployeeLimit != 10 {
		t.Errorf("EmployeeLimit = %d, want 10", cfg.EmployeeLimit)
	}

	var widths []float64
	for _, col := range cfg.Schemas.Indexed {
		widths = append(widths, col.Width)
	}
	want := []float64{25, 15, 50, 45, 30, 20, 30, 35, 45}
	for i := range want {
		if widths[i] != want[i] {
			t.Fatalf("indexed widths = %v, want %v", widths, want)
		}
	}
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.Overrides["X"] = Assignment{Company: "X"}
	a.LocationCodes["Chennai"] = "ZZZ"

	b := Default()
	if _, ok := b.Overrides["X"]; ok {
		t.Error("Default() shares its override map")
	}
	if b.LocationCodes["Chennai"] != "CHN" {
		t.Error("Default() shares its location map")
	}
}

func TestClone(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.Schemas.Indexed[0].Title = "changed"
	b.BangaloreAliases[0] = "changed"
	delete(b.Overrides, "CC3456YG11")

	if a.Schemas.Indexed[0].Title != "Employee ID" || a.BangaloreAliases[0] != "bangalore" {
		t.Error("Clone() shares slices with the original")
	}
	if _, ok := a.Overrides["CC3456YG11"]; !ok {
		t.Error("Clone() shares maps with the original")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "empty",
			yaml: "",
			check: func(t *testing.T, c *Config) {
				if c.NamePrefix != "employee name: " {
					t.Errorf("NamePrefix = %q", c.NamePrefix)
				}
			},
		},
		{
			name: "scalar override",
			yaml: "name_prefix: 'staff: '\nemployee_limit: 3\n",
			check: func(t *testing.T, c *Config) {
				if c.NamePrefix != "staff: " || c.EmployeeLimit != 3 {
					t.Errorf("got %q / %d", c.NamePrefix, c.EmployeeLimit)
				}
			},
		},
		{
			name: "maps merge",
			yaml: "location_codes:\n  Kochi: KOC\noverrides:\n  CC3456YG99:\n    company: Acme\n",
			check: func(t *testing.T, c *Config) {
				if c.LocationCodes["Kochi"] != "KOC" || c.LocationCodes["Pune"] != "PUN" {
					t.Errorf("LocationCodes = %v", c.LocationCodes)
				}
				if len(c.Overrides) != 6 || c.Overrides["CC3456YG99"].Company != "Acme" {
					t.Errorf("Overrides = %v", c.Overrides)
				}
			},
		},
		{
			name: "schema replaced",
			yaml: "schemas:\n  positional:\n    - {field: company, title: Firm, width: 40}\n",
			check: func(t *testing.T, c *Config) {
				if len(c.Schemas.Positional) != 1 || c.Schemas.Positional[0].Title != "Firm" {
					t.Errorf("Positional = %+v", c.Schemas.Positional)
				}
				if len(c.Schemas.Indexed) != 9 {
					t.Error("indexed schema should keep its default")
				}
			},
		},
		{name: "unknown key", yaml: "nmae_prefix: x\n", wantErr: true},
		{name: "malformed", yaml: "name_prefix: [\n", wantErr: true},
		{name: "bad limit", yaml: "employee_limit: 0\n", wantErr: true},
		{name: "bad field", yaml: "schemas:\n  indexed:\n    - {field: salary, title: Pay, width: 10}\n", wantErr: true},
		{name: "bad orientation", yaml: "report:\n  orientation: X\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Parse() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidateWrapsErrInvalid(t *testing.T) {
	cfg := Default()
	cfg.Schemas.Indexed = nil
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate() = %v, want ErrInvalid", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rostermerge.yaml")
	if err := os.WriteFile(path, []byte("fallback_code: UNK\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FallbackCode != "UNK" {
		t.Errorf("FallbackCode = %q, want UNK", cfg.FallbackCode)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}
