package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestLoadRules_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
thresholds:
  overduePercent: 35
risk:
  highAt: 75
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	th, risk, err := loadRules(path)
	if err != nil {
		t.Fatalf("loadRules: %v", err)
	}
	if th.OverduePercent != 35 {
		t.Errorf("OverduePercent = %v, want 35", th.OverduePercent)
	}
	// Untouched fields keep their stock values.
	if th.WorkloadRatio != 3 {
		t.Errorf("WorkloadRatio = %v, want 3", th.WorkloadRatio)
	}
	if risk.HighAt != 75 {
		t.Errorf("HighAt = %d, want 75", risk.HighAt)
	}
	if risk.MediumAt != 30 {
		t.Errorf("MediumAt = %d, want 30", risk.MediumAt)
	}
	if len(risk.Overdue) != 3 {
		t.Errorf("Overdue bands = %d, want 3", len(risk.Overdue))
	}
}

func TestLoadRules_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("thresholds: [not, a, map]"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := loadRules(path); err == nil {
		t.Error("expected an error for malformed rules")
	}
}

func TestLoadRules_Missing(t *testing.T) {
	if _, _, err := loadRules(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

// godotenv keeps nested double quotes inside single-quoted values; the
// MongoDB URI and JWT secret rely on this.
func TestEnvFileQuoting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(`JWT_SECRET='pa"ss"word'`), 0644); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("reading env: %v", err)
	}
	if want := `pa"ss"word`; env["JWT_SECRET"] != want {
		t.Errorf("JWT_SECRET = %q, want %q", env["JWT_SECRET"], want)
	}
}
