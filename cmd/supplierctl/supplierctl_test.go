package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORE_SEED", "true")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestImportCommand(t *testing.T) {
	path := writeFile(t, "batch.csv", "company,contact email,city\nAcme,a@acme.test,Leeds\n,b@x.test,York\nshort\n")

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name: "dry run",
			args: []string{"import", "--dry-run", path},
			want: []string{"batch.csv: 3 data rows, 1 accepted, 1 skipped (short), 1 skipped (no name)", `name         <- "company"`, "dry run"},
		},
		{
			name: "store",
			args: []string{"import", path},
			want: []string{"stored 1 suppliers"},
		},
		{
			name:    "missing file",
			args:    []string{"import", filepath.Join(t.TempDir(), "nope.csv")},
			wantErr: "read",
		},
		{
			name:    "schema error is user facing",
			args:    []string{"import", writeFile(t, "bad.csv", "email\nx@y.test\n")},
			wantErr: "CSV002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v\n%s", err, out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestListCommand(t *testing.T) {
	out, err := run(t, "list", "--category", "Manufacturing", "--sort", "name-desc")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "NAME") || !strings.HasPrefix(lines[1], "TechParts International") {
		t.Errorf("unexpected listing:\n%s", out)
	}
	if !strings.Contains(out, "1-3 of 3 (page 1 of 1)") {
		t.Errorf("missing footer:\n%s", out)
	}
}

func TestExportCommand(t *testing.T) {
	out, err := run(t, "export", "--city", "Boston, MA")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "ChemTech Solutions,") {
		t.Errorf("csv export:\n%s", out)
	}

	xlsxPath := filepath.Join(t.TempDir(), "dir.xlsx")
	if _, err := run(t, "export", "--format", "xlsx", "-o", xlsxPath); err != nil {
		t.Fatalf("xlsx export error = %v", err)
	}
	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Suppliers")
	if err != nil || len(rows) != 7 {
		t.Errorf("xlsx rows = %d, err %v", len(rows), err)
	}

	if _, err := run(t, "export", "--format", "pdf"); err == nil {
		t.Error("pdf export succeeded")
	}
}

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
		notWant  []string
	}{
		{
			name: "admin disabled",
			want: []string{"store:      memory ok", "suppliers:  6", "categories: 10", "cities:     6", "admin API disabled"},
		},
		{
			name:     "admin enabled",
			password: "s3cret",
			want:     []string{"suppliers:  6"},
			notWant:  []string{"admin API disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADMIN_PASSWORD", tt.password)
			t.Setenv("API_KEYS", "")

			out, err := run(t, "check", "--timeout", "1s")
			if err != nil {
				t.Fatalf("check error = %v\n%s", err, out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, bad := range tt.notWant {
				if strings.Contains(out, bad) {
					t.Errorf("output contains %q:\n%s", bad, out)
				}
			}
		})
	}
}
