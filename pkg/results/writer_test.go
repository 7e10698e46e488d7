package results

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		prefix string
		start  int
		end    int
		want   string
	}{
		{"foo", 1, 5, "foo_pages_1-5.json"},
		{"grants_2020", 6, 10, "grants_2020_pages_6-10.json"},
		{"x", 1, 1, "x_pages_1-1.json"},
	}

	for _, tt := range tests {
		if got := Filename(tt.prefix, tt.start, tt.end); got != tt.want {
			t.Errorf("Filename(%q, %d, %d) = %q, want %q", tt.prefix, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	grants := []json.RawMessage{
		json.RawMessage(`{"id":"A","amount":25000}`),
		json.RawMessage(`{"id":"B","amount":100000}`),
	}

	path, err := writer.Write(grants, "foo", 1, 5)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if want := filepath.Join(dir, "foo_pages_1-5.json"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var doc struct {
		Grants []map[string]any `json:"grants"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(doc.Grants) != 2 {
		t.Fatalf("len(grants) = %d, want 2", len(doc.Grants))
	}
	if doc.Grants[0]["id"] != "A" || doc.Grants[1]["id"] != "B" {
		t.Errorf("grants = %v, want records A and B in order", doc.Grants)
	}

	// 2-space indentation
	if !strings.Contains(string(data), "\n  \"grants\"") {
		t.Errorf("Output not indented with 2 spaces:\n%s", data)
	}
}

func TestWrite_EmptyGrants(t *testing.T) {
	writer := NewWriter(t.TempDir())

	path, err := writer.Write(nil, "empty", 1, 1)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if strings.Contains(string(data), "null") {
		t.Errorf("Empty grants serialized as null:\n%s", data)
	}
}

func TestWrite_BadDirectory(t *testing.T) {
	writer := NewWriter(filepath.Join(t.TempDir(), "does-not-exist"))

	if _, err := writer.Write(nil, "foo", 1, 1); err == nil {
		t.Error("Expected error writing into missing directory")
	}
}
