package naming

import (
	"strings"
	"testing"
)

func TestShortHash(t *testing.T) {
	h1 := ShortHash("sub/rg/ws")
	h2 := ShortHash("sub/rg/ws")
	h3 := ShortHash("sub/rg/other")

	if h1 != h2 {
		t.Errorf("ShortHash not deterministic: %q vs %q", h1, h2)
	}
	if h1 == h3 {
		t.Errorf("distinct inputs produced the same hash: %q", h1)
	}
	if len(h1) != ShortHashLength {
		t.Errorf("expected length %d, got %d", ShortHashLength, len(h1))
	}
}

func TestStorageAccountName(t *testing.T) {
	tests := []struct {
		name      string
		scope     string
		workspace string
	}{
		{"simple", "sub1/rg1", "mlws"},
		{"mixed case and dashes", "sub1/rg1", "My-Work_Space"},
		{"very long name", "sub1/rg1", strings.Repeat("workspacename", 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StorageAccountName(tt.scope, tt.workspace)
			if len(got) < 3 || len(got) > 24 {
				t.Errorf("length %d out of [3,24]: %q", len(got), got)
			}
			if !strings.HasPrefix(got, "st") {
				t.Errorf("expected st prefix: %q", got)
			}
			for _, r := range got {
				if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
					t.Errorf("invalid character %q in %q", r, got)
				}
			}
		})
	}

	// Same inputs must derive the same name so re-resolution finds the
	// previously provisioned account.
	if StorageAccountName("s/r", "ws") != StorageAccountName("s/r", "ws") {
		t.Error("StorageAccountName not deterministic")
	}
	if StorageAccountName("s/r1", "ws") == StorageAccountName("s/r2", "ws") {
		t.Error("different scopes derived the same account name")
	}
}

func TestKeyVaultName(t *testing.T) {
	got := KeyVaultName("sub1/rg1", "My-Workspace")
	if len(got) < 3 || len(got) > 24 {
		t.Errorf("length %d out of [3,24]: %q", len(got), got)
	}
	if !strings.HasPrefix(got, "kv") {
		t.Errorf("expected kv prefix: %q", got)
	}
}

func TestDNSLabel(t *testing.T) {
	tests := []struct {
		name  string
		scope string
		svc   string
	}{
		{"simple", "sub1/rg1", "ridge-svc"},
		{"underscores dropped", "sub1/rg1", "ridge_svc"},
		{"leading dash trimmed", "sub1/rg1", "-svc-"},
		{"empty becomes svc", "sub1/rg1", "___"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DNSLabel(tt.scope, tt.svc)
			if len(got) == 0 || len(got) > 63 {
				t.Errorf("length %d out of range: %q", len(got), got)
			}
			if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
				t.Errorf("label must not start or end with dash: %q", got)
			}
		})
	}
}

func TestNewCompactID(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := NewCompactID()
		if err != nil {
			t.Fatalf("NewCompactID failed: %v", err)
		}
		if len(id) != 12 {
			t.Fatalf("expected ID length 12, got %d for ID: %s", len(id), id)
		}
		if ids[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		ids[id] = true

		for _, char := range id {
			if !((char >= '0' && char <= '9') || (char >= 'a' && char <= 'z')) {
				t.Fatalf("invalid character in ID %s: %c", id, char)
			}
		}
	}
}
