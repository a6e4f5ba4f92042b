package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int64
		wantErr bool
	}{
		{"int64", int64(3), 3, false},
		{"float64", float64(7), 7, false},
		{"string", "12", 12, false},
		{"bad string", "twelve", 0, true},
		{"unsupported type", []string{"1"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVersionValue(tt.input, "secret/data/test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseVersionValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseVersionValue() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveVaultToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("  s.filetoken \n"), 0o600); err != nil {
		t.Fatalf("writing token file: %v", err)
	}

	tests := []struct {
		name    string
		config  VaultConfig
		want    string
		wantErr bool
	}{
		{"direct token", VaultConfig{Token: "s.direct"}, "s.direct", false},
		{"token from file", VaultConfig{TokenFile: tokenFile}, "s.filetoken", false},
		{"direct wins over file", VaultConfig{Token: "s.direct", TokenFile: tokenFile}, "s.direct", false},
		{"missing token", VaultConfig{}, "", true},
		{"unreadable file", VaultConfig{TokenFile: filepath.Join(t.TempDir(), "nope")}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveVaultToken(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveVaultToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveVaultToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	cfg := baseConfig()
	cfg.Vault.Enabled = false
	if err := ApplyVaultSecrets(cfg, nil); err != nil {
		t.Errorf("ApplyVaultSecrets() with Vault disabled returned %v", err)
	}
}

func TestGetSecretV2NilClient(t *testing.T) {
	var vc *VaultClient
	if _, err := vc.GetSecretV2("secret/data/test"); err == nil {
		t.Error("GetSecretV2() on nil client expected error")
	}
}
