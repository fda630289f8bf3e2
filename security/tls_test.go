package security

import (
	"crypto/tls"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestTLSConfig_Build_Disabled(t *testing.T) {
	var nilCfg *TLSConfig
	for _, c := range []*TLSConfig{nilCfg, {}} {
		cfg, err := c.Build()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil tls.Config when nothing is set")
		}
	}
}

func TestTLSConfig_Build_Settings(t *testing.T) {
	c := &TLSConfig{SkipVerify: true, ServerName: "api.local", MinVersion: "1.3"}
	cfg, err := c.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify")
	}
	if cfg.ServerName != "api.local" {
		t.Errorf("expected server name, got %q", cfg.ServerName)
	}
	if cfg.MinVersion != tls.VersionTLS13 {
		t.Errorf("expected TLS 1.3, got %x", cfg.MinVersion)
	}
}

func TestTLSConfig_Build_DefaultMinVersion(t *testing.T) {
	cfg, err := (&TLSConfig{ServerName: "x"}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MinVersion != tls.VersionTLS12 {
		t.Errorf("expected TLS 1.2, got %x", cfg.MinVersion)
	}
}

func TestTLSConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TLSConfig
		wantErr bool
	}{
		{"nil", nil, false},
		{"empty", &TLSConfig{}, false},
		{"cert without key", &TLSConfig{CertFile: "c.pem"}, true},
		{"key without cert", &TLSConfig{KeyFile: "k.pem"}, true},
		{"bad version", &TLSConfig{MinVersion: "1.0"}, true},
		{"good version", &TLSConfig{MinVersion: "1.2"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTLSConfig_Build_MissingCAFile(t *testing.T) {
	_, err := (&TLSConfig{CAFile: "/nonexistent/ca.pem"}).Build()
	if err == nil {
		t.Error("expected error for missing CA file")
	}
}

func TestTLSConfig_Build_GarbageCA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(path, []byte("not a cert"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := (&TLSConfig{CAFile: path}).Build(); err == nil {
		t.Error("expected error for unparsable CA")
	}
}

func TestTLSConfig_Build_TrustsServerCA(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "ca.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := (&TLSConfig{CAFile: path}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client := &http.Client{Transport: &http.Transport{TLSClientConfig: cfg}}
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("request with trusted CA failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
}
