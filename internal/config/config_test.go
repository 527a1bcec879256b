package config

import (
	"os"
	"testing"
	"time"
)

// withArgs hides the test binary flags from the parser.
func withArgs(t *testing.T) {
	t.Helper()
	saved := os.Args
	os.Args = []string{"elearning"}
	t.Cleanup(func() { os.Args = saved })
}

func TestLoad_Defaults(t *testing.T) {
	withArgs(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "5000" || cfg.Addr() != ":5000" {
		t.Fatalf("unexpected port %q / addr %q", cfg.Port, cfg.Addr())
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day ttl, got %v", cfg.TokenTTL)
	}
	if cfg.MaxFileSize != 5<<20 {
		t.Fatalf("expected 5MB limit, got %d", cfg.MaxFileSize)
	}
	if cfg.DBName != "elearning" || cfg.UploadDir != "uploads" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	withArgs(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "memory")

	if _, _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoad_MongoNeedsURI(t *testing.T) {
	withArgs(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "")

	if _, _, err := Load(); err == nil {
		t.Fatal("expected error without MONGO_URI")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	withArgs(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_DRIVER", "postgres")

	if _, _, err := Load(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"7d", 7 * 24 * time.Hour, true},
		{"12h", 12 * time.Hour, true},
		{"3600", time.Hour, true},
		{"0d", 0, false},
		{"-5", 0, false},
		{"soon", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseTTL(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("ParseTTL(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
		}
		if tt.ok && got != tt.want {
			t.Fatalf("ParseTTL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
