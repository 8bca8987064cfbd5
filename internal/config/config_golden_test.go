package config

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// TestConfigDefaultsGoldenFile tests that our defaults match the golden file
func TestConfigDefaultsGoldenFile(t *testing.T) {
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))

	goldenData, err := os.ReadFile("testdata/defaults.yaml")
	if err != nil {
		t.Fatalf("Failed to read golden defaults file: %v", err)
	}

	var goldenConfig Config
	if err := yaml.Unmarshal(goldenData, &goldenConfig); err != nil {
		t.Fatalf("Failed to parse golden config: %v", err)
	}

	testConfig := &Config{}
	ApplyDefaults(testConfig)

	if !reflect.DeepEqual(*testConfig, goldenConfig) {
		got, _ := yaml.Marshal(testConfig)
		t.Errorf("Defaults drifted from testdata/defaults.yaml; got:\n%s", got)
	}
}

// TestConfigConstantsMatch tests that the exported default constants match the tags
func TestConfigConstantsMatch(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Version != DefaultVersion {
		t.Errorf("Version constant mismatch: got %q, want %q", cfg.Version, DefaultVersion)
	}
	if cfg.Site.Name != DefaultSiteName {
		t.Errorf("Site.Name constant mismatch: got %q, want %q", cfg.Site.Name, DefaultSiteName)
	}
	if cfg.Server.Host != DefaultServerHost {
		t.Errorf("Server.Host constant mismatch: got %q, want %q", cfg.Server.Host, DefaultServerHost)
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Server.Port constant mismatch: got %q, want %q", cfg.Server.Port, DefaultServerPort)
	}
	if cfg.Blog.Key != DefaultBlogKey {
		t.Errorf("Blog.Key constant mismatch: got %q, want %q", cfg.Blog.Key, DefaultBlogKey)
	}
	if cfg.Blog.RecentCount != DefaultRecentCount {
		t.Errorf("Blog.RecentCount constant mismatch: got %d, want %d", cfg.Blog.RecentCount, DefaultRecentCount)
	}
	if cfg.Storage.Backend != DefaultStorageBackend {
		t.Errorf("Storage.Backend constant mismatch: got %q, want %q", cfg.Storage.Backend, DefaultStorageBackend)
	}
}

// TestInvalidConfigValidation loads the fixtures under testdata
func TestInvalidConfigValidation(t *testing.T) {
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))

	testCases := []struct {
		name        string
		filename    string
		expectError bool
		errorText   string
	}{
		{
			name:        "Invalid version",
			filename:    "testdata/invalid_version.yaml",
			expectError: true,
			errorText:   "unsupported configuration version",
		},
		{
			name:        "Unknown backend",
			filename:    "testdata/unknown_backend.yaml",
			expectError: true,
			errorText:   "unknown storage backend",
		},
		{
			name:        "Valid defaults file",
			filename:    "testdata/defaults.yaml",
			expectError: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(tc.filename)

			if tc.expectError && err == nil {
				t.Errorf("Expected error but got none")
			}
			if !tc.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
			if tc.expectError && err != nil && tc.errorText != "" {
				if !strings.Contains(err.Error(), tc.errorText) {
					t.Errorf("Expected error to contain %q, got %q", tc.errorText, err.Error())
				}
			}
		})
	}
}
