// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/platform/config"
)

/*
TestLoad_Defaults verifies defaults with the minimal memory-driver environment.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("ACCESS_TOKEN_SECRET", "a")
	t.Setenv("REFRESH_TOKEN_SECRET", "b")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "taskboard", cfg.AuthIssuer)
	assert.Equal(t, 5*time.Minute, cfg.CredentialCacheTTL)
	assert.False(t, cfg.RefreshReloadUser)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins())
}

/*
TestLoad_Rules covers the cross-field validation rules.
*/
func TestLoad_Rules(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"missing_secrets", map[string]string{"STORAGE_DRIVER": "memory"}, true},
		{"same_secrets", map[string]string{"STORAGE_DRIVER": "memory", "ACCESS_TOKEN_SECRET": "x", "REFRESH_TOKEN_SECRET": "x"}, true},
		{"postgres_without_url", map[string]string{"ACCESS_TOKEN_SECRET": "a", "REFRESH_TOKEN_SECRET": "b"}, true},
		{"unknown_driver", map[string]string{"STORAGE_DRIVER": "mongo", "ACCESS_TOKEN_SECRET": "a", "REFRESH_TOKEN_SECRET": "b"}, true},
		{"postgres_ok", map[string]string{"DATABASE_URL": "postgres://localhost/db", "ACCESS_TOKEN_SECRET": "a", "REFRESH_TOKEN_SECRET": "b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setenv registers the restore; Unsetenv makes the key truly absent.
			for _, key := range []string{"STORAGE_DRIVER", "DATABASE_URL", "ACCESS_TOKEN_SECRET", "REFRESH_TOKEN_SECRET"} {
				t.Setenv(key, "")
				require.NoError(t, os.Unsetenv(key))
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestConfig_AllowedOrigins splits and trims EXTRA_ORIGINS.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := &config.Config{FrontendURL: "https://app.example", ExtraOrigins: " https://a.example, ,https://b.example "}
	assert.Equal(t, []string{"https://app.example", "https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}
