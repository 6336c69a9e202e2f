package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr bool
	}{
		{
			name:    "empty file",
			content: "",
			want:    Default(),
		},
		{
			name:    "partial override",
			content: "color: never\nrecursive: true\n",
			want:    Config{Color: ColorNever, Workers: 4, Timeout: 5 * time.Minute, Recursive: true},
		},
		{
			name:    "duration",
			content: "timeout: 30s\nworkers: 8\n",
			want:    Config{Color: ColorAuto, Workers: 8, Timeout: 30 * time.Second},
		},
		{
			name:    "bad color",
			content: "color: sometimes\n",
			wantErr: true,
		},
		{
			name:    "negative workers",
			content: "workers: -1\n",
			wantErr: true,
		},
		{
			name:    "unknown field",
			content: "colour: never\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultPath)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	want := Config{Color: ColorAlways, Workers: 2, Timeout: time.Minute, Recursive: true}
	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
