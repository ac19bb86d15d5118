package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/newthinker/veritas/internal/config"
	"github.com/newthinker/veritas/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"simple", "s3://results/run-42.json", "results", "run-42.json", false},
		{"nested key", "s3://results/2026/08/run.json", "results", "2026/08/run.json", false},
		{"missing key", "s3://results", "", "", true},
		{"missing bucket", "s3:///run.json", "", "", true},
		{"trailing slash only", "s3://results/", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := ParseS3URI(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, core.ErrBadLocation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"finalEquity":1050}`), 0o644))

	rc, err := Open(context.Background(), path, config.InputConfig{})
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `{"finalEquity":1050}`, string(data))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.json"), config.InputConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInputRead))
}

func TestOpen_Stdin(t *testing.T) {
	for _, loc := range []string{"", "-"} {
		rc, err := Open(context.Background(), loc, config.InputConfig{})
		require.NoError(t, err)
		assert.NotNil(t, rc)
	}
}

func TestOpen_BadS3URI(t *testing.T) {
	_, err := Open(context.Background(), "s3://only-bucket", config.InputConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrBadLocation))
}

func TestNewS3(t *testing.T) {
	store, err := NewS3("results", config.S3Config{
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "results", store.bucket)
}
