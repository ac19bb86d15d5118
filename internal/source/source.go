// Package source resolves where the backtest record comes from: stdin by
// default, a local file, or an s3:// object.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/newthinker/veritas/internal/config"
	"github.com/newthinker/veritas/internal/core"
)

// Open returns a reader over the record at location. An empty location or
// "-" means stdin.
func Open(ctx context.Context, location string, cfg config.InputConfig) (io.ReadCloser, error) {
	switch {
	case location == "" || location == "-":
		return io.NopCloser(os.Stdin), nil

	case strings.HasPrefix(location, "s3://"):
		bucket, key, err := ParseS3URI(location)
		if err != nil {
			return nil, err
		}
		store, err := NewS3(bucket, cfg.S3)
		if err != nil {
			return nil, core.WrapError(core.ErrSourceFailed, err)
		}
		data, err := store.Read(ctx, key)
		if err != nil {
			return nil, core.WrapError(core.ErrSourceFailed, err)
		}
		return io.NopCloser(bytes.NewReader(data)), nil

	default:
		f, err := os.Open(location)
		if err != nil {
			return nil, core.WrapError(core.ErrInputRead, err)
		}
		return f, nil
	}
}

// ParseS3URI splits s3://bucket/key into its parts.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(uri, "s3://")
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", core.WrapError(core.ErrBadLocation,
			fmt.Errorf("expected s3://bucket/key, got %q", uri))
	}
	return bucket, key, nil
}
