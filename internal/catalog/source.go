package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/SirClappington/dj-product-explorer/internal/config"
	"github.com/sirupsen/logrus"
)

// Source fetches the raw dataset bytes.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	// Name identifies the dataset in logs and errors; its extension selects
	// the decoder.
	Name() string
}

// NewSource picks a Source implementation from the scheme of cfg.Dataset.Source.
func NewSource(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (Source, error) {
	raw := cfg.Dataset.Source

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// No scheme, or a Windows drive letter.
		return NewLocalSource(raw), nil
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return NewLocalSource(u.Path), nil
	case "gs":
		src, err := NewGCSSource(ctx, u.Host, strings.TrimPrefix(u.Path, "/"), cfg.GCP.CredentialsFile, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "s3":
		src, err := NewS3Source(ctx, u.Host, strings.TrimPrefix(u.Path, "/"), cfg.AWS.Region, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "http", "https":
		return NewHTTPSource(raw, cfg.Dataset.FetchTimeout(), logger), nil
	default:
		return nil, fmt.Errorf("unsupported dataset source scheme %q", u.Scheme)
	}
}
