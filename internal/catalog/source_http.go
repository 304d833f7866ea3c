package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/sirupsen/logrus"
	"resty.dev/v3"

	apperrors "github.com/SirClappington/dj-product-explorer/internal/errors"
)

// HTTPSource downloads the dataset from a plain URL.
type HTTPSource struct {
	url        string
	httpClient *resty.Client
	logger     *logrus.Logger
}

func NewHTTPSource(rawURL string, timeout time.Duration, logger *logrus.Logger) *HTTPSource {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,*/*;q=0.8")

	return &HTTPSource{
		url:        rawURL,
		httpClient: client,
		logger:     logger,
	}
}

// Name returns the URL path so the extension still selects the decoder.
func (s *HTTPSource) Name() string {
	u, err := url.Parse(s.url)
	if err != nil {
		return s.url
	}
	return u.Scheme + "://" + u.Host + path.Clean("/"+u.Path)
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return nil, apperrors.NewExternalError("http", fmt.Errorf("failed to fetch dataset: %w", err))
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("dataset %s not found", s.url))
	}
	if resp.IsError() {
		return nil, apperrors.NewExternalError("http", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status()))
	}

	data := []byte(resp.String())
	s.logger.WithFields(logrus.Fields{
		"url":   s.url,
		"bytes": len(data),
	}).Info("Dataset downloaded over http")
	return data, nil
}
