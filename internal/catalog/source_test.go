package catalog

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirClappington/dj-product-explorer/internal/config"
	apperrors "github.com/SirClappington/dj-product-explorer/internal/errors"
)

func TestNewSource_Dispatch(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{Dataset: config.DatasetConfig{Timeout: 5}}

	cfg.Dataset.Source = "data/brands_data.csv"
	src, err := NewSource(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &LocalSource{}, src)
	assert.Equal(t, "data/brands_data.csv", src.Name())

	cfg.Dataset.Source = "file:///srv/brands_data.csv"
	src, err = NewSource(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, "/srv/brands_data.csv", src.Name())

	cfg.Dataset.Source = "https://example.com/exports/brands.xlsx?token=abc"
	src, err = NewSource(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, src)
	assert.Equal(t, "https://example.com/exports/brands.xlsx", src.Name())

	cfg.Dataset.Source = "ftp://example.com/brands.csv"
	_, err = NewSource(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, "unsupported dataset source scheme")

	cfg.Dataset.Source = "gs://bucket-only"
	_, err = NewSource(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, "needs both a bucket and an object name")
}

func TestHTTPSource_Fetch(t *testing.T) {
	logger, _ := test.NewNullLogger()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/brands_data.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, header+"desc,Acme,2020,US,A,B,1,,\n")
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL+"/brands_data.csv", 5*time.Second, logger)
	table, err := Load(context.Background(), src, LoadOptions{}, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "Acme", table.Products()[0].Brand)

	missing := NewHTTPSource(server.URL+"/missing.csv", 5*time.Second, logger)
	_, err = missing.Fetch(context.Background())
	var apiErr *apperrors.APIError
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, apperrors.ErrorTypeNotFound, apiErr.Type)
}

type fakeS3 struct {
	objects map[string]string
	calls   []*s3.GetObjectInput
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls = append(f.calls, params)
	body, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("not found")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Source_Fetch(t *testing.T) {
	logger, _ := test.NewNullLogger()
	client := &fakeS3{objects: map[string]string{
		"catalog/exports/brands_data.csv": header + "desc,Acme,2020,US,A,B,1,,\n",
	}}

	src := NewS3SourceWithClient(client, "catalog", "exports/brands_data.csv", logger)
	assert.Equal(t, "s3://catalog/exports/brands_data.csv", src.Name())

	table, err := Load(context.Background(), src, LoadOptions{}, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	require.Len(t, client.calls, 1)
	assert.Equal(t, "exports/brands_data.csv", aws.ToString(client.calls[0].Key))

	_, err = NewS3SourceWithClient(client, "catalog", "other.csv", logger).Fetch(context.Background())
	var apiErr *apperrors.APIError
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, apperrors.ErrorTypeNotFound, apiErr.Type)
}
