package catalog

import (
	"context"
	"fmt"
	"os"
)

type LocalSource struct {
	path string
}

func NewLocalSource(path string) *LocalSource {
	return &LocalSource{path: path}
}

func (s *LocalSource) Name() string {
	return s.path
}

func (s *LocalSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset file: %w", err)
	}
	return data, nil
}
