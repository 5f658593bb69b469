package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("missing")

type mockParser struct {
	parseFunc func(data []byte, target any, path string) error
}

func (m *mockParser) Parse(data []byte, target any, path string) error {
	return m.parseFunc(data, target, path)
}

type mockDataFetcher struct {
	fetchFunc func() ([]byte, error)
}

func (m *mockDataFetcher) Fetch() ([]byte, error) {
	return m.fetchFunc()
}

type storageConfig struct {
	BaseDir  string
	defaults int
	err      error
}

func (c *storageConfig) SetDefaults() bool {
	c.defaults++

	if c.BaseDir == "" {
		c.BaseDir = "data"

		return true
	}

	return false
}

func (c *storageConfig) Validate() error {
	return c.err
}

func staticFetcher(data string) *mockDataFetcher {
	return &mockDataFetcher{
		fetchFunc: func() ([]byte, error) {
			return []byte(data), nil
		},
	}
}

func setBaseDir(dir string) *mockParser {
	return &mockParser{
		parseFunc: func(_ []byte, target any, _ string) error {
			cfg, ok := target.(*storageConfig)
			if !ok {
				return errors.New("invalid target type")
			}

			cfg.BaseDir = dir

			return nil
		},
	}
}

func TestProvider_Success(t *testing.T) {
	t.Parallel()

	target := &storageConfig{}

	result, err := Provider(target, "storage")(setBaseDir("/srv"), staticFetcher("data"))
	require.NoError(t, err)

	assert.Same(t, target, result)
	assert.Equal(t, "/srv", result.BaseDir)
	assert.Equal(t, 1, result.defaults)
}

func TestProvider_PassesSectionPath(t *testing.T) {
	t.Parallel()

	var gotPath string

	parser := &mockParser{
		parseFunc: func(_ []byte, _ any, path string) error {
			gotPath = path

			return nil
		},
	}

	_, err := Provider(&storageConfig{}, "http.api")(parser, staticFetcher("data"))
	require.NoError(t, err)
	assert.Equal(t, "http.api", gotPath)
}

func TestProvider_DefaultsApplied(t *testing.T) {
	t.Parallel()

	result, err := Provider(&storageConfig{}, "storage")(setBaseDir(""), staticFetcher("data"))
	require.NoError(t, err)
	assert.Equal(t, "data", result.BaseDir)
}

func TestProvider_Errors(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("fetch failed")
	parseErr := errors.New("parse failed")
	validationErr := errors.New("validation failed")

	tests := []struct {
		name      string
		fetchFunc func() ([]byte, error)
		parseFunc func(data []byte, target any, path string) error
		targetErr error
		wantErr   error
	}{
		{
			name:      "fetch error",
			fetchFunc: func() ([]byte, error) { return nil, fetchErr },
			parseFunc: func(_ []byte, _ any, _ string) error { return nil },
			wantErr:   fetchErr,
		},
		{
			name:      "parse error",
			fetchFunc: func() ([]byte, error) { return []byte("data"), nil },
			parseFunc: func(_ []byte, _ any, _ string) error { return parseErr },
			wantErr:   parseErr,
		},
		{
			name:      "validation error",
			fetchFunc: func() ([]byte, error) { return []byte("data"), nil },
			parseFunc: func(_ []byte, _ any, _ string) error { return nil },
			targetErr: validationErr,
			wantErr:   validationErr,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			target := &storageConfig{err: testInfo.targetErr}
			parser := &mockParser{parseFunc: testInfo.parseFunc}
			fetcher := &mockDataFetcher{fetchFunc: testInfo.fetchFunc}

			result, err := Provider(target, "storage")(parser, fetcher)

			assert.Nil(t, result)
			require.ErrorIs(t, err, testInfo.wantErr)
		})
	}
}

func TestOptional_MissingSectionUsesDefaults(t *testing.T) {
	t.Parallel()

	parser := &mockParser{
		parseFunc: func(_ []byte, _ any, _ string) error {
			return errMissing
		},
	}
	isMissing := func(err error) bool { return errors.Is(err, errMissing) }

	result, err := Optional(&storageConfig{}, "storage", isMissing)(parser, staticFetcher("data"))
	require.NoError(t, err)
	assert.Equal(t, "data", result.BaseDir)
}

func TestOptional_OtherErrorsPropagate(t *testing.T) {
	t.Parallel()

	parseErr := errors.New("parse failed")
	parser := &mockParser{
		parseFunc: func(_ []byte, _ any, _ string) error {
			return parseErr
		},
	}
	isMissing := func(err error) bool { return errors.Is(err, errMissing) }

	result, err := Optional(&storageConfig{}, "storage", isMissing)(parser, staticFetcher("data"))
	require.ErrorIs(t, err, parseErr)
	assert.Nil(t, result)
}
