package file_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	yamlcodec "github.com/0xalexb/hjarta-kv/codec/yaml"
	"github.com/0xalexb/hjarta-kv/store"
	"github.com/0xalexb/hjarta-kv/store/file"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errEncode = errors.New("encode failed")

type failingCodec struct {
	yamlcodec.Codec
}

func (c *failingCodec) Marshal(_ map[string]any) ([]byte, error) {
	return nil, errEncode
}

func TestStore_Exists(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	st := file.NewStore(yamlcodec.NewCodec())

	location := filepath.Join(tmpDir, "doc.yaml")
	assert.False(t, st.Exists(location))

	err := os.WriteFile(location, []byte("a: 1\n"), 0o600)
	require.NoError(t, err)

	assert.True(t, st.Exists(location))
	assert.Equal(t, ".yaml", st.Extension())
}

func TestStore_WriteRead(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	st := file.NewStore(yamlcodec.NewCodec())
	location := filepath.Join(tmpDir, "nested", "dir", "doc.yaml")

	err := st.Write(location, map[string]any{
		"server": map[string]any{"port": 8080},
	})
	require.NoError(t, err)

	info, err := os.Stat(location)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	doc, err := st.Read(location)
	require.NoError(t, err)

	server, isMap := doc["server"].(map[string]any)
	require.True(t, isMap)
	assert.EqualValues(t, 8080, server["port"])
}

func TestStore_WriteReplacesContent(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	st := file.NewStore(yamlcodec.NewCodec())
	location := filepath.Join(tmpDir, "doc.yaml")

	require.NoError(t, st.Write(location, map[string]any{"old": true}))
	require.NoError(t, st.Write(location, map[string]any{"new": true}))

	doc, err := st.Read(location)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"new": true}, doc)

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files should be left behind")
}

func TestStore_Read_Errors(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	st := file.NewStore(yamlcodec.NewCodec())

	corrupt := filepath.Join(tmpDir, "corrupt.yaml")
	require.NoError(t, os.WriteFile(corrupt, []byte("- not\n- a mapping\n"), 0o600))

	_, err := st.Read(corrupt)
	require.ErrorIs(t, err, store.ErrCorrupt)
	assert.Contains(t, err.Error(), "corrupt.yaml")

	_, err = st.Read(filepath.Join(tmpDir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = st.Read(tmpDir)
	require.ErrorIs(t, err, file.ErrPathIsDirectory)
}

func TestStore_Write_EncodeError(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	st := file.NewStore(&failingCodec{})
	location := filepath.Join(tmpDir, "doc.yaml")

	err := st.Write(location, map[string]any{})
	require.ErrorIs(t, err, errEncode)
	assert.False(t, st.Exists(location))
}

func TestStore_Write_UnwritableDirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	st := file.NewStore(yamlcodec.NewCodec())

	err := st.Write(filepath.Join(blocker, "doc.yaml"), map[string]any{})
	require.Error(t, err)
}

var _ store.Store = (*file.Store)(nil)
