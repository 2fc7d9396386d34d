package config

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFolder(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(path.Join(dir, "public.yaml"), []byte(public), 0644))
	require.NoError(t, os.WriteFile(path.Join(dir, "private.yaml"), []byte(private), 0644))
	return dir
}

func TestMustLoad(t *testing.T) {
	t.Run("loads both files into one config", func(t *testing.T) {
		dir := writeConfigFolder(t, `
listen_addr: ":8080"
converter_url: "http://converter:9000/convert"
max_file_count: 5
max_file_size_bytes: 4718592
accepted_kinds:
  - "image/*"
  - ".pdf"
metadata_index_enabled: true
`, `
pg:
  host: localhost
  port: 5432
  user: kaiwa
  password: secret
  dbname: kaiwa
`)

		cfg := MustLoad(dir)

		assert.Equal(t, ":8080", cfg.Public.ListenAddr)
		assert.Equal(t, 5, cfg.Public.MaxFileCount)
		assert.Equal(t, int64(4718592), cfg.Public.MaxFileSizeBytes)
		assert.Equal(t, []string{"image/*", ".pdf"}, cfg.Public.AcceptedKinds)
		assert.True(t, cfg.Public.MetadataIndexEnabled)
		assert.Equal(t, "localhost", cfg.Private.Pg.Host)
		assert.Equal(t, 5432, cfg.Private.Pg.Port)
	})

	t.Run("missing file panics", func(t *testing.T) {
		assert.Panics(t, func() { MustLoad(t.TempDir()) })
	})

	t.Run("malformed yaml panics", func(t *testing.T) {
		dir := writeConfigFolder(t, "listen_addr: [unclosed", "pg: {}")

		assert.Panics(t, func() { MustLoad(dir) })
	})
}

func TestDefaultLimit(t *testing.T) {
	cfg := &Config{Public: Public{
		MaxFileCount:     3,
		MaxFileSizeBytes: 1024,
		AcceptedKinds:    []string{"image/*"},
	}}

	limit := cfg.DefaultLimit()

	assert.Equal(t, 3, limit.MaxFileCount)
	assert.Equal(t, int64(1024), limit.MaxFileSizeBytes)
	assert.Equal(t, []string{"image/*"}, limit.AcceptedKinds)
}
