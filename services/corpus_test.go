package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "all_data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCorpus(t *testing.T) {
	path := writeFile(t, `[
		{"text": "Docker containers are lightweight", "source": "http://a", "title": "Docker Guide"},
		{"body": "post body", "url": "http://b", "extra": 42},
		{}
	]`)

	recs, err := LoadCorpus(path)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Docker Guide", recs[0].Title)
	assert.Equal(t, "post body", recs[1].Body)
	assert.Equal(t, "http://b", recs[1].URL)
}

func TestLoadCorpus_NullFieldsAreEmpty(t *testing.T) {
	recs, err := LoadCorpus(writeFile(t, `[{"text": null, "body": "b", "title": null}]`))
	require.NoError(t, err)
	assert.Equal(t, "", recs[0].Text)
	assert.Equal(t, "b", recs[0].Body)
}

func TestLoadCorpus_EmptyArray(t *testing.T) {
	recs, err := LoadCorpus(writeFile(t, `[]`))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLoadCorpus_Errors(t *testing.T) {
	_, err := LoadCorpus(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	for _, content := range []string{``, `null`, `{"text": "not an array"}`, `[{"text": `, `["plain string"]`} {
		_, err := LoadCorpus(writeFile(t, content))
		assert.Error(t, err, "content %q", content)
	}
}
