package msg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMessageFormatsPlaceholders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
test:
  greeting: "hello {0}, you have {1} visits"
  detail: "payload {0}"
  failure: "failed: {0}"
  elapsed: "took {0}"
`), 0o644))

	Init(path)

	assert.Equal(t, "hello Lima, you have 3 visits", GetMessage("test.greeting", "Lima", 3))
	assert.Equal(t, `payload {"a":1}`, GetMessage("test.detail", map[string]int{"a": 1}))
	assert.Equal(t, "failed: boom", GetMessage("test.failure", errors.New("boom")))
	assert.Equal(t, "took 1.5s", GetMessage("test.elapsed", 1500*time.Millisecond))
	assert.Equal(t, "Message not found: test.unknown", GetMessage("test.unknown"))
}

func TestApplicationCatalogueLoaded(t *testing.T) {
	assert.NotContains(t, GetMessage("app.start"), "Message not found")
	assert.NotContains(t, GetMessage("city.empty"), "Message not found")
}
