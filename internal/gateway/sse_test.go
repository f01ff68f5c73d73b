package gateway

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEWriterSend(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewSSEWriter(rec)

	require.NoError(t, w.Send("text", "hello"))
	require.NoError(t, w.Send("done", map[string]string{"run_id": "run-1"}))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "event: text\ndata: \"hello\"\n\nevent: done\ndata: {\"run_id\":\"run-1\"}\n\n",
		rec.Body.String())
}

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("client gone")
}

func TestSSEWriterSendSurfacesWriteError(t *testing.T) {
	w := NewSSEWriter(brokenWriter{httptest.NewRecorder()})
	err := w.Send("text", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client gone")
}
