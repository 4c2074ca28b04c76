package cord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	in := []byte(`{"op":6,"d":{"token":"T0k3n","session_id":"abc","seq":1}}`)

	assert.Equal(t, `{"op":6,"d":{"token":"[redacted]","session_id":"abc","seq":1}}`, string(redact(in, "T0k3n")))
	assert.Equal(t, string(in), string(redact(in, "")))
	assert.Equal(t, string(in), string(redact(in, "other")))
}
