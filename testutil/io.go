package testutil

import (
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// ReadAll reads everything from the given reader fatally terminating the current test in the event of a failure.
func ReadAll(t *testing.T, reader io.Reader) []byte {
	data, err := io.ReadAll(reader)
	require.NoError(t, err)

	return data
}

// RandomBytes returns n bytes of random data, used as object payloads.
func RandomBytes(t *testing.T, n int) []byte {
	data := make([]byte, n)

	_, err := rand.Read(data)
	require.NoError(t, err)

	return data
}
