package hofp

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsDefaults(t *testing.T) {
	var options Options

	options.defaults()

	expected := Options{
		Context:   context.Background(),
		Size:      runtime.NumCPU(),
		LogPrefix: "(HOFP)",
	}

	require.Equal(t, expected, options)
}

func TestOptionsDefaultsKeepsValues(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	options := Options{Context: ctx, Size: 3, LogPrefix: "(Delete)"}

	options.defaults()

	require.Equal(t, ctx, options.Context)
	require.Equal(t, 3, options.Size)
	require.Equal(t, "(Delete)", options.LogPrefix)
}
