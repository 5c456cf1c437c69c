package graphicstest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadPixelsEmptyDestination(t *testing.T) {
	d := NewDevice()
	d.ReadPixels(0, 0, 0, 0, nil)
	require.Empty(t, d.Violations)

	d.ReadPixels(0, 0, 2, 2, nil)
	require.Len(t, d.Violations, 1)
}

func TestReadPixelsFillsDestination(t *testing.T) {
	d := NewDevice()
	dst := make([]byte, 2*2*4)
	d.ReadPixels(0, 0, 2, 2, dst)
	require.Empty(t, d.Violations)
	for _, b := range dst {
		require.Equal(t, byte(0xff), b)
	}
}

func TestClearColorRecorded(t *testing.T) {
	d := NewDevice()
	d.ClearColor(0.1, 0.2, 0.3, 1)
	require.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, d.ClearRGBA)
	require.Equal(t, []string{"ClearColor"}, d.CallNames())
}
