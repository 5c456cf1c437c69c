package display

import (
	"errors"
	"testing"

	"github.com/richinsley/gotriangle/graphics"
	"github.com/richinsley/gotriangle/graphics/graphicstest"
	"github.com/stretchr/testify/require"
)

func TestNewDisplay(t *testing.T) {
	platform := &graphicstest.Platform{}
	device := graphicstest.NewDevice()

	d, err := New(platform, device, "Test", 640, 480, true)
	require.NoError(t, err)
	require.False(t, d.ShouldClose())
	require.True(t, device.Initialized)

	require.Len(t, platform.Windows, 1)
	w := platform.Windows[0]
	require.Equal(t, "Test", w.Title)
	require.Equal(t, 640, w.Width)
	require.Equal(t, 480, w.Height)
	require.True(t, w.Current)
	require.True(t, w.Visible)
	require.Equal(t, []string{"Init", "CreateWindow", "MakeCurrent", "Show"}, platform.Events)

	width, height := d.FramebufferSize()
	require.Equal(t, 640, width)
	require.Equal(t, 480, height)
}

func TestNewHiddenDisplay(t *testing.T) {
	platform := &graphicstest.Platform{}
	d, err := New(platform, graphicstest.NewDevice(), "Hidden", 320, 240, false)
	require.NoError(t, err)
	require.False(t, platform.Windows[0].Visible)
	d.Destroy()
}

func TestInitFailure(t *testing.T) {
	cause := errors.New("no display")
	platform := &graphicstest.Platform{InitErr: cause}

	_, err := New(platform, graphicstest.NewDevice(), "Test", 640, 480, true)
	require.ErrorIs(t, err, ErrInit)
	require.Contains(t, err.Error(), "no display")
	require.Empty(t, platform.Windows)
}

func TestWindowFailureTerminates(t *testing.T) {
	platform := &graphicstest.Platform{FailWindows: 1}
	device := graphicstest.NewDevice()

	_, err := New(platform, device, "Test", 640, 480, true)
	require.ErrorIs(t, err, ErrWindow)
	require.False(t, platform.Initialized)
	require.Equal(t, 1, platform.Terminates)
	require.False(t, device.Initialized)

	// The subsystem was released, so a second attempt starts cleanly.
	d, err := New(platform, device, "Test", 640, 480, true)
	require.NoError(t, err)
	require.False(t, d.ShouldClose())
	require.Equal(t, 2, platform.Inits)
}

func TestDeviceInitFailureReleasesWindow(t *testing.T) {
	platform := &graphicstest.Platform{}
	device := graphicstest.NewDevice()
	device.InitErr = errors.New("no GL")

	_, err := New(platform, device, "Test", 640, 480, true)
	require.ErrorIs(t, err, ErrInit)
	require.True(t, platform.Windows[0].Destroyed)
	require.False(t, platform.Initialized)
}

func TestClearAndUpdate(t *testing.T) {
	platform := &graphicstest.Platform{}
	device := graphicstest.NewDevice()
	d, err := New(platform, device, "Test", 640, 480, true)
	require.NoError(t, err)

	d.Clear()
	d.Update()

	require.Equal(t, []uint32{graphics.ColorBufferBit | graphics.DepthBufferBit}, device.Clears)
	require.Equal(t, 1, platform.Windows[0].Swaps)
	require.Equal(t, 1, platform.Polls)
	require.Equal(t, []string{"SwapBuffers", "PollEvents"}, platform.Events[len(platform.Events)-2:])
}

func TestRequestClose(t *testing.T) {
	d, err := New(&graphicstest.Platform{}, graphicstest.NewDevice(), "Test", 640, 480, true)
	require.NoError(t, err)
	require.False(t, d.ShouldClose())
	d.RequestClose()
	require.True(t, d.ShouldClose())
}

func TestDestroy(t *testing.T) {
	platform := &graphicstest.Platform{}
	device := graphicstest.NewDevice()
	d, err := New(platform, device, "Test", 640, 480, true)
	require.NoError(t, err)

	d.Destroy()
	require.True(t, d.Destroyed())
	require.True(t, platform.Windows[0].Destroyed)
	require.False(t, platform.Initialized)

	// Nothing reaches the destroyed window afterwards.
	d.Destroy()
	d.Clear()
	d.Update()
	require.True(t, d.ShouldClose())
	width, height := d.FramebufferSize()
	require.Zero(t, width)
	require.Zero(t, height)

	require.Zero(t, platform.Windows[0].UseAfterDestroy)
	require.Equal(t, 1, platform.Terminates)
	require.Empty(t, device.Clears)
}
