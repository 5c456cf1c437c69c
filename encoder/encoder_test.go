package encoder

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var testConfig = Config{
	Width:      4,
	Height:     2,
	FPS:        30,
	OutputFile: "out.mp4",
	Codec:      "h264",
}

func TestFrameSize(t *testing.T) {
	require.Equal(t, 32, testConfig.FrameSize())
}

func TestVideoCodec(t *testing.T) {
	require.Equal(t, "libx264", videoCodec("h264", "linux"))
	require.Equal(t, "libx265", videoCodec("hevc", "windows"))
	require.Equal(t, "h264_videotoolbox", videoCodec("h264", "darwin"))
	require.Equal(t, "hevc_videotoolbox", videoCodec("hevc", "darwin"))
}

func TestArgs(t *testing.T) {
	require.Equal(t, ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         "4x2",
		"framerate": "30",
	}, inputArgs(testConfig))

	out := outputArgs(testConfig, "linux")
	require.Equal(t, "vflip", out["vf"])
	require.Equal(t, "libx264", out["c:v"])
	require.NotContains(t, out, "tag:v")

	hevc := testConfig
	hevc.Codec = "hevc"
	require.Equal(t, "hvc1", outputArgs(hevc, "linux")["tag:v"])

	hevc.OutputFile = "out.mkv"
	require.NotContains(t, outputArgs(hevc, "linux"), "tag:v")
	hevc.OutputFile = "out.mp4.mkv"
	require.NotContains(t, outputArgs(hevc, "linux"), "tag:v")
	hevc.OutputFile = ".mp4"
	require.Equal(t, "hvc1", outputArgs(hevc, "linux")["tag:v"])
}

func TestNewEncoderInvalidConfig(t *testing.T) {
	_, err := NewFFmpegEncoder(Config{Width: 0, Height: 2, FPS: 30})
	require.Error(t, err)
	_, err = NewFFmpegEncoder(Config{Width: 4, Height: 2, FPS: 0})
	require.Error(t, err)
}

// newPipedEncoder wires an encoder to an in-memory sink instead of ffmpeg.
func newPipedEncoder(runErr error) (*FFmpegEncoder, *bytes.Buffer, chan struct{}) {
	e := &FFmpegEncoder{
		config: testConfig,
		frames: make(chan *Frame, numBuffers),
		done:   make(chan error, 1),
	}
	pr, pw := io.Pipe()
	var sink bytes.Buffer
	drained := make(chan struct{})
	go func() {
		io.Copy(&sink, pr)
		close(drained)
	}()
	errc := make(chan error, 1)
	errc <- runErr
	go e.run(pw, errc)
	return e, &sink, drained
}

func TestWriteFrames(t *testing.T) {
	e, sink, drained := newPipedEncoder(nil)

	first := bytes.Repeat([]byte{1}, testConfig.FrameSize())
	second := bytes.Repeat([]byte{2}, testConfig.FrameSize())
	require.NoError(t, e.WriteFrame(&Frame{Pixels: first, PTS: 0}))
	require.NoError(t, e.WriteFrame(&Frame{Pixels: second, PTS: 1}))
	require.NoError(t, e.Close())
	<-drained

	require.Equal(t, append(first, second...), sink.Bytes())
	require.ErrorIs(t, e.WriteFrame(&Frame{Pixels: first}), ErrClosed)
	require.ErrorIs(t, e.Close(), ErrClosed)
}

func TestWriteFrameWrongSize(t *testing.T) {
	e, _, _ := newPipedEncoder(nil)
	require.Error(t, e.WriteFrame(&Frame{Pixels: make([]byte, 3)}))
	require.NoError(t, e.Close())
}

func TestCloseReportsFFmpegFailure(t *testing.T) {
	e, _, _ := newPipedEncoder(errors.New("exit status 1"))
	require.ErrorContains(t, e.Close(), "ffmpeg failed")
}
