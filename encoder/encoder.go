package encoder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame is one rendered RGBA frame, bottom row first as GL reads it.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Config describes the video being written.
type Config struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	Codec      string
	FFMPEGPath string
}

// FrameSize is the byte length of one RGBA frame.
func (c Config) FrameSize() int {
	return c.Width * c.Height * 4
}

// ErrClosed is returned by WriteFrame after Close.
var ErrClosed = errors.New("encoder closed")

// numBuffers is the frame queue depth between the render loop and ffmpeg.
const numBuffers = 3

// FFmpegEncoder streams raw frames to an ffmpeg process over a pipe. The
// render loop produces frames on the GL thread and a single goroutine
// consumes them, so no GL state is shared.
type FFmpegEncoder struct {
	config Config
	frames chan *Frame
	done   chan error
	closed bool
}

// videoCodec picks the encoder for codec on goos, preferring the platform's
// hardware encoder.
func videoCodec(codec, goos string) string {
	switch goos {
	case "darwin":
		if codec == "hevc" {
			return "hevc_videotoolbox"
		}
		return "h264_videotoolbox"
	default:
		if codec == "hevc" {
			return "libx265"
		}
		return "libx264"
	}
}

func inputArgs(c Config) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", c.Width, c.Height),
		"framerate": fmt.Sprintf("%d", c.FPS),
	}
}

func outputArgs(c Config, goos string) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{
		// GL rows start at the bottom.
		"vf":      "vflip",
		"c:v":     videoCodec(c.Codec, goos),
		"pix_fmt": "yuv420p",
		"b:v":     "8M",
	}
	if c.Codec == "hevc" && strings.HasSuffix(c.OutputFile, ".mp4") {
		args["tag:v"] = "hvc1"
	}
	return args
}

// NewFFmpegEncoder starts ffmpeg writing to config.OutputFile.
func NewFFmpegEncoder(config Config) (*FFmpegEncoder, error) {
	if config.Width <= 0 || config.Height <= 0 || config.FPS <= 0 {
		return nil, fmt.Errorf("invalid encoder config %dx%d@%d", config.Width, config.Height, config.FPS)
	}
	e := &FFmpegEncoder{
		config: config,
		frames: make(chan *Frame, numBuffers),
		done:   make(chan error, 1),
	}

	pipeReader, pipeWriter := io.Pipe()
	cmd := ffmpeg.Input("pipe:", inputArgs(config)).
		Output(config.OutputFile, outputArgs(config, runtime.GOOS)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if config.FFMPEGPath != "" {
		cmd = cmd.SetFfmpegPath(config.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := cmd.Run()
		// Unblock the writer if ffmpeg exits early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	go e.run(pipeWriter, errc)

	log.Printf("Encoding %dx%d@%d to %s", config.Width, config.Height, config.FPS, config.OutputFile)
	return e, nil
}

func (e *FFmpegEncoder) run(w *io.PipeWriter, errc <-chan error) {
	var writeErr error
	for frame := range e.frames {
		if writeErr != nil {
			continue
		}
		if _, err := w.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
			log.Println(writeErr)
		}
	}
	w.Close()
	runErr := <-errc
	if runErr != nil {
		e.done <- fmt.Errorf("ffmpeg failed: %w", runErr)
		return
	}
	e.done <- writeErr
}

// WriteFrame queues frame for encoding. It blocks while the queue is full.
func (e *FFmpegEncoder) WriteFrame(frame *Frame) error {
	if e.closed {
		return ErrClosed
	}
	if len(frame.Pixels) != e.config.FrameSize() {
		return fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), e.config.FrameSize())
	}
	e.frames <- frame
	return nil
}

// Close flushes queued frames and waits for ffmpeg to exit.
func (e *FFmpegEncoder) Close() error {
	if e.closed {
		return ErrClosed
	}
	e.closed = true
	close(e.frames)
	return <-e.done
}
