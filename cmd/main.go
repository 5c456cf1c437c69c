package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/richinsley/gotriangle/encoder"
	"github.com/richinsley/gotriangle/gldevice"
	"github.com/richinsley/gotriangle/glfwcontext"
	"github.com/richinsley/gotriangle/graphics"
	"github.com/richinsley/gotriangle/headless"
	"github.com/richinsley/gotriangle/options"
	"github.com/richinsley/gotriangle/renderer"
	"github.com/richinsley/gotriangle/shader"
)

func init() {
	// GLFW and GL calls must all come from the main thread.
	runtime.LockOSThread()
}

func main() {
	opts, err := options.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Error parsing flags: %v", err)
	}
	if *opts.Help {
		fmt.Println("Triangle Viewer/Recorder")
		flag.PrintDefaults()
		return
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	settings, err := opts.Settings()
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	var platform graphics.Platform = glfwcontext.NewPlatform()
	if *opts.Headless {
		if platform, err = headless.NewPlatform(); err != nil {
			log.Fatalf("Failed to create headless platform: %v", err)
		}
	}

	r := renderer.NewRenderer(settings, platform, gldevice.New(), shader.Translate)

	if *opts.Mode == options.ModeRecord {
		newWriter := func(width, height int) (renderer.FrameWriter, error) {
			enc, err := encoder.NewFFmpegEncoder(encoder.Config{
				Width:      width,
				Height:     height,
				FPS:        *opts.FPS,
				OutputFile: *opts.OutputFile,
				Codec:      *opts.Codec,
				FFMPEGPath: *opts.FFMPEGPath,
			})
			if err != nil {
				return nil, err
			}
			return enc, nil
		}
		if err := r.RunOffscreen(newWriter, opts.Frames()); err != nil {
			log.Fatalf("Offscreen rendering failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return
	}

	if err := r.Run(); err != nil {
		log.Fatalf("Renderer failed: %v", err)
	}
}
