package options

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ModeWindow = "window"
	ModeRecord = "record"
)

// Settings describe the window. They never change after startup.
type Settings struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// DefaultSettings are used when neither flags nor a config file say otherwise.
var DefaultSettings = Settings{
	Title:  "My Engine",
	Width:  1280,
	Height: 720,
}

func (s Settings) Validate() error {
	if s.Title == "" {
		return errors.New("title must not be empty")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", s.Width, s.Height)
	}
	return nil
}

// LoadSettings reads settings from a YAML file. Fields missing from the
// file keep their value from base.
func LoadSettings(path string, base Settings) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	s := base
	if err := yaml.Unmarshal(data, &s); err != nil {
		return base, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return s, nil
}

type Options struct {
	Title      *string
	Width      *int
	Height     *int
	ConfigFile *string
	Help       *bool
	Mode       *string
	Duration   *float64
	FPS        *int
	OutputFile *string
	Codec      *string
	FFMPEGPath *string
	Headless   *bool

	set map[string]bool
}

// Register defines the command-line flags on fs.
func Register(fs *flag.FlagSet) *Options {
	return &Options{
		Title:      fs.String("title", DefaultSettings.Title, "Window title"),
		Width:      fs.Int("width", DefaultSettings.Width, "Window width"),
		Height:     fs.Int("height", DefaultSettings.Height, "Window height"),
		ConfigFile: fs.String("config", "", "YAML file with title, width and height"),
		Help:       fs.Bool("help", false, "Show help message"),
		Mode:       fs.String("mode", ModeWindow, "Run mode: window or record"),
		Duration:   fs.Float64("duration", 5.0, "Duration to record in seconds"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		OutputFile: fs.String("output", "output.mp4", "Output file name for recording"),
		Codec:      fs.String("codec", "h264", "Video codec for recording (h264 or hevc)"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Headless:   fs.Bool("headless", false, "Record through an EGL pbuffer instead of a hidden window (Linux only)"),
	}
}

// Parse parses args into a new Options.
func Parse(fs *flag.FlagSet, args []string) (*Options, error) {
	o := Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		o.set[f.Name] = true
	})
	return o, nil
}

// Settings resolves the window settings: defaults, then the config file,
// then any flag given explicitly on the command line.
func (o *Options) Settings() (Settings, error) {
	s := DefaultSettings
	if *o.ConfigFile != "" {
		var err error
		if s, err = LoadSettings(*o.ConfigFile, s); err != nil {
			return s, err
		}
	}
	if o.set["title"] || *o.ConfigFile == "" {
		s.Title = *o.Title
	}
	if o.set["width"] || *o.ConfigFile == "" {
		s.Width = *o.Width
	}
	if o.set["height"] || *o.ConfigFile == "" {
		s.Height = *o.Height
	}
	return s, s.Validate()
}

// Frames is the number of frames a recording holds.
func (o *Options) Frames() int {
	return int(*o.Duration * float64(*o.FPS))
}

func (o *Options) Validate() error {
	switch *o.Mode {
	case ModeWindow:
		if *o.Headless {
			return errors.New("headless rendering requires record mode")
		}
	case ModeRecord:
		if *o.FPS <= 0 {
			return fmt.Errorf("fps must be positive, got %d", *o.FPS)
		}
		if o.Frames() <= 0 {
			return fmt.Errorf("duration %.2fs at %d fps records no frames", *o.Duration, *o.FPS)
		}
		if *o.OutputFile == "" {
			return errors.New("output file must be set in record mode")
		}
		if *o.Codec != "h264" && *o.Codec != "hevc" {
			return fmt.Errorf("unsupported codec %q", *o.Codec)
		}
	default:
		return fmt.Errorf("unknown mode %q", *o.Mode)
	}
	return nil
}
