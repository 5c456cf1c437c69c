//go:build !linux

package headless

import (
	"errors"

	"github.com/richinsley/gotriangle/graphics"
)

func NewPlatform() (graphics.Platform, error) {
	return nil, errors.New("egl headless rendering is not supported on this platform")
}
