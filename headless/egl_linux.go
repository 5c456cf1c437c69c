//go:build linux

package headless

import (
	"errors"
	"fmt"
	"log"
	"unsafe"

	"github.com/richinsley/gotriangle/graphics"
)

/*
#cgo LDFLAGS: -lEGL
#include <EGL/egl.h>
#include <EGL/eglext.h>

// Go doesn't have a great way to call function pointers from C,
// so we'll create simple wrappers for the extension functions.
static PFNEGLQUERYDEVICESEXTPROC eglQueryDevicesEXT_ptr = NULL;
static PFNEGLGETPLATFORMDISPLAYEXTPROC eglGetPlatformDisplayEXT_ptr = NULL;

static void initialize_egl_extension_pointers() {
    eglQueryDevicesEXT_ptr = (PFNEGLQUERYDEVICESEXTPROC) eglGetProcAddress("eglQueryDevicesEXT");
    eglGetPlatformDisplayEXT_ptr = (PFNEGLGETPLATFORMDISPLAYEXTPROC) eglGetProcAddress("eglGetPlatformDisplayEXT");
}

static EGLDisplay get_platform_display(EGLenum platform, void *native_display, const EGLint *attrib_list) {
    if (eglGetPlatformDisplayEXT_ptr) {
        return eglGetPlatformDisplayEXT_ptr(platform, native_display, attrib_list);
    }
    return EGL_NO_DISPLAY;
}

static EGLBoolean query_devices(EGLint max_devices, EGLDeviceEXT *devices, EGLint *num_devices) {
    if (eglQueryDevicesEXT_ptr) {
        return eglQueryDevicesEXT_ptr(max_devices, devices, num_devices);
    }
    return EGL_FALSE;
}
*/
import "C"

// Platform renders into EGL pbuffer surfaces with no window system. Each
// "window" is a pbuffer with a desktop GL 4.1 core context, so the same
// device and shaders work as with GLFW.
type Platform struct {
	display C.EGLDisplay
	config  C.EGLConfig
}

var _ graphics.Platform = (*Platform)(nil)

func NewPlatform() (graphics.Platform, error) {
	return &Platform{display: C.EGLDisplay(C.EGL_NO_DISPLAY)}, nil
}

// getEGLDisplay tries device enumeration first, falling back to the
// default display.
func getEGLDisplay() (C.EGLDisplay, error) {
	C.initialize_egl_extension_pointers()

	var numDevices C.EGLint
	if C.query_devices(0, nil, &numDevices) == C.EGL_FALSE || numDevices == 0 {
		log.Println("Warning: EGL_EXT_device_query not supported or no devices found. Falling back to EGL_DEFAULT_DISPLAY.")
		display := C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY))
		if display == C.EGLDisplay(C.EGL_NO_DISPLAY) {
			return C.EGLDisplay(C.EGL_NO_DISPLAY), errors.New("fallback to eglGetDisplay(EGL_DEFAULT_DISPLAY) failed")
		}
		return display, nil
	}

	log.Printf("Found %d EGL device(s).", numDevices)
	devices := make([]C.EGLDeviceEXT, numDevices)
	if C.query_devices(numDevices, &devices[0], &numDevices) == C.EGL_FALSE {
		return C.EGLDisplay(C.EGL_NO_DISPLAY), errors.New("failed to query EGL devices")
	}

	for i := 0; i < int(numDevices); i++ {
		display := C.get_platform_display(C.EGL_PLATFORM_DEVICE_EXT, unsafe.Pointer(devices[i]), nil)
		if display != C.EGLDisplay(C.EGL_NO_DISPLAY) {
			log.Printf("Using EGL display from device %d.", i)
			return display, nil
		}
	}

	return C.EGLDisplay(C.EGL_NO_DISPLAY), errors.New("could not get a valid EGL display from any available device")
}

func (p *Platform) Init() error {
	display, err := getEGLDisplay()
	if err != nil {
		return fmt.Errorf("failed to get EGL display: %w", err)
	}

	var major, minor C.EGLint
	if C.eglInitialize(display, &major, &minor) == C.EGL_FALSE {
		return errors.New("failed to initialize EGL")
	}
	if C.eglBindAPI(C.EGL_OPENGL_API) == C.EGL_FALSE {
		C.eglTerminate(display)
		return errors.New("EGL display does not support desktop OpenGL")
	}

	configAttribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_DEPTH_SIZE, 24,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_BIT,
		C.EGL_NONE,
	}
	var numConfig C.EGLint
	if C.eglChooseConfig(display, &configAttribs[0], &p.config, 1, &numConfig) == C.EGL_FALSE || numConfig == 0 {
		C.eglTerminate(display)
		return errors.New("failed to choose EGL config")
	}

	p.display = display
	log.Printf("EGL Initialized. Version: %d.%d", major, minor)
	return nil
}

func (p *Platform) Terminate() {
	if p.display == C.EGLDisplay(C.EGL_NO_DISPLAY) {
		return
	}
	C.eglTerminate(p.display)
	p.display = C.EGLDisplay(C.EGL_NO_DISPLAY)
	log.Printf("EGL Terminated")
}

// PollEvents is a no-op; a pbuffer receives no input.
func (p *Platform) PollEvents() {}

// CreateWindow creates a width×height pbuffer. The title is only logged.
func (p *Platform) CreateWindow(title string, width, height int) (graphics.Window, error) {
	if p.display == C.EGLDisplay(C.EGL_NO_DISPLAY) {
		return nil, errors.New("EGL is not initialized")
	}

	pbufferAttribs := []C.EGLint{
		C.EGL_WIDTH, C.EGLint(width),
		C.EGL_HEIGHT, C.EGLint(height),
		C.EGL_NONE,
	}
	surface := C.eglCreatePbufferSurface(p.display, p.config, &pbufferAttribs[0])
	if surface == C.EGLSurface(C.EGL_NO_SURFACE) {
		return nil, errors.New("failed to create Pbuffer surface")
	}

	contextAttribs := []C.EGLint{
		C.EGL_CONTEXT_MAJOR_VERSION, 4,
		C.EGL_CONTEXT_MINOR_VERSION, 1,
		C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
		C.EGL_NONE,
	}
	context := C.eglCreateContext(p.display, p.config, C.EGLContext(C.EGL_NO_CONTEXT), &contextAttribs[0])
	if context == C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroySurface(p.display, surface)
		return nil, errors.New("failed to create EGL context")
	}

	log.Printf("Created %dx%d pbuffer for %q", width, height, title)
	return &Surface{
		display: p.display,
		surface: surface,
		context: context,
		width:   width,
		height:  height,
	}, nil
}

// Surface is a pbuffer with its own context.
type Surface struct {
	display C.EGLDisplay
	surface C.EGLSurface
	context C.EGLContext

	width, height int
	shouldClose   bool
}

var _ graphics.Window = (*Surface)(nil)

func (s *Surface) MakeCurrent() {
	C.eglMakeCurrent(s.display, s.surface, s.surface, s.context)
}

// Show is a no-op; pbuffers are never visible.
func (s *Surface) Show() {}

func (s *Surface) ShouldClose() bool { return s.shouldClose }

func (s *Surface) SetShouldClose(value bool) { s.shouldClose = value }

func (s *Surface) SwapBuffers() {
	C.eglSwapBuffers(s.display, s.surface)
}

func (s *Surface) GetFramebufferSize() (int, int) {
	return s.width, s.height
}

func (s *Surface) Destroy() {
	C.eglMakeCurrent(s.display, C.EGLSurface(C.EGL_NO_SURFACE), C.EGLSurface(C.EGL_NO_SURFACE), C.EGLContext(C.EGL_NO_CONTEXT))
	if s.context != C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroyContext(s.display, s.context)
		s.context = C.EGLContext(C.EGL_NO_CONTEXT)
	}
	if s.surface != C.EGLSurface(C.EGL_NO_SURFACE) {
		C.eglDestroySurface(s.display, s.surface)
		s.surface = C.EGLSurface(C.EGL_NO_SURFACE)
	}
}
