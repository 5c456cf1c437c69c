package graphics

// Window is a native window owning one rendering context.
type Window interface {
	MakeCurrent()
	Show()
	ShouldClose() bool
	SetShouldClose(value bool)
	SwapBuffers()
	GetFramebufferSize() (int, int)
	Destroy()
}

// Platform is the process-wide windowing subsystem. Init must succeed
// before any window exists and Terminate releases everything Init acquired.
// All methods must be called from the main thread.
type Platform interface {
	Init() error
	Terminate()
	CreateWindow(title string, width, height int) (Window, error)
	PollEvents()
}
