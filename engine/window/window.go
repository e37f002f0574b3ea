package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input state.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns the platform surface descriptor for WebGPU surface creation.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor, or nil if the window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsKeyDown reports whether key is currently held.
	//
	// Parameters:
	//   - key: the key to query
	//
	// Returns:
	//   - bool: true while the key is pressed
	IsKeyDown(key common.KeyCode) bool

	// MouseDelta returns the cursor movement since the previous call, in pixels.
	// Call it once per frame.
	//
	// Returns:
	//   - float32: horizontal movement, positive to the right
	//   - float32: vertical movement, positive downward
	MouseDelta() (float32, float32)

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: true until the window is closed or a close is requested
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close destroys the window and releases the platform library.
	//
	// Returns:
	//   - error: error if the window was never initialized
	Close() error

	// ProcessMessages runs the message loop on the calling goroutine, invoking the update callback
	// after each poll until the window stops running.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	//
	// Returns:
	//   - int: the width
	Width() int

	// Height returns the framebuffer height in pixels.
	//
	// Returns:
	//   - int: the height
	Height() int
}

// engineWindow is the platform-independent window state shared with the platform layer.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	width  int
	height int

	captureCursor bool

	input *inputState

	internalWindow any

	onUpdate func()
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "beagle",
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
		input:     newInputState(),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsKeyDown(key common.KeyCode) bool {
	return w.input.isDown(key)
}

func (w *engineWindow) MouseDelta() (float32, float32) {
	return w.input.takeMouseDelta()
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
