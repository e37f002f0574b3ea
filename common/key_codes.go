package common

// KeyCode identifies a keyboard key independently of the windowing backend.
// Values match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type KeyCode int

// Keys read by the viewer's camera mapping.
const (
	KeyW     KeyCode = 87  // W key (ASCII)
	KeyA     KeyCode = 65  // A key (ASCII)
	KeyS     KeyCode = 83  // S key (ASCII)
	KeyD     KeyCode = 68  // D key (ASCII)
	KeyQ     KeyCode = 81  // Q key (ASCII)
	KeyE     KeyCode = 69  // E key (ASCII)
	KeyC     KeyCode = 67  // C key (ASCII)
	KeyN     KeyCode = 78  // N key (ASCII)
	KeySpace KeyCode = 32  // Spacebar (ASCII)
	KeyEsc   KeyCode = 256 // Escape key (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  KeyCode = 340 // Left Shift (GLFW)
	KeyRightShift KeyCode = 344 // Right Shift (GLFW)
)
