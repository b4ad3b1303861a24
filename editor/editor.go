package editor

import (
	"log"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/dovahkit/perktree_editor/render/glrender"
	"github.com/dovahkit/perktree_editor/view"
)

// Editor is the desktop shell: a GL window whose pointer drives the drag
// editing directly, without the websocket round trip the web shell uses.
type Editor struct {
	v      *view.View
	window *glfw.Window
	ren    *glrender.GLRenderer
}

// New initializes glfw and a GL 4.3 core context. Call Run from the same
// goroutine; glfw event handling is bound to the thread that created the
// window.
func New(v *view.View, width, height int, title string) (*Editor, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw init")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create window")
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, errors.Wrap(err, "gl init")
	}

	log.Printf("[editor] GL version %q", gl.GoStr(gl.GetString(gl.VERSION)))

	e := &Editor{
		v:      v,
		window: window,
		ren:    glrender.New(),
	}
	e.installCallbacks()
	return e, nil
}

func (e *Editor) installCallbacks() {
	e.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			px, py := e.cursor()
			fw, fh := e.framebuffer()
			e.v.PointerDown(px, py, fw, fh)
		case glfw.Release:
			e.v.PointerUp()
		}
	})

	e.window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if _, dragging := e.v.DraggedNode(); !dragging {
			return
		}
		px, py := e.cursor()
		fw, fh := e.framebuffer()
		e.v.PointerMove(px, py, fw, fh)
	})

	e.window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		e.v.SetLookAtOffsetZ(e.v.LookAtOffset().Z() + float32(yoff))
	})

	e.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		e.v.RequestRedraw()
	})
}

// cursor reports the pointer in framebuffer pixels. Window and framebuffer
// coordinates differ on high-DPI displays.
func (e *Editor) cursor() (float32, float32) {
	cx, cy := e.window.GetCursorPos()
	ww, wh := e.window.GetSize()
	fw, fh := e.window.GetFramebufferSize()
	sx, sy := float32(1), float32(1)
	if ww > 0 && wh > 0 {
		sx = float32(fw) / float32(ww)
		sy = float32(fh) / float32(wh)
	}
	return float32(cx) * sx, float32(cy) * sy
}

func (e *Editor) framebuffer() (float32, float32) {
	fw, fh := e.window.GetFramebufferSize()
	return float32(fw), float32(fh)
}

// Run owns the render loop until the window closes.
func (e *Editor) Run() {
	for !e.window.ShouldClose() {
		glfw.PollEvents()

		fw, fh := e.framebuffer()
		if fw > 0 && fh > 0 {
			e.v.Frame(e.ren, fw, fh)
			e.ren.Flush()
		}

		e.window.SwapBuffers()
	}
}

func (e *Editor) Destroy() {
	e.window.Destroy()
	glfw.Terminate()
}
