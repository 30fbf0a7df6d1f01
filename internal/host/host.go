// Package host defines what the shot manager needs from the application that
// owns the scene: a frame cursor, a camera registry and the shot play mode
// flag. Memory is an in-process scene used by the service and by tests.
package host

import (
	"sync"

	"github.com/heimdex/shotmanager/internal/frames"
)

// Host is the scene the navigation controller drives. Implementations are
// written to only through the navigation controller and the importer.
type Host interface {
	CurrentFrame() int
	SetCurrentFrame(frame int)
	FrameRate() float64

	PreviewRange() (frames.Range, bool)
	SetPreviewRange(r frames.Range)

	// HasCamera reports whether the named camera exists in the scene.
	HasCamera(name string) bool
	// EnsureCamera creates the named camera when it does not exist yet.
	EnsureCamera(name string)
	ActiveCamera() string
	SetActiveCamera(name string)
	// SetViewToCamera switches the viewport to look through the active camera.
	SetViewToCamera()

	// ShotPlayMode reports whether frame stepping is bounded by shots.
	ShotPlayMode() bool
}

// Memory is a Host kept entirely in memory. It is safe for concurrent use.
type Memory struct {
	mu sync.Mutex

	frame        int
	frameRate    float64
	preview      frames.Range
	hasPreview   bool
	cameras      map[string]struct{}
	activeCamera string
	cameraView   bool
	shotPlayMode bool
}

func NewMemory(frameRate float64) *Memory {
	if frameRate <= 0 {
		frameRate = 25
	}
	return &Memory{
		frameRate: frameRate,
		cameras:   make(map[string]struct{}),
	}
}

func (m *Memory) CurrentFrame() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frame
}

func (m *Memory) SetCurrentFrame(frame int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame = frame
}

func (m *Memory) FrameRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frameRate
}

func (m *Memory) PreviewRange() (frames.Range, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.preview, m.hasPreview
}

func (m *Memory) SetPreviewRange(r frames.Range) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preview = r
	m.hasPreview = true
}

func (m *Memory) HasCamera(name string) bool {
	if name == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.cameras[name]
	return ok
}

func (m *Memory) EnsureCamera(name string) {
	if name == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cameras[name] = struct{}{}
}

// RemoveCamera deletes a camera, leaving any shot that references it with a
// dangling camera ref.
func (m *Memory) RemoveCamera(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cameras, name)
	if m.activeCamera == name {
		m.activeCamera = ""
		m.cameraView = false
	}
}

func (m *Memory) Cameras() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.cameras))
	for name := range m.cameras {
		out = append(out, name)
	}
	return out
}

func (m *Memory) ActiveCamera() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeCamera
}

func (m *Memory) SetActiveCamera(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeCamera = name
}

func (m *Memory) SetViewToCamera() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cameraView = m.activeCamera != ""
}

// CameraView reports whether the viewport looks through the active camera.
func (m *Memory) CameraView() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cameraView
}

func (m *Memory) ShotPlayMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shotPlayMode
}

func (m *Memory) SetShotPlayMode(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shotPlayMode = on
}
