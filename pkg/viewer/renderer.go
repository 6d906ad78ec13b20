package viewer

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/scene"
)

// SceneView is a fyne widget showing a scene through an orbit camera.
// Dragging rotates, scrolling zooms and tapping reports the picked ray.
type SceneView struct {
	widget.BaseWidget

	mu     sync.Mutex
	scene  *scene.Scene
	camera *Camera
	raster *canvas.Raster

	dragStart  *fyne.Position
	isDragging bool
	onTap      func(ray geometry.Ray)
	onMove     func(cam *Camera)
	size       fyne.Size
}

// NewSceneView creates a view of s through cam
func NewSceneView(s *scene.Scene, cam *Camera) *SceneView {
	v := &SceneView{scene: s, camera: cam}
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

// Camera returns the view camera
func (v *SceneView) Camera() *Camera {
	return v.camera
}

// SetScene replaces the scene, for example after a reload
func (v *SceneView) SetScene(s *scene.Scene) {
	v.mu.Lock()
	v.scene = s
	v.mu.Unlock()
	v.Refresh()
}

// Update runs fn while no frame is being drawn, then redraws
func (v *SceneView) Update(fn func()) {
	v.mu.Lock()
	fn()
	v.mu.Unlock()
	v.Refresh()
}

// SetOnTap sets the callback for taps. It receives the ray under the pointer.
func (v *SceneView) SetOnTap(callback func(ray geometry.Ray)) {
	v.onTap = callback
}

// SetOnCameraMove sets the callback for camera rotation and zoom
func (v *SceneView) SetOnCameraMove(callback func(cam *Camera)) {
	v.onMove = callback
}

func (v *SceneView) draw(width, height int) image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scene == nil {
		return NewFrame(width, height, Background).Image
	}
	return Render(v.scene, v.camera, width, height).Image
}

// CreateRenderer creates the renderer for the widget
func (v *SceneView) CreateRenderer() fyne.WidgetRenderer {
	return &sceneWidgetRenderer{view: v}
}

// Dragged handles mouse drag events for rotation
func (v *SceneView) Dragged(event *fyne.DragEvent) {
	if v.dragStart != nil {
		deltaX := event.Position.X - v.dragStart.X
		deltaY := event.Position.Y - v.dragStart.Y

		v.camera.Rotate(float64(-deltaY)*0.01, float64(deltaX)*0.01)
		v.cameraMoved()
	}
	pos := event.Position
	v.dragStart = &pos
	v.isDragging = true
}

// DragEnd handles the end of a drag event
func (v *SceneView) DragEnd() {
	v.dragStart = nil
	v.isDragging = false
}

// Tapped reports the ray under the pointer
func (v *SceneView) Tapped(event *fyne.PointEvent) {
	if v.isDragging || v.onTap == nil || v.size.Width == 0 || v.size.Height == 0 {
		return
	}
	ray := v.camera.Unproject(float64(event.Position.X), float64(event.Position.Y),
		float64(v.size.Width), float64(v.size.Height))
	v.onTap(ray)
}

// Scrolled handles scroll events for zooming
func (v *SceneView) Scrolled(event *fyne.ScrollEvent) {
	v.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	v.cameraMoved()
}

func (v *SceneView) cameraMoved() {
	if v.onMove != nil {
		v.onMove(v.camera)
	}
	v.Refresh()
}

// sceneWidgetRenderer implements fyne.WidgetRenderer
type sceneWidgetRenderer struct {
	view *SceneView
}

func (r *sceneWidgetRenderer) Layout(size fyne.Size) {
	r.view.size = size
	r.view.raster.Resize(size)
}

func (r *sceneWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *sceneWidgetRenderer) Refresh() {
	canvas.Refresh(r.view.raster)
}

func (r *sceneWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.raster}
}

func (r *sceneWidgetRenderer) Destroy() {}
