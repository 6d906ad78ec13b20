package scene

import "github.com/philipparndt/goring/pkg/event"

// SelectEnterEvent is emitted when an interactor grabs an object
type SelectEnterEvent struct {
	Interactor string
	Target     *Object
}

// SelectExitEvent is emitted when an interactor releases an object
type SelectExitEvent struct {
	Interactor string
	Target     *Object
}

// GrabInteractable makes an object selectable by interactors
type GrabInteractable struct {
	owner      *Object
	interactor string
	selected   bool

	entered event.Signal[any]
	exited  event.Signal[any]
}

// NewGrabInteractable creates an interactable for owner and attaches it
func NewGrabInteractable(owner *Object) *GrabInteractable {
	g := &GrabInteractable{owner: owner}
	owner.Interactable = g
	return g
}

// SubscribeSelect registers select entered/exited listeners. The listeners
// receive a SelectEnterEvent or SelectExitEvent.
func (g *GrabInteractable) SubscribeSelect(entered, exited func(args any)) (unsubscribe func()) {
	unsubEntered := g.entered.Subscribe(entered)
	unsubExited := g.exited.Subscribe(exited)
	return func() {
		unsubEntered()
		unsubExited()
	}
}

// Listeners returns the number of registered entered and exited listeners
func (g *GrabInteractable) Listeners() (entered, exited int) {
	return g.entered.Len(), g.exited.Len()
}

// IsSelected reports whether an interactor currently holds the object
func (g *GrabInteractable) IsSelected() bool {
	return g.selected
}

// Interactor returns the current interactor, empty when not selected
func (g *GrabInteractable) Interactor() string {
	return g.interactor
}

// Select grabs the object. Selecting an already selected object is a no-op.
func (g *GrabInteractable) Select(interactor string) bool {
	if g.selected {
		return false
	}
	g.selected = true
	g.interactor = interactor
	g.entered.Emit(SelectEnterEvent{Interactor: interactor, Target: g.owner})
	return true
}

// Deselect releases the object. Releasing an object nobody holds is a no-op.
func (g *GrabInteractable) Deselect() bool {
	if !g.selected {
		return false
	}
	interactor := g.interactor
	g.selected = false
	g.interactor = ""
	g.exited.Emit(SelectExitEvent{Interactor: interactor, Target: g.owner})
	return true
}
