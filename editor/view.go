package editor

import (
	"github.com/npillmayer/blobgen"
)

// View maps viewport coordinates to screen coordinates and back. Pointer
// positions arrive in screen space and are projected into the viewport
// before they reach the state machine.
type View struct {
	toScreen   blobgen.AT
	toViewport blobgen.AT
}

// IdentityView is a view where screen and viewport coincide.
func IdentityView() View {
	return View{toScreen: blobgen.Identity(), toViewport: blobgen.Identity()}
}

// NewView creates a view which scales the viewport uniformly by scale and
// then moves it by offset (screen units).
func NewView(scale float64, offset blobgen.Pair) (View, error) {
	m := blobgen.Scaling(scale, scale).Combine(blobgen.Translation(offset))
	return ViewFromTransform(m)
}

// NewRotatedView is like NewView for a canvas which additionally rotates the
// viewport counter-clockwise by theta (radians) around its origin, before
// moving it by offset.
func NewRotatedView(scale, theta float64, offset blobgen.Pair) (View, error) {
	m := blobgen.Scaling(scale, scale).
		Combine(blobgen.Rotation(theta)).
		Combine(blobgen.Translation(offset))
	return ViewFromTransform(m)
}

// ViewFromTransform creates a view from an arbitrary viewport-to-screen
// transform. The transform must be invertible.
func ViewFromTransform(m blobgen.AT) (View, error) {
	inv, err := m.Invert()
	if err != nil {
		return View{}, err
	}
	return View{toScreen: m, toViewport: inv}, nil
}

// Project maps a screen position into the viewport.
func (v View) Project(screen blobgen.Pair) blobgen.Pair {
	if v.toViewport == nil {
		return screen
	}
	return v.toViewport.Transform(screen)
}

// Screen maps a viewport position onto the screen.
func (v View) Screen(p blobgen.Pair) blobgen.Pair {
	if v.toScreen == nil {
		return p
	}
	return v.toScreen.Transform(p)
}
