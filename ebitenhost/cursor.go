package ebitenhost

import "github.com/hajimehoshi/ebiten/v2"

// cursorShape maps a CSS cursor name to an Ebitengine cursor shape. The
// boolean is false for "none", which hides the cursor.
func cursorShape(name string) (ebiten.CursorShapeType, bool) {
	switch name {
	case "none":
		return ebiten.CursorShapeDefault, false
	case "pointer":
		return ebiten.CursorShapePointer, true
	case "text":
		return ebiten.CursorShapeText, true
	case "crosshair":
		return ebiten.CursorShapeCrosshair, true
	case "move", "grab", "grabbing":
		return ebiten.CursorShapeMove, true
	case "ew-resize", "col-resize":
		return ebiten.CursorShapeEWResize, true
	case "ns-resize", "row-resize":
		return ebiten.CursorShapeNSResize, true
	case "nesw-resize":
		return ebiten.CursorShapeNESWResize, true
	case "nwse-resize":
		return ebiten.CursorShapeNWSEResize, true
	case "not-allowed":
		return ebiten.CursorShapeNotAllowed, true
	}
	return ebiten.CursorShapeDefault, true
}

func applyCursor(name string) {
	shape, visible := cursorShape(name)
	if !visible {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
	ebiten.SetCursorShape(shape)
}
