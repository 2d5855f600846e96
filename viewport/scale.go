// Package viewport computes how a device's logical screen fits inside
// the window space that is available for the frame.
package viewport

// Result is the output of a scale calculation. It is derived data and
// is never persisted.
type Result struct {
	Scale         float64
	ScaledWidth   float64
	ScaledHeight  float64
	FitsContainer bool
}

// Calculate returns the largest uniform scale, capped at 1, that fits a
// device of the given logical size inside the container after removing
// padding on all sides. Callers must apply any orientation swap to the
// device dimensions before calling.
//
// Degenerate inputs (any non-positive dimension once padding is
// removed) return scale 1 at the device's natural size so an
// unmeasured container never produces a zero-size or divided-by-zero
// frame.
func Calculate(containerWidth, containerHeight, deviceWidth, deviceHeight, padding float64) Result {
	availableWidth := containerWidth - 2*padding
	availableHeight := containerHeight - 2*padding
	if availableWidth < 0 {
		availableWidth = 0
	}
	if availableHeight < 0 {
		availableHeight = 0
	}

	if deviceWidth <= 0 || deviceHeight <= 0 || availableWidth <= 0 || availableHeight <= 0 {
		return Result{
			Scale:         1,
			ScaledWidth:   deviceWidth,
			ScaledHeight:  deviceHeight,
			FitsContainer: false,
		}
	}

	scaleX := availableWidth / deviceWidth
	scaleY := availableHeight / deviceHeight

	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale > 1 {
		scale = 1
	}

	return Result{
		Scale:         scale,
		ScaledWidth:   deviceWidth * scale,
		ScaledHeight:  deviceHeight * scale,
		FitsContainer: scaleX >= 1 && scaleY >= 1,
	}
}
