package viewport

// Scaler caches the last inputs and result of Calculate so the UI can
// feed it container resizes and device/orientation changes and only
// relayout when the outcome actually moved.
type Scaler struct {
	containerWidth  float64
	containerHeight float64
	deviceWidth     float64
	deviceHeight    float64
	padding         float64
	result          Result
}

// NewScaler returns a scaler with the given frame padding. All sizes
// start at zero, so the first Result is the degenerate guard value
// until the container has been measured.
func NewScaler(padding float64) *Scaler {
	s := &Scaler{padding: padding}
	s.result = Calculate(0, 0, 0, 0, padding)
	return s
}

// SetContainer records a new container size and reports whether the
// scale result changed.
func (s *Scaler) SetContainer(width, height float64) bool {
	if width == s.containerWidth && height == s.containerHeight {
		return false
	}
	s.containerWidth = width
	s.containerHeight = height
	return s.recompute()
}

// SetDevice records a new effective device size (post orientation
// swap) and reports whether the scale result changed.
func (s *Scaler) SetDevice(width, height float64) bool {
	if width == s.deviceWidth && height == s.deviceHeight {
		return false
	}
	s.deviceWidth = width
	s.deviceHeight = height
	return s.recompute()
}

// Result returns the cached scale result.
func (s *Scaler) Result() Result {
	return s.result
}

func (s *Scaler) recompute() bool {
	next := Calculate(s.containerWidth, s.containerHeight, s.deviceWidth, s.deviceHeight, s.padding)
	if next == s.result {
		return false
	}
	s.result = next
	return true
}
