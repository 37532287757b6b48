package gem

import "fmt"

// MalformedHeaderError is returned when the input is too short to hold the
// header and palette.
type MalformedHeaderError struct {
	Size int
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("gem: invalid GEM file: %d bytes, need at least %d", e.Size, pixelOffset)
}

// InsufficientPixelDataError is returned when fewer pixel bytes follow the
// palette than the header dimensions require.
type InsufficientPixelDataError struct {
	Actual   int
	Expected int
}

func (e *InsufficientPixelDataError) Error() string {
	return fmt.Sprintf("gem: unexpected pixel data size: %d vs %d", e.Actual, e.Expected)
}
