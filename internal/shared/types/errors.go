package types

import (
	"errors"
	"fmt"
)

var (
	ErrNoDataSource      = errors.New("no dataset specified. Use --data or set data_file in the config file")
	ErrUnsupportedFormat = errors.New("unsupported file format")

	ErrInsufficientData  = errors.New("insufficient data")
	ErrDivisionUndefined = errors.New("division undefined: previous period value is zero")
	ErrImageRender       = errors.New("chart image rendering failed")
	ErrLayoutOverflow    = errors.New("block does not fit on a single page")
	ErrDocumentClosed    = errors.New("document already finalized")
	ErrInvalidGrid       = errors.New("invalid data grid")
)

// LayoutOverflowError identifies the block whose height exceeds a full page.
type LayoutOverflowError struct {
	Index     int
	Kind      string
	Height    float64
	Available float64
}

func (e *LayoutOverflowError) Error() string {
	return fmt.Sprintf("layout overflow: block #%d (%s) needs %.2f but a page offers %.2f",
		e.Index, e.Kind, e.Height, e.Available)
}

// Is makes errors.Is(err, ErrLayoutOverflow) match.
func (e *LayoutOverflowError) Is(target error) bool {
	return target == ErrLayoutOverflow
}
