package domain

import "errors"

// ErrConversionFailed is returned when an external conversion service fails.
// The target value is left untouched when this error is reported.
var ErrConversionFailed = errors.New("conversion failed")

// ErrUnparsable is returned when a textual value cannot be read as a number.
var ErrUnparsable = errors.New("value is not a number")

// ErrOutOfBounds is returned when a coordinate lies outside the bounding box of its reference system.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// ErrUnknownReferenceSystem is returned for reference system identifiers missing from the reference table.
var ErrUnknownReferenceSystem = errors.New("unknown reference system")

// ErrUnknownVerticalReference is returned for vertical references other than MD and MASL.
var ErrUnknownVerticalReference = errors.New("unknown vertical reference")

// ErrUnknownLayerKind is returned when a layer kind is not supported.
var ErrUnknownLayerKind = errors.New("unknown layer kind")

// ErrBoreholeNotFound is returned when a borehole cannot be found in the source.
var ErrBoreholeNotFound = errors.New("borehole not found")

// ErrCacheMiss is returned by depth caches when no value is stored for a key.
var ErrCacheMiss = errors.New("cache miss")

// ErrIncompleteCoverage is returned when a column does not tile its reference range.
var ErrIncompleteCoverage = errors.New("incomplete column coverage")
