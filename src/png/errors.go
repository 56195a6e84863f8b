package png

import "errors"

// Decoding is all-or-nothing: the first malformed byte kills the whole
// decode, there is no partial image to hand back. Every failure wraps one
// of these sentinels so callers can match on errors.Is without parsing
// message strings.
var (
	ErrMalformedSignature   = errors.New("malformed png signature")
	ErrTruncatedChunk       = errors.New("truncated chunk")
	ErrInvalidHeader        = errors.New("invalid image header")
	ErrInvalidText          = errors.New("invalid textual data")
	ErrInvalidTimestamp     = errors.New("invalid timestamp")
	ErrDecompressionFailed  = errors.New("decompression failed")
	ErrInvalidFilterType    = errors.New("invalid filter type")
	ErrUnsupportedColorType = errors.New("unsupported color type")
)
