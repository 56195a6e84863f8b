package png

// Filter types, as defined by the PNG spec. Every scanline starts with one
// of these, naming the prediction its bytes were encoded against.
const (
	filterNone    = 0
	filterSub     = 1
	filterUp      = 2
	filterAverage = 3
	filterPaeth   = 4
)

// reconstructByte undoes one byte of filtering. a, b and c are the already
// reconstructed neighbors: left, above, and above-left, with zero standing
// in past the edges of the image. All arithmetic wraps modulo 256, which
// the byte type gives us for free.
func reconstructByte(filterType byte, x, a, b, c byte) byte {
	switch filterType {
	case filterNone:
		return x
	case filterSub:
		return x + a
	case filterUp:
		return x + b
	case filterAverage:
		return x + byte((int(a)+int(b))/2)
	case filterPaeth:
		return x + paeth(a, b, c)
	}
	return 0 // unreachable, rows are validated before we get here
}

// paeth picks whichever neighbor is closest to the linear prediction
// a + b - c, breaking ties in the order a, b, c. The intermediate math must
// not wrap, hence the excursion through int.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
