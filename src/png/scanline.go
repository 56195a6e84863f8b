package png

import "fmt"

// reconstruct undoes the per-scanline filtering, turning the decompressed
// IDAT stream into a flat buffer of raw channel bytes, row-major, with the
// filter type bytes stripped out.
//
// Each row is one filter type byte followed by width*channels data bytes.
// The neighbors a (left), b (above) and c (above-left) for a byte are the
// corresponding bytes of the previous pixel, one channel distance back, in
// the already reconstructed output. Rows depend on each other only through
// the previous row, so a current/previous pair of views into the output
// buffer is all the state we carry.
func reconstruct(data []byte, width, height, channels int) ([]byte, error) {
	// The rows-available form of this check cannot overflow, unlike
	// height*(rowBytes+1) with hostile dimensions.
	rowBytes := width * channels
	if len(data)/(rowBytes+1) < height {
		return nil, fmt.Errorf(
			"%w: %d bytes of scanline data, need %d rows of %d",
			ErrDecompressionFailed, len(data), height, rowBytes+1,
		)
	}

	raw := make([]byte, height*rowBytes)
	var prev []byte
	for y := 0; y < height; y++ {
		rowStart := y * (rowBytes + 1)
		filterType := data[rowStart]
		if filterType > filterPaeth {
			return nil, fmt.Errorf("%w: %d on row %d", ErrInvalidFilterType, filterType, y)
		}

		row := data[rowStart+1 : rowStart+1+rowBytes]
		cur := raw[y*rowBytes : (y+1)*rowBytes]
		for i, x := range row {
			var a, b, c byte
			if i >= channels {
				a = cur[i-channels]
			}
			if prev != nil {
				b = prev[i]
				if i >= channels {
					c = prev[i-channels]
				}
			}
			cur[i] = reconstructByte(filterType, x, a, b, c)
		}
		prev = cur
	}

	return raw, nil
}
