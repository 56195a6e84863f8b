package png

import (
	"encoding/binary"
	"fmt"

	"git.handmade.network/hmn/pngview/src/config"
	"git.handmade.network/hmn/pngview/src/utils"
)

const signature = "\x89PNG\r\n\x1a\n"

// sizes of the fixed chunk pieces, in bytes
const (
	chunkLengthSize = 4
	chunkTypeSize   = 4
	chunkCRCSize    = 4
)

// A Chunk is one length-tagged record from a PNG stream. Data aliases the
// decoder's input buffer rather than copying it.
type Chunk struct {
	Type string
	Data []byte
}

// PreviewHex renders the front of the chunk's payload as hex for
// diagnostics, bounded so that a multi-megabyte IDAT doesn't hit the log.
func (c Chunk) PreviewHex() string {
	n := utils.IntMin(len(c.Data), config.Config.ChunkPreviewBytes)
	if n < len(c.Data) {
		return fmt.Sprintf("% x ...", c.Data[:n])
	}
	return fmt.Sprintf("% x", c.Data)
}

// chunkParser walks the chunk stream sequentially. It trusts each chunk's
// declared length for advancement, which is what keeps unknown chunk types
// skippable, and it does not verify CRCs: a decoder that throws the image
// away on a bad checksum helps nobody who is trying to look at it.
type chunkParser struct {
	data []byte
	off  int
}

func newChunkParser(data []byte) (*chunkParser, error) {
	if len(data) < len(signature) || string(data[:len(signature)]) != signature {
		return nil, fmt.Errorf("%w: got % x", ErrMalformedSignature, firstBytes(data, len(signature)))
	}
	return &chunkParser{data: data, off: len(signature)}, nil
}

func (p *chunkParser) more() bool {
	return p.off < len(p.data)
}

func (p *chunkParser) next() (Chunk, error) {
	rest := p.data[p.off:]
	if len(rest) < chunkLengthSize+chunkTypeSize {
		return Chunk{}, fmt.Errorf(
			"%w: %d trailing bytes at offset %d, not enough for a length and type",
			ErrTruncatedChunk, len(rest), p.off,
		)
	}

	length := binary.BigEndian.Uint32(rest[:chunkLengthSize])
	typ := string(rest[chunkLengthSize : chunkLengthSize+chunkTypeSize])
	total := int64(chunkLengthSize+chunkTypeSize+chunkCRCSize) + int64(length)
	if int64(len(rest)) < total {
		return Chunk{}, fmt.Errorf(
			"%w: %q at offset %d declares %d data bytes but only %d bytes remain",
			ErrTruncatedChunk, typ, p.off, length, len(rest),
		)
	}

	data := rest[chunkLengthSize+chunkTypeSize : chunkLengthSize+chunkTypeSize+int(length)]
	p.off += int(total) // the CRC rides along unexamined
	return Chunk{Type: typ, Data: data}, nil
}

func firstBytes(data []byte, n int) []byte {
	if len(data) < n {
		return data
	}
	return data[:n]
}
