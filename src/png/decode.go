package png

import (
	"fmt"

	"git.handmade.network/hmn/pngview/src/perf"
	"github.com/rs/zerolog"
)

type decoder struct {
	log  zerolog.Logger
	perf *perf.DecodePerf

	header  *ImageHeader
	idat    []byte
	texts   []TextData
	modTime *Timestamp

	// Inspect wants the raw chunk list; Decode has no reason to hold
	// every ancillary payload alive.
	keepChunks bool
	chunks     []Chunk
}

// run walks the chunk stream from the signature to the end of the input,
// dispatching every chunk to its handler. Order mostly does not matter:
// the only rule is that image data cannot precede the header it is sized
// by.
func (d *decoder) run(data []byte) error {
	p, err := newChunkParser(data)
	if err != nil {
		return err
	}
	for p.more() {
		c, err := p.next()
		if err != nil {
			return err
		}
		d.log.Debug().
			Str("type", c.Type).
			Int("length", len(c.Data)).
			Str("data", c.PreviewHex()).
			Msg("chunk")
		if d.keepChunks {
			d.chunks = append(d.chunks, c)
		}
		if err := d.dispatch(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) dispatch(c Chunk) error {
	switch c.Type {
	case "IHDR":
		if d.header != nil {
			return fmt.Errorf("%w: second IHDR chunk", ErrInvalidHeader)
		}
		hdr, err := parseHeader(c.Data)
		if err != nil {
			return err
		}
		d.header = &hdr
		d.log.Debug().
			Uint32("width", hdr.Width).
			Uint32("height", hdr.Height).
			Uint8("bitDepth", hdr.BitDepth).
			Stringer("colorType", hdr.ColorType).
			Uint8("interlace", hdr.InterlaceMethod).
			Msg("image header")
	case "IDAT":
		if d.header == nil {
			return fmt.Errorf("%w: image data before IHDR", ErrInvalidHeader)
		}
		d.idat = append(d.idat, c.Data...)
	case "tEXt":
		text, err := parseText(c.Data)
		if err != nil {
			return err
		}
		d.texts = append(d.texts, text)
		d.log.Debug().
			Str("keyword", text.Keyword).
			Str("text", text.Text).
			Msg("textual data")
	case "tIME":
		ts, err := parseTimestamp(c.Data)
		if err != nil {
			return err
		}
		d.modTime = &ts
		d.log.Debug().Stringer("modified", ts).Msg("last modification time")
	default:
		// Chunk types we do not handle (IEND, pHYs, gAMA, sRGB, ...) are
		// skipped. Their declared length already moved the cursor past
		// their payload.
	}
	return nil
}

func (d *decoder) startBlock(category, description string) {
	if d.perf != nil {
		d.perf.StartBlock(category, description)
	}
}

func (d *decoder) endBlock() {
	if d.perf != nil {
		d.perf.EndBlock()
	}
}
