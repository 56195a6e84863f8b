/*
Package png decodes still PNG images into flat RGBA pixel grids.

The decoder takes the whole stream up front: it walks the chunk stream,
collects the header, metadata and compressed image data, inflates the data,
undoes the scanline filtering, and resolves every pixel to RGBA. There is
no incremental mode and no partial output; a malformed stream yields an
error and nothing else.

Supported images are 8-bit-per-channel, non-interlaced, in the grayscale,
truecolor, grayscale+alpha and truecolor+alpha color types. Indexed-color
images are recognized but rejected, since palette chunks are not handled
yet.
*/
package png

import (
	"fmt"
	"io"

	"git.handmade.network/hmn/pngview/src/oops"
	"git.handmade.network/hmn/pngview/src/perf"
	"git.handmade.network/hmn/pngview/src/utils"
	"github.com/rs/zerolog"
)

// Image is one fully decoded PNG.
type Image struct {
	Header ImageHeader
	Pixels PixelGrid

	// Texts holds the file's tEXt entries in stream order.
	Texts []TextData
	// ModTime is the file's claimed last modification time, or nil if the
	// stream has no tIME chunk.
	ModTime *Timestamp
}

type DecodeOptions struct {
	// Logger receives per-chunk and per-stage diagnostics at debug level.
	// Leave it nil to decode silently.
	Logger *zerolog.Logger
	// Perf, when non-nil, gets a timing block per decode stage.
	Perf *perf.DecodePerf
}

func (opts DecodeOptions) logger() zerolog.Logger {
	if opts.Logger == nil {
		return zerolog.Nop()
	}
	return *opts.Logger
}

// Decode decodes a PNG stream held in memory.
func Decode(data []byte) (*Image, error) {
	return DecodeWithOptions(data, DecodeOptions{})
}

// DecodeReader reads r to its end and decodes the result.
func DecodeReader(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, oops.New(err, "failed to read image stream")
	}
	return Decode(data)
}

func DecodeWithOptions(data []byte, opts DecodeOptions) (image *Image, err error) {
	defer utils.RecoverPanicAsError(&err)

	d := &decoder{log: opts.logger(), perf: opts.Perf}

	d.startBlock("CHUNKS", "Walk chunk stream")
	err = d.run(data)
	d.endBlock()
	if err != nil {
		return nil, err
	}

	if d.header == nil {
		return nil, fmt.Errorf("%w: no IHDR chunk in stream", ErrInvalidHeader)
	}
	hdr := *d.header
	if hdr.InterlaceMethod != 0 {
		return nil, fmt.Errorf("%w: interlaced images are not supported", ErrInvalidHeader)
	}
	resolve, err := hdr.ColorType.resolver()
	if err != nil {
		return nil, err
	}
	if len(d.idat) == 0 {
		return nil, fmt.Errorf("%w: no image data in stream", ErrDecompressionFailed)
	}

	d.startBlock("INFLATE", "Decompress image data")
	decompressed, err := inflate(d.idat)
	d.endBlock()
	if err != nil {
		return nil, err
	}

	width, height := int(hdr.Width), int(hdr.Height)
	channels := hdr.ColorType.Channels()

	d.startBlock("RECON", "Reconstruct scanlines")
	raw, err := reconstruct(decompressed, width, height, channels)
	d.endBlock()
	if err != nil {
		return nil, err
	}

	d.startBlock("RESOLVE", "Resolve pixels")
	grid := resolvePixels(raw, width, height, channels, resolve)
	d.endBlock()

	d.log.Debug().
		Int("width", width).
		Int("height", height).
		Msg("decoded image")

	return &Image{
		Header:  hdr,
		Pixels:  grid,
		Texts:   d.texts,
		ModTime: d.modTime,
	}, nil
}

// Summary is what Inspect can tell you about a stream without decoding any
// pixels.
type Summary struct {
	// Header is nil when the stream carries no IHDR chunk.
	Header  *ImageHeader
	Chunks  []Chunk
	Texts   []TextData
	ModTime *Timestamp

	// DataBytes is the total compressed payload across all IDAT chunks.
	DataBytes int
}

// Inspect walks the chunk stream and parses the header and metadata
// chunks, skipping decompression and pixel reconstruction entirely. Unlike
// Decode it tolerates a missing header, so it stays useful on images the
// decoder would reject.
func Inspect(data []byte) (summary *Summary, err error) {
	defer utils.RecoverPanicAsError(&err)

	d := &decoder{log: zerolog.Nop(), keepChunks: true}
	if err := d.run(data); err != nil {
		return nil, err
	}

	return &Summary{
		Header:    d.header,
		Chunks:    d.chunks,
		Texts:     d.texts,
		ModTime:   d.modTime,
		DataBytes: len(d.idat),
	}, nil
}
