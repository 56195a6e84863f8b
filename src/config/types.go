package config

import "github.com/rs/zerolog"

type PngviewConfig struct {
	LogLevel zerolog.Level
	Color    bool // colored console output

	// ChunkPreviewBytes bounds the hex preview logged for each chunk
	// payload. Image data chunks run to megabytes; nobody wants all of
	// that in their terminal.
	ChunkPreviewBytes int

	// PreviewWidth is the default width, in terminal cells, of the
	// view command's output when --width is not given.
	PreviewWidth int
}
