package config

import "github.com/rs/zerolog"

var Config = PngviewConfig{
	LogLevel: zerolog.InfoLevel,
	Color:    true,

	ChunkPreviewBytes: 30,
	PreviewWidth:      80,
}
