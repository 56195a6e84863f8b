package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// TextData is one tEXt entry: a short keyword like "Comment" or "Author",
// and the text that goes with it.
type TextData struct {
	Keyword string
	Text    string
}

func parseText(data []byte) (TextData, error) {
	sep := bytes.IndexByte(data, 0)
	if sep < 0 {
		return TextData{}, fmt.Errorf("%w: no separator between keyword and text", ErrInvalidText)
	}
	keyword, text := data[:sep], data[sep+1:]
	if !utf8.Valid(keyword) || !utf8.Valid(text) {
		return TextData{}, fmt.Errorf("%w: keyword or text is not valid UTF-8", ErrInvalidText)
	}
	return TextData{Keyword: string(keyword), Text: string(text)}, nil
}

// Timestamp is the image's last modification time as recorded in a tIME
// chunk. Fields are copied straight off the wire, so nothing stops a file
// from claiming month 13; we report, we don't judge.
type Timestamp struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

const timestampLength = 7

func parseTimestamp(data []byte) (Timestamp, error) {
	if len(data) < timestampLength {
		return Timestamp{}, fmt.Errorf("%w: tIME needs %d bytes, got %d", ErrInvalidTimestamp, timestampLength, len(data))
	}
	return Timestamp{
		Year:   binary.BigEndian.Uint16(data[0:2]),
		Month:  data[2],
		Day:    data[3],
		Hour:   data[4],
		Minute: data[5],
		Second: data[6],
	}, nil
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%d/%d/%d %02d:%02d:%02d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}
