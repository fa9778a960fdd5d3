package dataset

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidateEncodings is the ordered list tried when decoding an export.
// The exports come from different tooling generations; UTF-8 first, then
// the Turkish single-byte encodings older batches were written in.
var candidateEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"utf-8", nil},
	{"windows-1254", charmap.Windows1254},
	{"iso-8859-9", charmap.ISO8859_9},
}

// decodeTable decodes raw table bytes under the first candidate encoding
// that decodes without error and returns the text plus the encoding name.
// All candidates failing fails the whole table.
func decodeTable(raw []byte) (string, string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	for _, candidate := range candidateEncodings {
		if candidate.enc == nil {
			if utf8.Valid(raw) {
				return string(raw), candidate.name, nil
			}
			continue
		}
		decoded, err := candidate.enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		return string(decoded), candidate.name, nil
	}

	return "", "", fmt.Errorf("table not decodable under any candidate encoding")
}
