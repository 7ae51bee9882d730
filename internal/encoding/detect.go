package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// sniffLen is how much of the input is inspected before picking a decoder.
const sniffLen = 4096

// charsets maps chardet results to decoders. Spreadsheet tools on Korean
// Windows save CSV as EUC-KR (CP949), so it is tried alongside Latin ones.
var charsets = map[string]xenc.Encoding{
	"EUC-KR":       korean.EUCKR,
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
}

// NewUTF8Reader detects the encoding of an uploaded table and returns a
// reader producing UTF-8.
//
// Detection order:
//  1. BOM: UTF-8 BOM is stripped; UTF-16 LE/BE is decoded
//  2. Valid UTF-8 is returned as-is
//  3. Input that decodes cleanly as EUC-KR is treated as such
//  4. chardet heuristics (Windows-1252, ISO-8859-9)
//  5. EUC-KR fallback
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	if validUTF8Prefix(buf) {
		return br, nil
	}

	if looksEUCKR(buf) {
		return decode(br, korean.EUCKR), nil
	}

	result, detectErr := chardet.NewTextDetector().DetectBest(buf)
	if detectErr == nil {
		if result.Charset == "UTF-8" {
			return br, nil
		}

		if e, ok := charsets[result.Charset]; ok {
			return decode(br, e), nil
		}
	}

	return decode(br, korean.EUCKR), nil
}

func decode(r io.Reader, e xenc.Encoding) io.Reader {
	return transform.NewReader(r, e.NewDecoder())
}

// validUTF8Prefix is utf8.Valid that tolerates a multi-byte rune cut off by
// the sniff window.
func validUTF8Prefix(buf []byte) bool {
	if utf8.Valid(buf) {
		return true
	}

	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		tail := buf[len(buf)-i:]
		if utf8.RuneStart(tail[0]) && !utf8.FullRune(tail) {
			return utf8.Valid(buf[:len(buf)-i])
		}
	}

	return false
}

// looksEUCKR reports whether buf decodes as EUC-KR without replacement
// characters. A pair cut off by the sniff window is not counted.
func looksEUCKR(buf []byte) bool {
	dst := make([]byte, 2*len(buf))

	n, _, err := korean.EUCKR.NewDecoder().Transform(dst, buf, false)
	if err != nil && err != transform.ErrShortSrc {
		return false
	}

	return !bytes.ContainsRune(dst[:n], utf8.RuneError)
}

// NewBOMWriter writes the UTF-8 BOM to w and returns it, so exported CSV
// files open with the right encoding in spreadsheet tools.
func NewBOMWriter(w io.Writer) (io.Writer, error) {
	if _, err := w.Write(bomUTF8); err != nil {
		return nil, fmt.Errorf("write bom: %w", err)
	}

	return w, nil
}
