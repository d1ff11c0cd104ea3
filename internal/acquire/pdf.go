package acquire

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

var pdfMagic = []byte("%PDF-")

// IsPDF sniffs a response: content type, URL suffix or magic bytes
func IsPDF(contentType, rawURL string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "application/pdf") {
		return true
	}
	lower := strings.ToLower(rawURL)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	if strings.HasSuffix(lower, ".pdf") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimLeft(body, " \t\r\n"), pdfMagic)
}

// PDFText extracts the text streams of every page
func PDFText(body []byte) (string, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(body), conf)
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}

	var all strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		text := pageText(ctx, pageNr)
		if text == "" {
			continue
		}
		if all.Len() > 0 {
			all.WriteByte(' ')
		}
		all.WriteString(text)
	}

	if all.Len() == 0 {
		return "", fmt.Errorf("no text content found in PDF")
	}
	return all.String(), nil
}

func pageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromStream(data)
}

// pdfOperandRe matches a literal string "(text)" or a hex string "<0041>"
var pdfOperandRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)|<([0-9A-Fa-f\s]*)>`)

// textFromStream collects the operands of the text showing operators
// Tj, TJ and ' from a page content stream.
func textFromStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			sb.WriteString(operandText(line))
		case bytes.HasSuffix(line, []byte("'")):
			if text := operandText(line); text != "" {
				sb.WriteByte(' ')
				sb.WriteString(text)
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")), bytes.Equal(line, []byte("T*")):
			sb.WriteByte(' ')
		}
	}

	return cleanPDFText(sb.String())
}

func operandText(line []byte) string {
	var sb strings.Builder
	for _, m := range pdfOperandRe.FindAllSubmatchIndex(line, -1) {
		if m[2] >= 0 {
			sb.WriteString(pdfBytesText(unescapePDFString(line[m[2]:m[3]])))
		} else {
			sb.WriteString(pdfBytesText(decodePDFHex(line[m[4]:m[5]])))
		}
	}
	return sb.String()
}

// decodePDFHex decodes a hex string body; an odd final digit is padded
// with 0 and whitespace is ignored.
func decodePDFHex(raw []byte) []byte {
	digits := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, hex.DecodedLen(len(digits)))
	n, err := hex.Decode(out, digits)
	if err != nil {
		return nil
	}
	return out[:n]
}

// pdfBytesText converts string bytes to UTF-8: UTF-16BE when the string
// has a byte order mark or is two-byte with a zero high byte throughout,
// UTF-8 when valid, Latin-1 otherwise.
func pdfBytesText(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if bytes.HasPrefix(b, []byte{0xFE, 0xFF}) || zeroHighBytes(b) {
		dec := xunicode.UTF16(xunicode.BigEndian, xunicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(b); err == nil {
			return string(out)
		}
	}
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

func zeroHighBytes(b []byte) bool {
	if len(b) < 2 || len(b)%2 != 0 {
		return false
	}
	for i := 0; i < len(b); i += 2 {
		if b[i] != 0 {
			return false
		}
	}
	return true
}

// unescapePDFString handles the escape sequences of a literal string
func unescapePDFString(raw []byte) []byte {
	var sb bytes.Buffer
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] < '0' || raw[i] > '7' {
				sb.WriteByte(raw[i])
				continue
			}
			// Octal escape, up to three digits
			val := int(raw[i] - '0')
			for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.Bytes()
}

// cleanPDFText drops unprintable runes and collapses whitespace
func cleanPDFText(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || (unicode.IsPrint(r) && r != utf8.RuneError) {
			return r
		}
		return -1
	}, text)
	return strings.Join(strings.Fields(text), " ")
}
