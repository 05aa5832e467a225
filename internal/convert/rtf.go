package convert

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// textToRTF wraps plain text in a minimal RTF document. Backslashes and
// braces are escaped so the round trip through rtfToText is lossless for
// plain ASCII content.
func textToRTF(data []byte) ([]byte, *Error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	var b strings.Builder
	b.WriteString(`{\rtf1\ansi\deff0 `)
	for _, r := range text {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '{':
			b.WriteString(`\{`)
		case '}':
			b.WriteString(`\}`)
		case '\n':
			b.WriteString(`\par `)
		case '\t':
			b.WriteString(`\tab `)
		default:
			switch {
			case r > 0xFFFF:
				// \uN takes a signed 16-bit value, so astral code points
				// go out as a UTF-16 surrogate pair.
				hi, lo := utf16.EncodeRune(r)
				writeUnicodeEscape(&b, hi)
				writeUnicodeEscape(&b, lo)
			case r > 127:
				writeUnicodeEscape(&b, r)
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteString("}")
	return []byte(b.String()), nil
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	b.WriteString(strconv.Itoa(int(int16(r))))
	b.WriteString(`?`)
}

// rtfToText strips RTF markup: control words are consumed (with \par, \line
// and \tab mapped to whitespace), group braces are dropped, and escaped
// characters are restored. Runs of spaces are collapsed since RTF treats
// whitespace after control words as insignificant.
func rtfToText(data []byte) ([]byte, *Error) {
	src := string(data)
	var b strings.Builder
	var pendingHigh rune
	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '{':
			if skip := destinationGroupEnd(src, i); skip > i {
				i = skip
				continue
			}
			i++
		case '}':
			i++
		case '\r', '\n':
			// Raw newlines in RTF source are not document content.
			i++
		case '\\':
			i++
			if i >= len(src) {
				break
			}
			next := src[i]
			if !isAlpha(next) {
				// Escaped literal (\\, \{, \}) or symbol control.
				switch next {
				case '\\', '{', '}':
					b.WriteByte(next)
				case '\'':
					// \'hh hex escape
					if i+2 < len(src) {
						if v, err := strconv.ParseUint(src[i+1:i+3], 16, 8); err == nil {
							b.WriteByte(byte(v))
							i += 2
						}
					}
				}
				i++
				continue
			}
			// Control word: letters, optional signed number, optional
			// single trailing space that belongs to the control word.
			start := i
			for i < len(src) && isAlpha(src[i]) {
				i++
			}
			word := src[start:i]
			numStart := i
			if i < len(src) && (src[i] == '-' || isDigit(src[i])) {
				i++
				for i < len(src) && isDigit(src[i]) {
					i++
				}
			}
			num := src[numStart:i]
			if i < len(src) && src[i] == ' ' {
				i++
			}
			switch word {
			case "par", "line":
				b.WriteByte('\n')
			case "tab":
				b.WriteByte('\t')
			case "u":
				// Unicode escape: emit the code point, skip the
				// replacement character that follows. Surrogate halves
				// are held until their pair arrives.
				if v, err := strconv.Atoi(num); err == nil {
					if v < 0 {
						v += 65536
					}
					u := rune(v)
					if utf16.IsSurrogate(u) {
						if pendingHigh != 0 {
							b.WriteRune(utf16.DecodeRune(pendingHigh, u))
							pendingHigh = 0
						} else {
							pendingHigh = u
						}
					} else {
						b.WriteRune(u)
					}
					if i < len(src) && src[i] == '?' {
						i++
					}
				}
			}
		default:
			b.WriteByte(c)
			i++
		}
	}

	return []byte(normalizeSpaces(b.String())), nil
}

// destinationGroups are RTF groups whose content is metadata, not document
// text. Their entire group is dropped.
var destinationGroups = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"header":     true,
	"footer":     true,
}

// destinationGroupEnd returns the index just past the balanced group
// starting at the '{' at position i when that group is a destination
// (metadata) group, or i when the group holds document text.
func destinationGroupEnd(src string, i int) int {
	j := i + 1
	if j >= len(src) || src[j] != '\\' {
		return i
	}
	j++
	// \* marks an optional destination; always skippable.
	isDestination := j < len(src) && src[j] == '*'
	if !isDestination {
		start := j
		for j < len(src) && isAlpha(src[j]) {
			j++
		}
		isDestination = destinationGroups[src[start:j]]
	}
	if !isDestination {
		return i
	}

	depth := 0
	for k := i; k < len(src); k++ {
		switch src[k] {
		case '\\':
			k++ // skip escaped character
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return k + 1
			}
		}
	}
	return len(src)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// normalizeSpaces collapses runs of spaces and trims each line; newlines
// are preserved so paragraph structure survives.
func normalizeSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
