package convert

import (
	"strconv"
	"strings"
)

// decodeContentStream pulls the human-readable text out of a raw PDF content
// stream. Only literal strings fed to the text show operators (Tj, TJ, ', ")
// are considered; positioning and drawing operators are dropped.
func decodeContentStream(content string) string {
	var texts []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isTextShowOp(line) {
			continue
		}
		for _, s := range literalStrings(line) {
			s = decodeEscapes(s)
			s = stripBinary(s)
			if strings.TrimSpace(s) != "" {
				texts = append(texts, s)
			}
		}
	}
	return normalizeSpacing(strings.Join(texts, " "))
}

func isTextShowOp(line string) bool {
	return strings.HasSuffix(line, " Tj") || strings.HasSuffix(line, " TJ") ||
		strings.HasSuffix(line, "'") || strings.HasSuffix(line, "\"") ||
		strings.Contains(line, " Tj ") || strings.Contains(line, " TJ ")
}

// literalStrings returns every (...) literal in a content line, honoring
// backslash escapes on the delimiters.
func literalStrings(line string) []string {
	var out []string
	depth := 0
	start := -1
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch == '\\' {
			i++
			continue
		}
		switch ch {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 && start <= i {
					out = append(out, line[start:i])
					start = -1
				}
			}
		}
	}
	return out
}

// decodeEscapes resolves PDF string escapes including three-digit octal
// codes, mapping the common PDFDocEncoding punctuation to Unicode.
func decodeEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			break
		}
		i++
		switch c := s[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '(', ')', '\\':
			b.WriteByte(c)
		default:
			if c >= '0' && c <= '7' && i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i:i+3], 8, 16); err == nil {
					b.WriteString(octalRune(uint8(v)))
					i += 2
					continue
				}
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

func octalRune(v uint8) string {
	switch v {
	case 0o260:
		return "°"
	case 0o251:
		return "©"
	case 0o256:
		return "®"
	case 0o221, 0o231:
		return "'"
	case 0o223, 0o224:
		return "\""
	case 0o226:
		return "-"
	case 0o240:
		return " "
	case 0o012:
		return "\n"
	case 0o015, 0o037:
		return ""
	case 0o011:
		return "\t"
	}
	if v >= 32 && v < 127 {
		return string(rune(v))
	}
	return ""
}

// stripBinary drops control characters that survive octal decoding.
func stripBinary(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 32:
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeSpacing(s string) string {
	s = strings.TrimSpace(s)
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	for _, p := range []string{".", ",", "!", "?", ":", ";"} {
		s = strings.ReplaceAll(s, " "+p, p)
	}
	return s
}
