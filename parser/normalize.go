package parser

import "strings"

var escapes = map[byte]byte{
	'a': '\a',
	'b': '\b',
	't': '\t',
	'n': '\n',
	'v': '\v',
	'f': '\f',
	'r': '\r',
}

// Normalize expands backslash escapes in a raw literal body. An unknown
// escape yields the escaped byte itself, so `\"` becomes `"` and `\\` a
// single backslash. A trailing lone backslash is kept.
func Normalize(raw string) string {
	if strings.IndexByte(raw, '\\') < 0 {
		return raw
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			sb.WriteByte(c)
			continue
		}
		i++
		if esc, ok := escapes[raw[i]]; ok {
			sb.WriteByte(esc)
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
