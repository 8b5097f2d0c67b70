package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"
)

// FileName is the sidecar file written at the root of a per-file export.
const FileName = "metadata.json"

const indent = "    "

// Text renders the manifest as indented JSON with every opening brace that
// follows a key moved onto its own line. Existing exports were written this
// way, so the output must stay byte-for-byte stable: `&`, `<` and `>` are
// written literally and every non-ASCII rune becomes a \uXXXX escape.
func (m *Manifest) Text() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	text := strings.TrimSuffix(buf.String(), "\n")
	return []byte(ReflowBraces(EscapeNonASCII(text))), nil
}

// EscapeNonASCII replaces every rune above U+007F with its \uXXXX escape,
// using a surrogate pair outside the basic multilingual plane. Encoded JSON
// only carries such runes inside strings, so the result is still valid JSON.
func EscapeNonASCII(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
			continue
		}
		fmt.Fprintf(&b, `\u%04x`, r)
	}
	return b.String()
}

// marshalLiteral encodes v without HTML escaping.
func marshalLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ReflowBraces rewrites every line ending in `: {` as the key line followed
// by a `{` line at the key's indentation. The result ends with a newline.
func ReflowBraces(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+len(lines)/2)
	for _, line := range lines {
		stripped := strings.TrimRight(line, " \t\r")
		if !strings.HasSuffix(stripped, ": {") {
			out = append(out, line)
			continue
		}
		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		out = append(out, stripped[:len(stripped)-2], lead+"{")
	}
	return strings.Join(out, "\n") + "\n"
}
