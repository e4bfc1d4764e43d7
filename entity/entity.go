// Package entity decodes and re-encodes the small set of character
// entities that show up in feed text. Feeds frequently deliver titles
// that are already escaped once; decoding everything before encoding
// for the target context keeps the output single-escaped no matter how
// the input arrived.
package entity

import "strings"

var decoder = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

var textEncoder = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEncoder = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// Decode reverses the known entity escapes. Repeated escapes are only
// unwrapped one level per call; callers that need a fully plain string
// should decode before every encode, which the encoders below do.
func Decode(s string) string {
	return decoder.Replace(s)
}

// EncodeText makes s safe to embed as element text.
func EncodeText(s string) string {
	return textEncoder.Replace(Decode(s))
}

// EncodeAttr makes s safe to embed inside a double-quoted attribute.
func EncodeAttr(s string) string {
	return attrEncoder.Replace(Decode(s))
}
