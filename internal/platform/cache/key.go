package cache

import "strings"

// keySeparator joins the tag and arguments of a cache key.
const keySeparator = ":"

// keyEscaper percent-encodes characters that would make keys ambiguous or awkward in Redis.
// "%" is escaped first so an escaped part can never be mistaken for a literal one.
var keyEscaper = strings.NewReplacer("%", "%25", ":", "%3A", " ", "%20")

// BuildKey builds a cache key from a tag and its arguments, e.g. BuildKey("price", "7203") = "price:7203".
// Distinct (tag, args) tuples always produce distinct keys.
func BuildKey(tag string, args ...string) string {
	var b strings.Builder
	b.WriteString(safe(tag))
	for _, a := range args {
		b.WriteString(keySeparator)
		b.WriteString(safe(a))
	}
	return b.String()
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	return keyEscaper.Replace(s)
}
