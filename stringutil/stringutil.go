package stringutil

import "fmt"

const ShortenLogLength = 16

// ShortenLog keeps the head and tail of a long identifier (tx hash, base58 key)
func ShortenLog(id string) string {
	indexCut := ShortenLogLength / 2
	if len(id) <= ShortenLogLength {
		return id
	}
	return fmt.Sprintf("%s...%s", id[:indexCut], id[len(id)-indexCut:])
}

// Short is ShortenLog for values with a String form, such as account keys
func Short(v fmt.Stringer) string {
	return ShortenLog(v.String())
}
