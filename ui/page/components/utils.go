package components

const ellipsis = "…"

// ellipsizeMiddle shortens s to max runes by replacing its middle with an
// ellipsis.
func ellipsizeMiddle(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max == 1 {
		return ellipsis
	}
	keep := max - 1
	head := (keep + 1) / 2
	tail := keep - head
	return string(runes[:head]) + ellipsis + string(runes[len(runes)-tail:])
}
