package ui

import "strings"

const ellipsis = "…"

// truncate cuts value to limit runes, ending in an ellipsis when anything
// was dropped. A limit of zero or less disables truncation.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit == 1 {
		return ellipsis
	}
	return strings.TrimRight(string(runes[:limit-1]), " ") + ellipsis
}

// shortenURL fits a link into limit runes for the detail view. The scheme
// goes first, then the middle of the path; the host start and the last path
// segment survive as long as they fit.
func shortenURL(link string, limit int) string {
	link = strings.TrimSpace(link)
	if limit <= 0 || len([]rune(link)) <= limit {
		return link
	}
	if i := strings.Index(link, "://"); i >= 0 {
		link = link[i+3:]
	}
	runes := []rune(link)
	if len(runes) <= limit {
		return link
	}

	var tail []rune
	if slash := strings.LastIndex(link, "/"); slash >= 0 {
		tail = []rune(link[slash:])
	}
	if head := limit - len(tail) - 1; head >= 1 && len(tail) > 0 {
		return string(runes[:head]) + ellipsis + string(tail)
	}

	// the last segment alone does not fit: keep both of its ends
	if len(tail) > 0 {
		runes = tail[1:]
	}
	if len(runes) <= limit {
		return string(runes)
	}
	head := (limit - 1) / 2
	return string(runes[:head]) + ellipsis + string(runes[len(runes)-(limit-1-head):])
}
