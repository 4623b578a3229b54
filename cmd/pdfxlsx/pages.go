package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePages parses a page list such as "1,3-5" into page numbers. An empty
// list means all pages and returns nil.
func parsePages(list string) ([]int, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, nil
	}

	var pages []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("invalid page list %q: empty entry", list)
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := parsePage(lo)
		if err != nil {
			return nil, err
		}
		end := start
		if isRange {
			if end, err = parsePage(hi); err != nil {
				return nil, err
			}
			if end < start {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid page number %q", s)
	}
	return n, nil
}
