package linediff

import "strings"

// SplitLines splits text on "\n" and "\r\n".
//
// The result always has at least one element: SplitLines("") is [""], and a
// text ending with a line terminator yields a trailing empty line. A lone
// "\r" that is not followed by "\n" is kept as content.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	// Every segment but the last was followed by "\n".
	for i := 0; i < len(lines)-1; i++ {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}
