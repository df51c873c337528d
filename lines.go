package formol

import "strings"

// removeTrailingEmptyLines returns lines without its trailing empty
// lines.
//
// lines must not be empty; calling this with an empty slice is a bug in
// the caller.
func removeTrailingEmptyLines(lines []string) []string {
	if len(lines) == 0 {
		panic("removeTrailingEmptyLines: empty line list")
	}

	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}

	return append([]string(nil), lines[:end]...)
}

// indentStr returns the indentation string for count spaces.
func indentStr(count int) string {
	return strings.Repeat(" ", count)
}

// sliceFrom returns line without its first count bytes, or an empty
// string when line is shorter than that.
//
// Callers only ever skip ASCII space prefixes, so byte indexing is
// safe.
func sliceFrom(line string, count int) string {
	if len(line) <= count {
		return ""
	}

	return line[count:]
}

// unindentLines unindents each line by count spaces when possible,
// keeping unindentable lines as is.
func unindentLines(lines []string, count int) []string {
	prefix := indentStr(count)
	newLines := make([]string, len(lines))

	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			newLines[i] = line[count:]
		} else {
			newLines[i] = line
		}
	}

	return newLines
}
