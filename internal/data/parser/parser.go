// Package parser extracts task execution events from the device's raw log
// stream. The firmware prefixes every task log line with the task name in
// square brackets ("[Sensor] reading ok"); anything else on the line is
// free text and ignored here.
package parser

import "strings"

// ExtractTask returns the task identifier from a log line, if present.
//
// A line carries an event iff its first character is '[' and a matching
// ']' occurs before any further '['. The identifier is the raw substring
// between the brackets, untrimmed and possibly empty. Malformed or
// unrelated lines simply report ok=false; they are never an error.
func ExtractTask(line string) (name string, ok bool) {
	if len(line) == 0 || line[0] != '[' {
		return "", false
	}

	rest := line[1:]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return "", false
	}
	if open := strings.IndexByte(rest, '['); open >= 0 && open < end {
		return "", false
	}

	return rest[:end], true
}
