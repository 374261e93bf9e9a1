package command

import "strings"

// Input holds the parsed verb and argument from a text line. Arguments keep
// their internal spacing so multi-word IDs survive parsing.
type Input struct {
	// Verb is the first word of the input, lowercased.
	Verb string
	// Arg is the raw text after the verb, trimmed.
	Arg string
}

// Parse splits a text line into a verb and its argument.
//
// Postcondition: Returns an Input. If line is empty, Verb is empty.
func Parse(line string) Input {
	line = strings.TrimSpace(line)
	if line == "" {
		return Input{}
	}

	spaceIdx := strings.IndexByte(line, ' ')
	if spaceIdx < 0 {
		return Input{Verb: strings.ToLower(line)}
	}

	return Input{
		Verb: strings.ToLower(line[:spaceIdx]),
		Arg:  strings.TrimSpace(line[spaceIdx+1:]),
	}
}
