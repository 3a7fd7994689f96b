// File: flight-configuration/report.go
package configuration

import (
	"fmt"
	"strings"
)

// formatReport renders the aggregated failures into the single
// deterministic, grouped message attached to InvalidError.
//
// Group order is fixed, not configurable:
//  1. General failures that cannot be attributed to any source.
//  2. Environment-variable failures, one line per failing variable.
//  3. File failures grouped per file, with the declared file order reversed
//     so the most general file comes first.
//  4. Required attributes that were never set, plus failures on default
//     values, as a deduplicated list of attribute names.
//
// Every non-empty group is preceded by a blank separator line; the leading
// newline is stripped from the final string.
func formatReport(failures []Failure, declaredFiles []string) string {
	var general, env, missing []string
	perFile := make(map[string][]string)
	seenMissing := make(map[string]bool)

	addMissing := func(key string) {
		if !seenMissing[key] {
			seenMissing[key] = true
			missing = append(missing, key)
		}
	}

	for _, f := range failures {
		switch {
		case f.Kind == FailureMissing:
			addMissing(f.Key)
		case f.source == nil:
			line := f.Message
			if f.Key != "" {
				line = fmt.Sprintf("%s: %s", f.Key, f.Message)
			}
			general = append(general, line)
		case f.source.Type == SourceEnv:
			env = append(env, fmt.Sprintf("%s: %s", f.source.Origin, f.Message))
		case f.source.Type == SourceFile:
			origin := f.source.Origin
			perFile[origin] = append(perFile[origin], fmt.Sprintf("%s: %s", f.Key, f.Message))
		default:
			// Default-sourced failures join the missing-required list.
			addMissing(f.Key)
		}
	}

	var b strings.Builder
	appendGroup := func(text string) {
		if text == "" {
			return
		}
		b.WriteString("\n")
		b.WriteString(text)
	}

	appendGroup(renderLines(general))
	appendGroup(renderList("The following environment variable(s) are invalid:", env))

	// Declared order reversed: most general file first.
	for i := len(declaredFiles) - 1; i >= 0; i-- {
		path := declaredFiles[i]
		header := fmt.Sprintf("The following config(s) are invalid in '%s':", path)
		appendGroup(renderList(header, perFile[path]))
		delete(perFile, path)
	}

	appendGroup(renderList(
		"The following required attribute(s) have not been set or have invalid defaults:",
		missing,
	))

	out := b.String()
	if len(out) > 0 && out[0] == '\n' {
		out = out[1:]
	}
	return out
}

// renderLines joins plain failure lines, each terminated by a newline.
func renderLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderList renders a header followed by one " - " item per line.
func renderList(header string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString(" - ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}
