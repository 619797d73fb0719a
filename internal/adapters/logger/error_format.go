package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager matches zerr.Error, which can report its own message without the chain.
type messager interface {
	Message() string
}

// metadataCarrier matches zerr.Error metadata access.
type metadataCarrier interface {
	Metadata() map[string]any
}

// errorEntry is one level of an error chain.
type errorEntry struct {
	message  string
	metadata map[string]any
}

func (e errorEntry) keys() []string {
	return slices.Sorted(maps.Keys(e.metadata))
}

// collectErrorEntries walks the chain while it consists of zerr errors. The
// first standard error ends the walk with its full text. Levels with an empty
// message only carry metadata, which moves to the next level with a message.
func collectErrorEntries(err error) []errorEntry {
	var (
		entries []errorEntry
		pending map[string]any
	)

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error(), metadata: pending})
			break
		}

		meta := map[string]any{}
		maps.Copy(meta, pending)
		if mc, ok := current.(metadataCarrier); ok {
			maps.Copy(meta, mc.Metadata())
		}

		if m.Message() == "" {
			pending = meta
		} else {
			entries = append(entries, errorEntry{message: m.Message(), metadata: meta})
			pending = nil
		}
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as:
//
//	Error: <message>
//	  key: value
//
//	  Caused by:
//	    → <cause>
//	      key: value
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, e := range entries {
		msgLines := strings.Split(e.message, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, l := range msgLines[1:] {
				lines = append(lines, "       "+l)
			}
			for _, k := range e.keys() {
				lines = append(lines, fmt.Sprintf("  %s: %v", k, e.metadata[k]))
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, l := range msgLines[1:] {
			lines = append(lines, "      "+l)
		}
		for _, k := range e.keys() {
			lines = append(lines, fmt.Sprintf("      %s: %v", k, e.metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
