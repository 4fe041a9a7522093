// Package printer renders Sk syntax trees for debugging.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sk-lang/skc/internal/parser"
)

// Output formats
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options controls tree printing
type Options struct {
	// IndentSize specifies the number of spaces per nesting level
	IndentSize int
	// PreferTabs uses tabs instead of spaces for indentation
	PreferTabs bool
	// ShowSpans appends the byte range of every node
	ShowSpans bool
}

// DefaultOptions returns default tree options
func DefaultOptions() Options {
	return Options{IndentSize: 2}
}

// ParseFormat validates an output format name
func ParseFormat(name string) (string, error) {
	switch strings.ToLower(name) {
	case FormatTree, "":
		return FormatTree, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want tree, json or yaml)", name)
	}
}

// Write renders nodes to w in the given format
func Write(w io.Writer, format string, nodes []parser.Node, opts Options) error {
	format, err := ParseFormat(format)
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case FormatJSON:
		out, err = JSON(nodes)
	case FormatYAML:
		out, err = YAML(nodes)
	default:
		out = []byte(Tree(nodes, opts))
	}
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}

// JSON encodes nodes as an indented JSON array
func JSON(nodes []parser.Node) ([]byte, error) {
	out, err := json.MarshalIndent(ToMaps(nodes), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// YAML encodes nodes as a YAML sequence
func YAML(nodes []parser.Node) ([]byte, error) {
	out, err := yaml.Marshal(ToMaps(nodes))
	if err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return out, nil
}
