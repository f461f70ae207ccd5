package layout

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// node is a schemaless XML element. Layout files are read attribute by
// attribute, with per-menu defaults, so a typed decode buys nothing.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []*node    `xml:",any"`
}

func parse(r io.Reader) (*node, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return &root, nil
}

func (n *node) name() string {
	if n == nil {
		return ""
	}
	return n.XMLName.Local
}

// attr is nil safe so callers can pass a missing defaults node.
func (n *node) attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) has(name string) bool {
	_, ok := n.attr(name)
	return ok
}

func (n *node) children(name string) []*node {
	if n == nil {
		return nil
	}
	var out []*node
	for _, c := range n.Nodes {
		if c.XMLName.Local == name {
			out = append(out, c)
		}
	}
	return out
}

func (n *node) first(name string) *node {
	if n == nil {
		return nil
	}
	for _, c := range n.Nodes {
		if c.XMLName.Local == name {
			return c
		}
	}
	return nil
}

// lookup reads name from n, then from defaults.
func lookup(n, defaults *node, name string) (string, bool) {
	if v, ok := n.attr(name); ok {
		return v, true
	}
	return defaults.attr(name)
}

func (n *node) intOr(name string, fallback int) int {
	v, ok := n.attr(name)
	if !ok {
		return fallback
	}
	return toInt(v)
}

func (n *node) floatOr(name string, fallback float64) float64 {
	v, ok := n.attr(name)
	if !ok {
		return fallback
	}
	return toFloat(v)
}

// flag accepts "true" and "yes" in any case.
func (n *node) flag(name string) bool {
	v, _ := n.attr(name)
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "yes"
}

// toInt and toFloat read malformed numbers as 0.
func toInt(s string) int {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return int(toFloat(s))
}

func toFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// toColor reads a hex RRGGBB value, with or without a leading '#'.
func toColor(s string) (r, g, b uint8) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}
