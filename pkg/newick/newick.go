// Package newick parses Newick-format phylogenetic trees and lays them
// out for drawing.
package newick

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a single node of a parsed tree. A node with no children is a
// leaf. Nodes are not modified after parsing; layout results live in a
// separate structure keyed by node id (see layout.go).
type Node struct {
	Name       string  `json:"name,omitempty"`
	Length     float64 `json:"length"`
	Support    float64 `json:"support,omitempty"`
	HasSupport bool    `json:"hasSupport,omitempty"`
	Children   []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// LeafNames collects leaf names depth first, left to right.
func (n *Node) LeafNames() []string {
	if n.IsLeaf() {
		return []string{n.Name}
	}
	var names []string
	for _, c := range n.Children {
		names = append(names, c.LeafNames()...)
	}
	return names
}

// Parse reads a Newick string into a tree. The string must end with a
// semicolon. Quoted ('...') and bare names are accepted, branch lengths
// follow a colon, and a bare number directly after a closing parenthesis
// is taken as a support value rather than a name.
func Parse(text string) (*Node, error) {
	p := &parser{src: text}
	p.skipSpace()
	root, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.consume(';') {
		return nil, fmt.Errorf("newick: missing terminating ';' at offset %d", p.pos)
	}
	return root, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) consume(c byte) bool {
	if b, ok := p.peek(); ok && b == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseNode() (*Node, error) {
	node := &Node{}

	p.skipSpace()
	if p.consume('(') {
		for {
			child, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
			p.skipSpace()
			if p.consume(',') {
				continue
			}
			if p.consume(')') {
				break
			}
			return nil, fmt.Errorf("newick: expected ',' or ')' at offset %d", p.pos)
		}
		// A label directly after ')' is a support value when it is
		// fully numeric, otherwise an internal node name.
		label, err := p.parseLabel()
		if err != nil {
			return nil, err
		}
		if label != "" {
			if v, err := strconv.ParseFloat(label, 64); err == nil {
				node.Support = v
				node.HasSupport = true
			} else {
				node.Name = label
			}
		}
	} else {
		name, err := p.parseLabel()
		if err != nil {
			return nil, err
		}
		node.Name = name
	}

	p.skipSpace()
	if p.consume(':') {
		length, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		node.Length = length
	}
	return node, nil
}

// parseLabel reads a quoted or bare name. Bare names run up to the next
// structural character; quoted names may contain anything except the
// quote itself.
func (p *parser) parseLabel() (string, error) {
	p.skipSpace()
	if p.consume('\'') {
		end := strings.IndexByte(p.src[p.pos:], '\'')
		if end < 0 {
			return "", fmt.Errorf("newick: unterminated quoted name at offset %d", p.pos)
		}
		name := p.src[p.pos : p.pos+end]
		p.pos += end + 1
		return name, nil
	}
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ',', '(', ')', ':', ';':
			return strings.TrimSpace(p.src[start:p.pos]), nil
		}
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos]), nil
}

func (p *parser) parseNumber() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return 0, fmt.Errorf("newick: expected number at offset %d", p.pos)
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("newick: bad branch length %q at offset %d", p.src[start:p.pos], start)
	}
	return v, nil
}
