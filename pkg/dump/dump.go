// Package dump renders the intermediate trees of the engine for debugging:
// the DOM, the styled tree and the box tree, as an indented tree or encoded
// as YAML or JSON.
package dump

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	json "github.com/json-iterator/go"
	tp "github.com/xlab/treeprint"
	yaml "gopkg.in/yaml.v3"

	"wisp/pkg/dom"
	"wisp/pkg/layout"
	"wisp/pkg/style"
)

type Format string

const (
	FormatTree Format = "tree"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTree, FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown dump format %q (want tree, yaml or json)", s)
}

// Node is a serialisable snapshot of one node of any of the three trees.
type Node struct {
	Kind       string            `json:"kind" yaml:"kind"`
	Tag        string            `json:"tag,omitempty" yaml:"tag,omitempty"`
	Text       string            `json:"text,omitempty" yaml:"text,omitempty"`
	URL        string            `json:"url,omitempty" yaml:"url,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
	Children   []*Node           `json:"children,omitempty" yaml:"children,omitempty"`
}

func attrs(m dom.AttrMap) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func props(m style.PropertyMap) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.String()
	}
	return out
}

func DOMSnapshot(n *dom.Node) *Node {
	s := &Node{
		Kind:       n.Type.String(),
		Tag:        n.TagName,
		Text:       n.Text,
		URL:        n.URL,
		Attributes: attrs(n.Attributes),
	}
	for _, child := range n.Children {
		s.Children = append(s.Children, DOMSnapshot(child))
	}
	return s
}

func StyledSnapshot(n *style.StyledNode) *Node {
	s := &Node{
		Kind:       n.Type.String(),
		Tag:        n.TagName,
		Text:       n.Text,
		URL:        n.URL,
		Attributes: attrs(n.Attributes),
		Properties: props(n.Properties),
	}
	for _, child := range n.Children {
		s.Children = append(s.Children, StyledSnapshot(child))
	}
	return s
}

func BoxSnapshot(b *layout.Box) *Node {
	s := &Node{Kind: b.Type.String() + " box"}
	if b.Props != nil {
		s.Tag = b.Props.TagName
		s.Text = b.Props.Text
		s.Attributes = attrs(b.Props.Attributes)
		s.Properties = props(b.Props.Properties)
	}
	for _, child := range b.Children {
		s.Children = append(s.Children, BoxSnapshot(child))
	}
	return s
}

// label is the one-line form of a node used by the tree format.
func (n *Node) label() string {
	var sb strings.Builder
	switch {
	case n.Tag != "":
		sb.WriteString(n.Kind)
		sb.WriteString(" <")
		sb.WriteString(n.Tag)
		for _, k := range sortedKeys(n.Attributes) {
			fmt.Fprintf(&sb, " %s=%q", k, n.Attributes[k])
		}
		sb.WriteString(">")
	case n.Text != "":
		sb.WriteString(n.Kind)
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(n.Text))
	case n.URL != "":
		sb.WriteString(n.Kind)
		sb.WriteByte(' ')
		sb.WriteString(n.URL)
	default:
		sb.WriteString(n.Kind)
	}
	if len(n.Properties) > 0 {
		decls := make([]string, 0, len(n.Properties))
		for _, k := range sortedKeys(n.Properties) {
			decls = append(decls, k+": "+n.Properties[k])
		}
		sb.WriteString(" {")
		sb.WriteString(strings.Join(decls, "; "))
		sb.WriteString("}")
	}
	return sb.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String draws the snapshot as an indented tree.
func (n *Node) String() string {
	t := tp.NewWithRoot(n.label())
	addChildren(t, n.Children)
	return t.String()
}

func addChildren(t tp.Tree, children []*Node) {
	for _, child := range children {
		if len(child.Children) == 0 {
			t.AddNode(child.label())
			continue
		}
		addChildren(t.AddBranch(child.label()), child.Children)
	}
}

func DOMTree(n *dom.Node) string            { return DOMSnapshot(n).String() }
func StyledTree(n *style.StyledNode) string { return StyledSnapshot(n).String() }
func Tree(b *layout.Box) string             { return BoxSnapshot(b).String() }

// Encode writes the snapshot in the given format.
func Encode(w io.Writer, format Format, n *Node) error {
	switch format {
	case FormatTree:
		_, err := io.WriteString(w, n.String())
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown dump format %q", format)
}
