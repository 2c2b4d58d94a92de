package dom

import (
	"errors"
	"sort"
	"strings"
)

// ErrDocumentChildren is returned when a document is built with anything
// other than exactly one child.
var ErrDocumentChildren = errors.New("document must have exactly one child")

// NodeType tells element, text and document nodes apart.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	DocumentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case DocumentNode:
		return "document"
	}
	return "unknown"
}

// AttrMap maps attribute names to values. Keys are unique and unordered.
type AttrMap map[string]string

// Clone returns an independent copy of m.
func (m AttrMap) Clone() AttrMap {
	if m == nil {
		return nil
	}
	c := make(AttrMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Names returns the attribute names in sorted order.
func (m AttrMap) Names() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Node is an element, a text run or a document. A parent owns its children
// and nodes keep no reference to their parent.
type Node struct {
	Type       NodeType
	TagName    string  // ElementNode
	Attributes AttrMap // ElementNode
	Text       string  // TextNode

	// DocumentNode
	URL         string
	DocumentURI string

	Children []*Node
}

// NewElement creates an element node. A nil attrs becomes an empty map.
func NewElement(tagName string, attrs AttrMap, children ...*Node) *Node {
	if attrs == nil {
		attrs = AttrMap{}
	}
	return &Node{
		Type:       ElementNode,
		TagName:    tagName,
		Attributes: attrs,
		Children:   children,
	}
}

// NewText creates a text node holding data.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Text: data}
}

// NewDocument wraps the document element into a document node. Exactly one
// child must be given.
func NewDocument(url, documentURI string, children ...*Node) (*Node, error) {
	if len(children) != 1 {
		return nil, ErrDocumentChildren
	}
	return &Node{
		Type:        DocumentNode,
		URL:         url,
		DocumentURI: documentURI,
		Children:    children,
	}, nil
}

// DocumentElement returns the single child of a document node. Calling it on
// any other node is a programming error and panics.
func (n *Node) DocumentElement() *Node {
	if n.Type != DocumentNode {
		panic("dom: DocumentElement called on a " + n.Type.String() + " node")
	}
	if len(n.Children) != 1 {
		panic("dom: document node without a single document element")
	}
	return n.Children[0]
}

// SetDocumentElement replaces the document element.
func (n *Node) SetDocumentElement(root *Node) {
	if n.Type != DocumentNode {
		panic("dom: SetDocumentElement called on a " + n.Type.String() + " node")
	}
	n.Children = []*Node{root}
}

// IsElement reports whether n is an element named tagName.
func (n *Node) IsElement(tagName string) bool {
	return n.Type == ElementNode && n.TagName == tagName
}

// GetAttribute returns the value of attribute name and whether it is set.
func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// SetAttribute sets attribute name to value.
func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = AttrMap{}
	}
	n.Attributes[name] = value
}

// RemoveAttribute deletes attribute name, if present.
func (n *Node) RemoveAttribute(name string) {
	delete(n.Attributes, name)
}

// ID returns the id attribute, or "" when absent.
func (n *Node) ID() string {
	id, _ := n.GetAttribute("id")
	return id
}

// AppendChild adds child as the last child of n and returns it.
func (n *Node) AppendChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// AppendText adds a text node holding text. Empty text is ignored.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AppendChild(NewText(text))
}

// RemoveChild detaches child from n and returns it, or nil when child is not
// a direct child of n.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return child
		}
	}
	return nil
}

// ReplaceChildren drops all children of n and adopts children instead.
func (n *Node) ReplaceChildren(children ...*Node) {
	n.Children = append([]*Node(nil), children...)
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	if n == other {
		return true
	}
	for _, child := range n.Children {
		if child.Contains(other) {
			return true
		}
	}
	return false
}

// ParentOf finds the parent of target below n by walking the tree.
func (n *Node) ParentOf(target *Node) *Node {
	for _, child := range n.Children {
		if child == target {
			return n
		}
		if p := child.ParentOf(target); p != nil {
			return p
		}
	}
	return nil
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// CloneNode copies n. With deep set the whole subtree is copied.
func (n *Node) CloneNode(deep bool) *Node {
	clone := &Node{
		Type:        n.Type,
		TagName:     n.TagName,
		Attributes:  n.Attributes.Clone(),
		Text:        n.Text,
		URL:         n.URL,
		DocumentURI: n.DocumentURI,
	}
	if deep {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.CloneNode(true)
		}
	}
	return clone
}

// InnerText concatenates the data of every descendant text node.
func (n *Node) InnerText() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, child := range n.Children {
		if child.Type == TextNode {
			sb.WriteString(child.Text)
			continue
		}
		child.writeText(sb)
	}
}

// InnerHTML serializes the children of n.
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	for _, child := range n.Children {
		serializeNode(&sb, child)
	}
	return sb.String()
}

// OuterHTML serializes n together with its descendants.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *Node) {
	switch n.Type {
	case TextNode:
		sb.WriteString(n.Text)
		return
	case DocumentNode:
		for _, child := range n.Children {
			serializeNode(sb, child)
		}
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.TagName)
	for _, k := range n.Attributes.Names() {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(strings.ReplaceAll(n.Attributes[k], `"`, "&quot;"))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	for _, child := range n.Children {
		serializeNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}

// CollectTagInners returns the inner text of every element named tagName
// below n, in document order.
func (n *Node) CollectTagInners(tagName string) []string {
	var inners []string
	n.Walk(func(node *Node) bool {
		if node.IsElement(tagName) {
			inners = append(inners, node.InnerText())
		}
		return true
	})
	return inners
}

// StyleInners returns the contents of all style elements.
func (n *Node) StyleInners() []string {
	return n.CollectTagInners("style")
}

// ScriptInners returns the contents of all script elements.
func (n *Node) ScriptInners() []string {
	return n.CollectTagInners("script")
}

// ElementByID returns the first element below n whose id equals id.
func (n *Node) ElementByID(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.Type == ElementNode && node.ID() == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// ElementsByTagName collects all elements named tagName below n, n included.
func (n *Node) ElementsByTagName(tagName string) []*Node {
	var result []*Node
	n.Walk(func(node *Node) bool {
		if node.IsElement(tagName) {
			result = append(result, node)
		}
		return true
	})
	return result
}
