package css

import (
	"strings"

	"wisp/pkg/dom"
)

// Matches reports whether any selector of r matches n.
func (r *Rule) Matches(n *dom.Node) bool {
	for _, sel := range r.Selectors {
		if sel.Matches(n) {
			return true
		}
	}
	return false
}

// Matches reports whether s selects n. The universal selector matches nodes
// of every type; the others only match elements. Class selectors compare the
// whole class attribute, so ".a" does not match class="a b".
func (s Selector) Matches(n *dom.Node) bool {
	switch s.Type {
	case UniversalSelector:
		return true
	case TypeSelector:
		return n.IsElement(s.TagName)
	case ClassSelector:
		if n.Type != dom.ElementNode {
			return false
		}
		class, ok := n.GetAttribute("class")
		return ok && class == s.ClassName
	case AttributeSelector:
		if !n.IsElement(s.TagName) {
			return false
		}
		val, ok := n.GetAttribute(s.Attribute)
		if !ok {
			return false
		}
		switch s.Op {
		case OpEq:
			return val == s.Value
		case OpContain:
			for _, tok := range strings.Fields(val) {
				if tok == s.Value {
					return true
				}
			}
		}
	}
	return false
}
