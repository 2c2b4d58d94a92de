package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisp/pkg/css"
	"wisp/pkg/dom"
	"wisp/pkg/html"
	"wisp/pkg/style"
)

func styled(t *testing.T, markup, sheet string) *style.StyledNode {
	t.Helper()
	root, err := html.Parse([]byte(markup))
	require.NoError(t, err)
	ss, err := css.Parse(style.DefaultStylesheet + "\n" + sheet)
	require.NoError(t, err)
	return style.Resolve(root, ss)
}

func types(boxes []*Box) []BoxType {
	out := make([]BoxType, len(boxes))
	for i, b := range boxes {
		out[i] = b.Type
	}
	return out
}

func TestBuild_BlockWithMixedChildren(t *testing.T) {
	root := Build(styled(t, `<div>a<span>b</span><p>c</p>d<p>e</p><i>f</i>g</div>`, ""))

	assert.Equal(t, BlockBox, root.Type)
	assert.Equal(t, []BoxType{AnonymousBox, BlockBox, AnonymousBox, BlockBox, AnonymousBox}, types(root.Children))
	assert.Equal(t, []BoxType{InlineBox, InlineBox}, types(root.Children[0].Children))
	assert.Equal(t, []BoxType{InlineBox}, types(root.Children[2].Children))
	assert.Equal(t, []BoxType{InlineBox, InlineBox}, types(root.Children[4].Children))
	assert.Nil(t, root.Children[0].Props)
}

func TestBuild_NoInlineDirectlyUnderBlock(t *testing.T) {
	markups := []string{
		`<div><p>x</p><span>y</span><div>z<p>w</p>v</div></div>`,
		`<div>only text</div>`,
		`<div><p><span>a</span><p>b</p></p></div>`,
		`<p><div>x</div><div>y</div></p>`,
	}
	var check func(*Box)
	check = func(b *Box) {
		if b.Type == BlockBox {
			for i, c := range b.Children {
				assert.NotEqual(t, InlineBox, c.Type, "inline child of block <%s>", b.TagName())
				if i > 0 && c.Type == AnonymousBox {
					assert.NotEqual(t, AnonymousBox, b.Children[i-1].Type, "adjacent anonymous boxes")
				}
			}
		}
		for _, c := range b.Children {
			check(c)
		}
	}
	for _, m := range markups {
		check(Build(styled(t, m, "")))
	}
}

func TestBuild_InlineParentContainsBlocks(t *testing.T) {
	root := Build(styled(t, `<span>a<p>b</p>c</span>`, ""))

	assert.Equal(t, InlineBox, root.Type)
	assert.Equal(t, []BoxType{InlineBox, BlockBox, InlineBox}, types(root.Children))
}

func TestBuild_NoneChildrenSkipped(t *testing.T) {
	root := Build(styled(t, `<div><script>x()</script>a<style>p {}</style><p>b</p></div>`, ""))

	assert.Equal(t, []BoxType{AnonymousBox, BlockBox}, types(root.Children))
	assert.Equal(t, "a", root.Children[0].Children[0].Props.Text)
}

func TestBuild_NoneRootHasNoChildren(t *testing.T) {
	root := Build(styled(t, `<div><p>a</p>b</div>`, "* { display: none }"))

	assert.Equal(t, NoneBox, root.Type)
	assert.Empty(t, root.Children)
}

func TestInlineContainer(t *testing.T) {
	block := &Box{Type: BlockBox}
	first := block.InlineContainer()
	assert.Equal(t, AnonymousBox, first.Type)
	assert.Same(t, first, block.InlineContainer(), "trailing anonymous box is reused")

	block.Children = append(block.Children, &Box{Type: BlockBox})
	second := block.InlineContainer()
	assert.NotSame(t, first, second)
	assert.Len(t, block.Children, 3)

	for _, typ := range []BoxType{InlineBox, NoneBox, AnonymousBox} {
		b := &Box{Type: typ}
		assert.Same(t, b, b.InlineContainer())
		assert.Empty(t, b.Children)
	}
}

func TestBox_InnerTextAndAttributes(t *testing.T) {
	root := Build(styled(t, `<a href="/next">go <i>now</i></a>`, ""))

	assert.Equal(t, "a", root.TagName())
	assert.Equal(t, "/next", root.Attribute("href"))
	assert.Equal(t, "go now", root.InnerText())
	assert.Equal(t, "", root.Children[0].TagName())
	assert.True(t, root.Children[0].IsText())
}

func TestLayoutDocument(t *testing.T) {
	doc, err := dom.NewDocument("http://a", "http://a", dom.NewElement("p", nil, dom.NewText("x")))
	require.NoError(t, err)

	ld := LayoutDocument(style.StyleDocument(doc, nil))
	assert.Equal(t, "http://a", ld.URL)
	assert.Equal(t, BlockBox, ld.Root.Type)
	assert.Equal(t, []BoxType{AnonymousBox}, types(ld.Root.Children))
}
