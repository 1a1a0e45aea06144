package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const fixture = `<html><body>
<div id="root">
	<p class="total big"><span class="count">1,234</span>
		(of which 1,000 base)
		<!-- comment -->
		<em>tail</em>
	</p>
	<ul>
		<li class="item">a</li>
		<li class="item itemMark"></li>
		<li class="item">b</li>
	</ul>
</div>
</body></html>`

func TestNode(t *testing.T) {
	doc, err := ParseDocument(fixture)
	require.NoError(t, err)

	root := First(doc, "#root")
	require.NotNil(t, root)
	require.Nil(t, First(doc, "#missing"))

	counts := root.FindClass("count")
	require.Len(t, counts, 1)
	require.Equal(t, "1,234", counts[0].Text())

	parent := counts[0].Parent()
	require.NotNil(t, parent)
	class, ok := parent.Attr("class")
	require.True(t, ok)
	require.Equal(t, "total big", class)

	children := parent.Children()
	require.Len(t, children, 3)
	require.Equal(t, "1,234", children[0].Text())
	require.Contains(t, children[1].Text(), "(of which 1,000 base)")
	require.Equal(t, "tail", children[2].Text())

	items := root.FindClass("item")
	require.Len(t, items, 3)
	require.Equal(t, "b", items[2].Text())

	_, ok = items[0].Attr("id")
	require.False(t, ok)

	require.Nil(t, root.Find("p["))
}

func TestFromSelectionEmpty(t *testing.T) {
	require.Nil(t, FromSelection(nil))
}
