package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Hello world", Text("<div><p>Hello</p>\n<p>world</p></div>"))
	assert.Equal(t, "a & b", Text("a &amp; b"))
	assert.Equal(t, "plain text", Text("  plain \n text "))
	assert.Equal(t, "", Text(""))
}

func TestText_DropsScriptAndStyle(t *testing.T) {
	assert.Equal(t, "Hello. World.", Text("<script>var x=1;</script>Hello. World."))
	assert.Equal(t, "Title Body", Text("<style>p{color:red}</style><h1>Title</h1><p>Body</p>"))
}

func TestText_SeparatesBlocks(t *testing.T) {
	assert.Equal(t, "First. Second.", Text("<p>First.</p><p>Second.</p>"))
	assert.Equal(t, "one two", Text("one<br>two"))
	assert.Equal(t, "Hello world.", Text("Hello <b>world</b>."))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "版权", Truncate("版权诉讼", 2))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abc", 0))
}
