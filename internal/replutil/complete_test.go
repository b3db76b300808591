package replutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsComplete_SingleLineStatement(t *testing.T) {
	assert.True(t, IsComplete("print 1;\n"))
	assert.False(t, IsComplete("print 1"))
}

func TestIsComplete_MultilineBlock(t *testing.T) {
	buffer := "if (true) {\n"
	assert.False(t, IsComplete(buffer))

	buffer += "  var x = 1;\n"
	assert.False(t, IsComplete(buffer))

	buffer += "  print x;\n"
	assert.False(t, IsComplete(buffer))

	buffer += "}\n"
	assert.True(t, IsComplete(buffer))
}

func TestIsComplete_MultilineParentheses(t *testing.T) {
	buffer := "print (1 +\n"
	assert.False(t, IsComplete(buffer))

	buffer += "2);\n"
	assert.True(t, IsComplete(buffer))
}

func TestIsComplete_BraceInsideStringIsIgnored(t *testing.T) {
	assert.True(t, IsComplete(`print "{";` + "\n"))
}

func TestIsComplete_LineCommentDoesNotAffectBalance(t *testing.T) {
	assert.True(t, IsComplete("print 1; // trailing comment with { unbalanced brace\n"))
}

func TestIsComplete_EmptyBufferIsIncomplete(t *testing.T) {
	assert.False(t, IsComplete(""))
	assert.False(t, IsComplete("   \n"))
}
