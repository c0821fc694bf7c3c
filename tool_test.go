package colorin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTool_ParseTool(t *testing.T) {
	assert := assert.New(t)

	for _, tool := range []Tool{ToolBrush, ToolEraser, ToolPan} {
		got, err := ParseTool(tool.String())
		assert.NoError(err)
		assert.Equal(tool, got)
	}

	got, err := ParseTool(" Move ")
	assert.NoError(err)
	assert.Equal(ToolPan, got)

	_, err = ParseTool("bucket")
	assert.Error(err)
	assert.False(Tool(7).Valid())
	assert.Equal("Tool(7)", Tool(7).String())
}

func TestInput_TouchSample(t *testing.T) {
	assert := assert.New(t)

	ps, ok := TouchSample([]Point{Pt(3, 4), Pt(50, 60)}, PhaseMove)
	assert.True(ok)
	assert.Equal(MouseSample(3, 4, PhaseMove), ps)

	ps, ok = TouchSample(nil, PhaseEnd)
	assert.True(ok)
	assert.Equal(PhaseEnd, ps.Phase)

	_, ok = TouchSample(nil, PhaseStart)
	assert.False(ok)
}
