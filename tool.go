package colorin

import (
	"fmt"
	"strings"
)

// Tool represents the current interaction tool.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolPan
)

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolEraser:
		return "eraser"
	case ToolPan:
		return "pan"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// Valid reports whether t is one of the known tools.
func (t Tool) Valid() bool {
	return t >= ToolBrush && t <= ToolPan
}

// ParseTool returns the tool with the given name. "move" is accepted as an alias of pan.
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "brush":
		return ToolBrush, nil
	case "eraser":
		return ToolEraser, nil
	case "pan", "move":
		return ToolPan, nil
	}
	return ToolBrush, fmt.Errorf("unknown tool: %q", name)
}
