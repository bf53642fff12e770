package component

// Tool is the active player tool
type Tool uint8

const (
	ToolBuild Tool = iota
	ToolJoint
)

func (t Tool) String() string {
	switch t {
	case ToolJoint:
		return "joint"
	default:
		return "build"
	}
}
