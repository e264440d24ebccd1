package models

// EditorStateKey is the fixed key under which the editor state is cached between sessions.
const EditorStateKey = "workflow-editor-storage"

// EditorState is the client-local snapshot restored on the next session.
type EditorState struct {
	Plan                *Plan        `json:"plan"`
	Nodes               []*Node      `json:"nodes"`
	Edges               []*Edge      `json:"edges"`
	DefaultEdgePathType EdgePathType `json:"defaultEdgePathType"`
}
