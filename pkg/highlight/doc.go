// Package highlight implements the selection and highlight model of a graph view.
//
// A [Controller] owns one [State]: at most one selected node plus the node
// currently under the pointer. Pointer events ([Hover], [Unhover], [Click],
// [ClickBackground]) are reduced into the next state and an [Effects]
// descriptor telling the renderer what to draw:
//
//   - which nodes and links are dimmed (everything outside the active
//     node's neighborhood),
//   - which node carries the "selected" marker,
//   - what the info panel says.
//
// # Transitions
//
//	Hover(n)          any            -> unchanged     active = n
//	Unhover           Selected(s)    -> Selected(s)   active = s, or none under RevertToCleared
//	Click(n)          Idle           -> Selected(n)   active = n
//	Click(n)          Selected(n)    -> Idle          active = none
//	Click(n)          Selected(s)    -> Selected(n)   active = n
//	ClickBackground   any            -> Idle          active = none
//
// The reducer is pure: [Controller.Reduce] never touches the controller's own
// state, which makes it usable for previews and tests. [Controller.Dispatch]
// applies an event and remembers the result.
//
// # Concurrency
//
// A Controller is not safe for concurrent use. Hosts deliver events one at a
// time; the HTTP server serializes them per view.
package highlight
