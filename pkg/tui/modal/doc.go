// Package modal hosts an alert surface inside a Bubble Tea program.
//
// A Host owns one present/dismiss cycle: the scheduler that drives the
// animations, the transition coordinator and the surface. The program
// forwards every message to the host while it is open and draws the host
// over its own view.
//
// # Quick Start
//
//	del := action.New("Delete", action.Negative, action.WithCompletion(removeItem))
//	cancel := action.New("Cancel", action.Neutral)
//
//	h, err := modal.NewHost(strategy, modal.NewTextContent("Delete item?", body),
//	    []*action.Action{cancel, del})
//	cmd, err := h.Present(m.width, m.height)
//
//	// In Update():
//	if m.modal != nil {
//	    cmd := m.modal.Update(msg)
//	    if m.modal.Done() {
//	        m.modal = nil
//	    }
//	    return m, cmd
//	}
//
//	// In View():
//	if m.modal != nil {
//	    return m.modal.View(background)
//	}
//
// # Input
//
//   - up/down, tab/shift+tab: move focus between enabled actions
//   - enter: select the focused action
//   - esc: same as a backdrop click
//   - any other text: jump to the closest matching action title
//   - click an action to select it, click outside the surface to tap the
//     backdrop, drag a sheet down to swipe it away
//
// Geometry is in cells: one point of the layout engine is one terminal
// cell.
package modal
