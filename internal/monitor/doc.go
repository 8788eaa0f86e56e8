// Package monitor implements the tabbed terminal dashboard for a single node.
//
// # Architecture
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: owns State, the Scheduler and UI flags (help, size, refreshing)
//   - Update: processes keys, poll ticks and refresh results
//   - View: builds a ViewModel from State and hands it to a Renderer
//
// # Message Flow
//
//  1. pollTickMsg fires every poll interval (default 100ms)
//  2. if the Scheduler is due and no refresh is running, refreshCmd starts
//  3. refreshCmd runs the evaluator off the UI goroutine
//  4. refreshMsg arrives and overwrites State in Update
//
// State is only ever written inside Update, so it needs no locking.
//
// # Renderers
//
// StyledRenderer draws the lipgloss dashboard used by the TUI.
// PlainRenderer draws the same ViewModel as plain text for one-shot reports.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	left, h     - Previous tab
//	right, l    - Next tab
//	r           - Refresh now
//	?           - Toggle help overlay
package monitor
