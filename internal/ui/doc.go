// Package ui provides the small terminal widgets solprobe prints outside
// the dashboard, such as the progress line shown while a one-shot report
// is being gathered.
//
// Colors are plain ANSI codes so they degrade cleanly; --no-color switches
// lipgloss to the ASCII profile and these styles render as bare text.
package ui
