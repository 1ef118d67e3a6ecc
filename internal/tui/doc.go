// Package tui is the interactive terminal front end. It renders the pending
// video and subtitle lists side by side, feeds mouse input through the drag
// engine, plays the settle animation and drives the commit flow including the
// overwrite confirmation.
package tui
