package messages

import (
	"dirview/internal/watch"
	"dirview/pkg/types"
)

// Op names the navigation that produced a DirectoryChangeMsg.
type Op string

const (
	OpNavigate Op = "navigate"
	OpBack     Op = "back"
	OpForward  Op = "forward"
	OpUp       Op = "up"
	OpRefresh  Op = "refresh"
	OpHome     Op = "home"
)

// DirectoryChangeMsg carries the result of one navigation.
type DirectoryChangeMsg struct {
	Op      Op
	Listing *types.Listing
	Err     error
}

// FileChangeMsg reports that the directory on screen changed on disk.
type FileChangeMsg struct {
	Change watch.Change
}

// ErrorMsg carries an error that is not tied to a navigation.
type ErrorMsg struct {
	Err error
}
