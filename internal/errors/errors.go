// Package errors provides the error taxonomy for dirview. Every failure the
// enumeration client, the navigator or the configuration layer can produce is
// one of the typed errors below, so frontends can branch on kind instead of
// matching message text.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Enumeration error kinds
	SpawnFailed
	ToolFailed
	ProtocolViolation
	TimedOut
	Canceled
	// Navigation error kinds
	NoHistory
	NoForwardHistory
	Superseded
	InvalidPath
	// Config error kinds
	InvalidConfig
	ConfigNotFound
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case SpawnFailed:
		return "spawn"
	case ToolFailed:
		return "tool"
	case ProtocolViolation:
		return "protocol"
	case TimedOut:
		return "timeout"
	case Canceled:
		return "canceled"
	case NoHistory:
		return "no-history"
	case NoForwardHistory:
		return "no-forward-history"
	case Superseded:
		return "superseded"
	case InvalidPath:
		return "invalid-path"
	case InvalidConfig:
		return "invalid-config"
	case ConfigNotFound:
		return "config-not-found"
	}
	return "unknown"
}

// Common error constants for frequently occurring errors
var (
	ErrNoHistory        = NewNavigationError("no previous directory in history", NoHistory)
	ErrNoForwardHistory = NewNavigationError("no next directory in history", NoForwardHistory)
	ErrInvalidConfig    = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// SpawnError is returned when the enumeration tool could not be launched at
// all: missing binary, not executable, permission denied.
type SpawnError struct {
	ApplicationError
	executable string
}

// NewSpawnError creates a new spawn error
func NewSpawnError(executable string, err error) *SpawnError {
	return &SpawnError{
		ApplicationError: ApplicationError{
			msg:  "failed to start enumeration tool",
			err:  err,
			kind: SpawnFailed,
		},
		executable: executable,
	}
}

// Error returns the spawn error message
func (e *SpawnError) Error() string {
	if e.executable != "" {
		return fmt.Sprintf("%s %q: %v", e.msg, e.executable, e.err)
	}
	return e.ApplicationError.Error()
}

// Executable returns the path that failed to launch
func (e *SpawnError) Executable() string {
	return e.executable
}

// ToolError is returned when the tool ran and exited with a nonzero status.
type ToolError struct {
	ApplicationError
	code   int
	stderr string
}

// NewToolError creates a new tool error. The message is the captured
// standard error with trailing whitespace removed.
func NewToolError(code int, stderr string) *ToolError {
	msg := strings.TrimRight(stderr, " \t\r\n")
	if msg == "" {
		msg = fmt.Sprintf("enumeration tool exited with status %d", code)
	}
	return &ToolError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: ToolFailed,
		},
		code:   code,
		stderr: stderr,
	}
}

// Code returns the tool's exit status
func (e *ToolError) Code() int {
	return e.code
}

// Message returns the trimmed diagnostic text
func (e *ToolError) Message() string {
	return e.msg
}

// Stderr returns the full captured standard error
func (e *ToolError) Stderr() string {
	return e.stderr
}

// ProtocolError is returned when the tool exited 0 but its output did not
// match the documented JSON shape.
type ProtocolError struct {
	ApplicationError
	output string
}

// NewProtocolError creates a new protocol error carrying the raw output
func NewProtocolError(msg string, output []byte, err error) *ProtocolError {
	return &ProtocolError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: ProtocolViolation,
		},
		output: string(output),
	}
}

// Output returns the raw standard output that failed to parse
func (e *ProtocolError) Output() string {
	return e.output
}

// TimeoutError is returned when the tool did not exit before the configured
// deadline and was killed.
type TimeoutError struct {
	ApplicationError
	path    string
	timeout time.Duration
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(path string, timeout time.Duration, err error) *TimeoutError {
	return &TimeoutError{
		ApplicationError: ApplicationError{
			msg:  "enumeration tool timed out",
			err:  err,
			kind: TimedOut,
		},
		path:    path,
		timeout: timeout,
	}
}

// Error returns the timeout error message
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s after %s listing %s", e.msg, e.timeout, e.path)
}

// Path returns the directory that was being listed
func (e *TimeoutError) Path() string {
	return e.path
}

// Timeout returns the deadline that was exceeded
func (e *TimeoutError) Timeout() time.Duration {
	return e.timeout
}

// NewCanceledError wraps a caller cancellation of an in-flight listing
func NewCanceledError(path string, err error) *ApplicationError {
	return &ApplicationError{
		msg:  "listing canceled: " + path,
		err:  err,
		kind: Canceled,
	}
}

// NewSupersededError reports a navigation whose result was discarded because
// a newer navigation was issued while it was in flight.
func NewSupersededError(path string) *ApplicationError {
	return &ApplicationError{
		msg:  "navigation superseded: " + path,
		kind: Superseded,
	}
}

// NavigationError represents history validation failures. They never involve
// the enumeration tool.
type NavigationError struct {
	ApplicationError
}

// NewNavigationError creates a new navigation error
func NewNavigationError(msg string, kind ErrorKind) *NavigationError {
	return &NavigationError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
	}
}

// Is matches navigation errors by kind so callers can compare against the
// exported sentinels.
func (e *NavigationError) Is(target error) bool {
	var t *NavigationError
	if errors.As(target, &t) {
		return t.kind == e.kind
	}
	return false
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first ApplicationError-derived error in the
// chain, or Unknown.
func KindOf(err error) ErrorKind {
	type kinded interface{ Kind() ErrorKind }
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// IsSpawnError checks if the error is a spawn error
func IsSpawnError(err error) bool {
	var spawnErr *SpawnError
	return errors.As(err, &spawnErr)
}

// IsToolError checks if the error is a tool error
func IsToolError(err error) bool {
	var toolErr *ToolError
	return errors.As(err, &toolErr)
}

// IsProtocolError checks if the error is a protocol error
func IsProtocolError(err error) bool {
	var protoErr *ProtocolError
	return errors.As(err, &protoErr)
}

// IsTimeout checks if the error is a timeout error
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsNoHistory checks if the error is a no history error
func IsNoHistory(err error) bool {
	return KindOf(err) == NoHistory
}

// IsCanceled checks if the error is a canceled listing
func IsCanceled(err error) bool {
	return KindOf(err) == Canceled
}

// IsSuperseded checks if the error is a superseded navigation
func IsSuperseded(err error) bool {
	return KindOf(err) == Superseded
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
