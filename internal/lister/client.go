// Package lister runs the external enumeration tool and turns its JSON output
// into a types.Listing.
//
// The tool is invoked once per call as
//
//	<tool> --format json -a -l <directory>
//
// Its entire standard output is read as one document once it exits.
package lister

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"dirview/internal/config"
	"dirview/internal/errors"
	"dirview/internal/log"
	"dirview/pkg/types"

	"github.com/google/uuid"
)

// waitDelay bounds how long Wait keeps draining output after the tool has
// been killed, in case it left children holding the pipes open.
const waitDelay = 500 * time.Millisecond

// Lister lists one directory.
type Lister interface {
	ListDirectory(ctx context.Context, path string) (*types.Listing, error)
}

// Ensure Client implements the Lister interface
var _ Lister = (*Client)(nil)

// Client runs the enumeration tool as a subprocess.
type Client struct {
	resolver Resolver
	timeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout kills the tool and fails with a TimeoutError when a listing
// takes longer than d. Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a client using resolver to find the tool.
func New(resolver Resolver, opts ...Option) *Client {
	c := &Client{resolver: resolver}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a client from the tool section of cfg.
func NewFromConfig(cfg *config.Config) *Client {
	return New(ResolverFromConfig(cfg), WithTimeout(cfg.Tool.Timeout))
}

// Args returns the fixed argument vector for listing path.
func Args(path string) []string {
	return []string{"--format", "json", "-a", "-l", path}
}

// ListDirectory runs the tool for path. It returns the listing with the path
// the tool reported, or one of SpawnError, ToolError, ProtocolError,
// TimeoutError or a canceled error. It never retries.
func (c *Client) ListDirectory(ctx context.Context, path string) (*types.Listing, error) {
	request := uuid.NewString()

	exe, err := c.resolver.Resolve()
	if err != nil {
		return nil, errors.NewSpawnError(exe, err)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, exe, Args(path)...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			if ctx.Err() != nil {
				return nil, errors.NewCanceledError(path, ctx.Err())
			}
			log.LogWithFields(log.F("request", request), log.F("path", path), log.F("timeout", c.timeout)).Warn("enumeration tool timed out")
			return nil, errors.NewTimeoutError(path, c.timeout, ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.LogWithFields(
				log.F("request", request),
				log.F("path", path),
				log.F("exit", exitErr.ExitCode()),
				log.F("elapsed", elapsed),
			).Debug("enumeration tool failed")
			return nil, errors.NewToolError(exitErr.ExitCode(), stderr.String())
		}

		return nil, errors.NewSpawnError(exe, err)
	}

	listing, err := Decode(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	log.LogWithFields(
		log.F("request", request),
		log.F("requested", path),
		log.F("path", listing.Path),
		log.F("entries", listing.Len()),
		log.F("elapsed", elapsed),
	).Debug("listed directory")

	return listing, nil
}

// Decode parses the tool's standard output. Anything other than an object
// with a non-empty string "path" and an "entries" array of objects, each with
// a non-empty "name" and a non-negative "size", is a ProtocolError.
func Decode(output []byte) (*types.Listing, error) {
	var raw types.RawListing
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, errors.NewProtocolError("malformed tool output", output, err)
	}
	if raw.Path == nil {
		return nil, errors.NewProtocolError(`tool output has no "path"`, output, nil)
	}
	if *raw.Path == "" {
		return nil, errors.NewProtocolError(`tool output has an empty "path"`, output, nil)
	}
	if raw.Entries == nil {
		return nil, errors.NewProtocolError(`tool output has no "entries"`, output, nil)
	}
	for i, e := range *raw.Entries {
		switch {
		case e == nil:
			return nil, errors.NewProtocolError(fmt.Sprintf("entry %d is null", i), output, nil)
		case e.Name == "":
			return nil, errors.NewProtocolError(fmt.Sprintf(`entry %d has no "name"`, i), output, nil)
		case e.Size < 0:
			return nil, errors.NewProtocolError(fmt.Sprintf("entry %q has negative size %d", e.Name, e.Size), output, nil)
		}
	}
	if raw.Total != len(*raw.Entries) {
		log.Debugf("tool reported total=%d for %d entries", raw.Total, len(*raw.Entries))
	}
	return types.NormalizeListing(raw), nil
}
