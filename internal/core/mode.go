// Package core is the orchestration layer.  It composes transports,
// handlers and sessions into the complete tools (key generator,
// enc/dec service, enc/dec client) and provides a builder that selects
// the right one from a Config.
//
// Architecture layers (bottom → top):
//
//	cipher → protocol → session → handler/transport → core → cmd (CLI)
package core

import "context"

// Mode is one complete tool.  Each mode owns its full lifecycle from
// setup to teardown and returns when done or when ctx is cancelled.
type Mode interface {
	Run(ctx context.Context) error
}
