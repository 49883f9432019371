package main

import (
	"fmt"

	"github.com/corvidmail/attachbrowser/internal/attach"
	"github.com/corvidmail/attachbrowser/internal/body"
)

// noComposeHandoff implements attach.ComposeHandoff by refusing every
// send-pipeline op. Composition of outgoing messages is explicitly out
// of scope (spec.md Non-goals); the operation table still needs a
// collaborator to hand off to so RESEND/BOUNCE/FORWARD/REPLY/FOLLOWUP
// fail loudly instead of silently doing nothing.
type noComposeHandoff struct{}

func (noComposeHandoff) Handoff(op attach.Op, targets []*body.Body) error {
	return fmt.Errorf("%s: composition of outgoing messages is not built into this tool", op)
}
