package main

import (
	"context"

	"github.com/corvidmail/attachbrowser/internal/store"
)

// mailboxAdapter satisfies attach.MailboxStore over a
// store.OpenedMessage, binding the context-taking store calls to the
// process's background context the way a short-lived CLI invocation
// can get away with (no request-scoped cancellation to thread
// through).
type mailboxAdapter struct {
	ctx context.Context
	msg *store.OpenedMessage
}

func (m *mailboxAdapter) ReadOnly() bool { return m.msg.ReadOnly }
func (m *mailboxAdapter) IsPOP() bool    { return m.msg.Backend == store.BackendPOP }
func (m *mailboxAdapter) IsNNTP() bool   { return m.msg.Backend == store.BackendNNTP }
func (m *mailboxAdapter) Close() error   { return m.msg.Close(m.ctx) }
func (m *mailboxAdapter) MarkChanged(attachDel bool) error {
	return m.msg.MarkChanged(m.ctx, attachDel)
}
