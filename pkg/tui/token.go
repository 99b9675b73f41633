package tui

import "context"

// Token is a cancellation signal shared between the controller and the
// poller. Copies of a Token observe the same signal.
type Token struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewToken creates an untriggered token
func NewToken() Token {
	ctx, cancel := context.WithCancel(context.Background())
	return Token{ctx: ctx, cancel: cancel}
}

// Cancel flags the token. Calling it more than once has no further effect.
func (t Token) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}

// Done returns a channel that is closed once the token is cancelled.
// A zero Token never fires.
func (t Token) Done() <-chan struct{} {
	if t.ctx == nil {
		return nil
	}
	return t.ctx.Done()
}

// Cancelled reports whether Cancel has been called
func (t Token) Cancelled() bool {
	return t.ctx != nil && t.ctx.Err() != nil
}
