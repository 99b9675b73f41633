package tui

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"counter-terminal/pkg/event"
)

// QuitRequest is posted to the input source as interrupt data to make the
// poller publish a Quit event.
type QuitRequest struct{}

// poller translates raw input and timer ticks into events. It owns only a
// producer handle and a token; it never references the Tui.
type poller struct {
	src       InputSource
	tx        *event.Sender
	token     Token
	tickRate  float64
	frameRate float64
	logger    *slog.Logger

	// quit stops the input pump; closed once by run or abort
	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}

	pasting bool
	paste   strings.Builder
}

func startPoller(src InputSource, tx *event.Sender, token Token, tickRate, frameRate float64, logger *slog.Logger) *poller {
	p := &poller{
		src:       src,
		tx:        tx,
		token:     token,
		tickRate:  tickRate,
		frameRate: frameRate,
		logger:    logger,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	go p.run()
	return p
}

func (p *poller) run() {
	defer close(p.done)
	defer p.closeInput()
	defer recoverToGuard()

	input := make(chan tcell.Event)
	go p.src.ChannelEvents(input, p.quit)

	clock := newTimers(p.tickRate, p.frameRate)
	defer clock.stop()

	p.publish(event.Init())

	for {
		if p.token.Cancelled() {
			return
		}

		select {
		case <-p.token.Done():
			return

		case raw, ok := <-input:
			if !ok {
				p.logger.Debug("input stream closed")
				p.publish(event.Closed())
				// A nil channel is never ready, so only the timers remain
				input = nil
				continue
			}
			if ev, ok := p.translate(raw); ok {
				p.publish(ev)
			}

		case <-clock.tick.C:
			p.publish(event.Tick())

		case <-clock.render.C:
			p.publish(event.Render())
		}
	}
}

// publish sends ev unless the token has fired
func (p *poller) publish(ev event.Event) {
	if p.token.Cancelled() {
		return
	}
	p.tx.Send(ev)
}

// translate classifies one raw input item. ok is false for items that do
// not produce an event on their own.
func (p *poller) translate(raw tcell.Event) (ev event.Event, ok bool) {
	switch e := raw.(type) {
	case *EventKeyRelease:
		return event.Event{}, false

	case *tcell.EventKey:
		if p.pasting {
			p.appendPaste(e)
			return event.Event{}, false
		}
		return event.Key(e.Key(), e.Rune(), e.Modifiers(), event.KeyPress), true

	case *tcell.EventPaste:
		if e.Start() {
			p.pasting = true
			p.paste.Reset()
			return event.Event{}, false
		}
		if !p.pasting {
			return event.Event{}, false
		}
		p.pasting = false
		text := p.paste.String()
		p.paste.Reset()
		return event.Paste(text), true

	case *tcell.EventMouse:
		x, y := e.Position()
		return event.Mouse(e.Buttons(), x, y, e.Modifiers()), true

	case *tcell.EventResize:
		w, h := e.Size()
		return event.Resize(w, h), true

	case *tcell.EventFocus:
		if e.Focused {
			return event.FocusGained(), true
		}
		return event.FocusLost(), true

	case *tcell.EventError:
		return event.Error(e), true

	case *tcell.EventInterrupt:
		if _, quit := e.Data().(QuitRequest); quit {
			return event.Quit(), true
		}
	}

	return event.Event{}, false
}

func (p *poller) appendPaste(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		p.paste.WriteRune(e.Rune())
	case tcell.KeyEnter, tcell.KeyLF:
		p.paste.WriteByte('\n')
	case tcell.KeyTab:
		p.paste.WriteByte('\t')
	}
}

// abort stops the input pump and detaches the producer so a poller that
// ignored cancellation can no longer publish.
func (p *poller) abort() {
	p.tx.Revoke()
	p.closeInput()
}

func (p *poller) closeInput() {
	p.quitOnce.Do(func() { close(p.quit) })
}
