package provider

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go/packages/ssestream"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/debug"
)

// StreamBuffer is the capacity of channels returned by Provider.Stream.
const StreamBuffer = 32

var doneSentinel = []byte("[DONE]")

// PumpOptions describes the call a pumped stream belongs to.
type PumpOptions struct {
	Model    string
	Warnings []api.CallWarning
	// Started is when the call began, for latency metrics. Zero means now.
	Started time.Time
}

// Pump reads the SSE stream in resp, feeds each data payload to t and sends
// the resulting events on ch, preceded by StreamStart. It returns after the
// terminal event, closing resp.Body and ch.
//
// The stream ends at a [DONE] sentinel, at EOF, or when t reports Done. A
// read failure or context cancellation aborts the transformer so open spans
// are still closed. After cancellation the closing events are delivered
// only if the channel has room.
func Pump(ctx context.Context, resp *http.Response, t StreamTransformer, opts PumpOptions, ch chan<- api.StreamEvent) {
	defer close(ch)
	defer resp.Body.Close()

	if opts.Started.IsZero() {
		opts.Started = time.Now()
	}
	p := &pump{ctx: ctx, ch: ch, protocol: t.Protocol(), model: opts.Model, started: opts.Started}

	if !p.send(api.StreamStart{Warnings: opts.Warnings}) {
		p.offer(t.Abort(ctx.Err()))
		return
	}

	dec := ssestream.NewDecoder(resp)
	defer dec.Close()

	for dec.Next() {
		data := bytes.TrimSpace(dec.Event().Data)
		if len(data) == 0 {
			continue
		}
		if bytes.Equal(data, doneSentinel) {
			break
		}
		debug.Trace("streaming", "chunk", "protocol", p.protocol, "event", dec.Event().Type, "data", string(data))

		if !p.send(t.Accept(data)...) {
			p.offer(t.Abort(ctx.Err()))
			return
		}
		if t.Done() {
			return
		}
	}

	switch {
	case ctx.Err() != nil:
		p.offer(t.Abort(ctx.Err()))
	case dec.Err() != nil:
		slog.Warn("stream read failed", "protocol", p.protocol, "error", dec.Err())
		p.send(t.Abort(MapNetworkError(dec.Err()))...)
	default:
		p.send(t.Flush()...)
	}
}

type pump struct {
	ctx      context.Context
	ch       chan<- api.StreamEvent
	protocol Protocol
	model    string
	started  time.Time
}

// send delivers events in order. It returns false if the context ended first.
func (p *pump) send(events ...api.StreamEvent) bool {
	for _, ev := range events {
		select {
		case p.ch <- ev:
			p.record(ev)
		case <-p.ctx.Done():
			return false
		}
	}
	return true
}

// offer delivers events without blocking, dropping those that do not fit.
func (p *pump) offer(events []api.StreamEvent) {
	for _, ev := range events {
		select {
		case p.ch <- ev:
			p.record(ev)
		default:
			debug.Log("streaming", "dropped closing event after cancellation", "type", ev.Type())
			if api.IsTerminal(ev) {
				p.recordTerminal(ev)
			}
		}
	}
}

func (p *pump) record(ev api.StreamEvent) {
	recordEvent(p.protocol, ev)
	if api.IsTerminal(ev) {
		p.recordTerminal(ev)
	}
}

func (p *pump) recordTerminal(ev api.StreamEvent) {
	switch e := ev.(type) {
	case api.Finish:
		RecordCall(p.protocol, p.model, p.started, &e.Usage, nil)
	case api.Error:
		RecordCall(p.protocol, p.model, p.started, nil, e.Err)
	}
}
