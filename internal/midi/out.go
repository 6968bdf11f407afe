// Package midi mirrors engine notes onto a MIDI output, one channel per voice.
package midi

import (
	"container/heap"
	"math"

	"gitlab.com/gomidi/midi/v2"

	"github.com/ingyamilmolinar/swirl/core/model"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
	"github.com/ingyamilmolinar/swirl/internal/utils"
)

// Sender writes one message to a port, e.g. the func returned by midi.SendTo.
type Sender func(midi.Message) error

type msgKind int

const (
	noteOn msgKind = iota
	noteOff
)

type pending struct {
	at       float64
	seq      uint64
	kind     msgKind
	ch, key  uint8
	velocity uint8
}

// queue orders pending messages by time, then by insertion.
type queue []pending

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)   { *q = append(*q, x.(pending)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

type noteKey struct{ ch, key uint8 }

// Out schedules note on/off pairs and sends them as the clock passes them.
// Overlapping notes on the same key are reference counted so an early
// note-off never cuts a later note.
type Out struct {
	send    Sender
	q       queue
	seq     uint64
	held    map[noteKey]int
	logger  *game_log.Logger
	sent    int
	lastErr error
}

func NewOut(send Sender, logger *game_log.Logger) *Out {
	return &Out{send: send, held: map[noteKey]int{}, logger: logger.With("MIDI")}
}

// Channel maps a voice to its MIDI channel.
func Channel(voice int) uint8 {
	if voice < 0 {
		voice = -voice
	}
	return uint8(voice % 16)
}

// Key converts a fractional MIDI pitch to the nearest valid key.
func Key(m float64) uint8 {
	return uint8(utils.Clamp(math.Round(m), 0, 127))
}

// Velocity maps [0,1] to 1..127; zero would read as a note-off.
func Velocity(v float64) uint8 {
	return uint8(utils.Clamp(math.Round(v*127), 1, 127))
}

func (o *Out) push(p pending) {
	o.seq++
	p.seq = o.seq
	heap.Push(&o.q, p)
}

// Schedule queues ev's note-on at its start and note-off at its end.
func (o *Out) Schedule(ev model.NoteEvent) {
	if ev.Duration <= 0 {
		return
	}
	ch, key := Channel(ev.Voice), Key(ev.Midi)
	o.push(pending{at: ev.Start, kind: noteOn, ch: ch, key: key, velocity: Velocity(ev.Velocity)})
	o.push(pending{at: ev.Start + ev.Duration, kind: noteOff, ch: ch, key: key})
}

// Frame schedules the frame's notes and sends everything due by now.
func (o *Out) Frame(events []model.NoteEvent, now float64) error {
	for _, ev := range events {
		o.Schedule(ev)
	}
	return o.Flush(now)
}

// Flush sends every queued message due at or before now. Send errors are
// logged once and the first one is returned; later messages are still tried.
func (o *Out) Flush(now float64) error {
	var first error
	for o.q.Len() > 0 && o.q[0].at <= now {
		p := heap.Pop(&o.q).(pending)
		if err := o.emit(p); err != nil && first == nil {
			first = err
		}
	}
	if first != nil && o.lastErr == nil {
		o.logger.Warnf("send failed: %v", first)
	}
	o.lastErr = first
	return first
}

func (o *Out) emit(p pending) error {
	k := noteKey{p.ch, p.key}
	switch p.kind {
	case noteOn:
		o.held[k]++
		o.sent++
		return o.send(midi.NoteOn(p.ch, p.key, p.velocity))
	default:
		if o.held[k] == 0 {
			return nil
		}
		o.held[k]--
		if o.held[k] > 0 {
			return nil
		}
		delete(o.held, k)
		o.sent++
		return o.send(midi.NoteOff(p.ch, p.key))
	}
}

// AllOff drops the queue and releases every held key.
func (o *Out) AllOff() error {
	o.q = o.q[:0]
	var first error
	for k := range o.held {
		if err := o.send(midi.NoteOff(k.ch, k.key)); err != nil && first == nil {
			first = err
		}
		delete(o.held, k)
	}
	return first
}

// Pending is the number of queued messages.
func (o *Out) Pending() int { return o.q.Len() }

// Sent is the number of messages handed to the sender.
func (o *Out) Sent() int { return o.sent }
