// Package rtmidi opens hardware or virtual MIDI outputs through rtmididrv.
package rtmidi

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	game_log "github.com/ingyamilmolinar/swirl/internal/log"
)

// Port is an open MIDI output.
type Port struct {
	drv  *rtmididrv.Driver
	out  drivers.Out
	send func(midi.Message) error
}

// List returns the names of all MIDI outputs.
func List() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmidi driver: %w", err)
	}
	defer drv.Close()
	outs, err := drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("list MIDI outputs: %w", err)
	}
	names := make([]string, len(outs))
	for i, o := range outs {
		names[i] = o.String()
	}
	return names, nil
}

// Open opens the first output whose name contains name (case-insensitive).
func Open(name string, logger *game_log.Logger) (*Port, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmidi driver: %w", err)
	}
	outs, err := drv.Outs()
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("list MIDI outputs: %w", err)
	}
	var found drivers.Out
	for _, o := range outs {
		if strings.Contains(strings.ToLower(o.String()), strings.ToLower(name)) {
			found = o
			break
		}
	}
	if found == nil {
		drv.Close()
		return nil, fmt.Errorf("MIDI output %q not found", name)
	}
	send, err := midi.SendTo(found)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("open MIDI output %q: %w", found.String(), err)
	}
	logger.With("MIDI").Infof("output connected: %s", found.String())
	return &Port{drv: drv, out: found, send: send}, nil
}

// Send writes one message.
func (p *Port) Send(m midi.Message) error { return p.send(m) }

func (p *Port) Name() string { return p.out.String() }

func (p *Port) Close() error {
	if err := p.out.Close(); err != nil {
		p.drv.Close()
		return err
	}
	return p.drv.Close()
}
