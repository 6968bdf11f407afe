//go:build !test

package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// otoOutput drives the mixer from an oto player.
type otoOutput struct {
	ctx    *oto.Context
	player *oto.Player
}

// The oto context can only be created once per process.
var otoCtx *oto.Context

func openOutput(m *mixer) (device, error) {
	if otoCtx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return nil, fmt.Errorf("oto context: %w", err)
		}
		<-ready
		otoCtx = ctx
	}
	if err := otoCtx.Err(); err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	p := otoCtx.NewPlayer(m)
	p.SetBufferSize(bufferSizeBytes10ms)
	p.Play()
	return &otoOutput{ctx: otoCtx, player: p}, nil
}

func (o *otoOutput) Close() error {
	o.player.Pause()
	return o.player.Close()
}
