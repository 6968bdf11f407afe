//go:build fyne

package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/pitch"
)

// RunFynePanel launches a control window implemented with Fyne. Every widget
// posts commands to the game loop; nothing here touches the engine directly.
func RunFynePanel(g *Game) {
	params := g.eng.Params()
	voices := g.eng.Voices()
	go func() {
		a := app.New()
		w := a.NewWindow("Controls")

		bpmEntry := widget.NewEntry()
		bpmEntry.SetText(strconv.Itoa(int(params.BPM)))
		bpmEntry.OnSubmitted = func(s string) {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				g.Post(engine.Command{Kind: engine.CmdSetBPM, Value: v})
			}
		}

		roots := []string{"C", "D", "E", "F", "G", "A", "B"}
		rootSelect := widget.NewSelect(roots, func(s string) {
			if m, ok := pitch.Roots[rune(s[0])]; ok {
				g.Post(engine.Command{Kind: engine.CmdSetRoot, Value: float64(m)})
			}
		})

		modes := []string{"pentatonic"}
		for _, m := range pitch.Modes {
			modes = append(modes, m.Name)
		}
		modeSelect := widget.NewSelect(modes, func(s string) {
			if sc, ok := pitch.ScaleByName(s); ok {
				g.Post(engine.Command{Kind: engine.CmdSetScale, Scale: sc})
			}
		})
		modeSelect.SetSelected(pitch.ScaleName(params.Scale))

		pauseBtn := widget.NewButton("Play / Pause", func() {
			g.Post(engine.Command{Kind: engine.CmdTogglePause})
		})
		keyBtn := widget.NewButton("Random key", func() {
			g.Post(engine.Command{Kind: engine.CmdRandomKey})
		})
		reseedBtn := widget.NewButton("Reseed all", func() {
			g.Post(engine.Command{Kind: engine.CmdReseedAll})
		})

		rows := []fyne.CanvasObject{
			widget.NewLabel("BPM"), bpmEntry,
			widget.NewLabel("Root"), rootSelect,
			widget.NewLabel("Mode"), modeSelect,
			pauseBtn, keyBtn, reseedBtn,
		}
		for _, v := range voices {
			i := v.Index
			rows = append(rows, container.NewHBox(
				widget.NewLabel(fmt.Sprintf("%d %s", i, v.Waveform)),
				widget.NewCheck("mute", func(on bool) {
					g.Post(engine.Command{Kind: engine.CmdSetMuted, Voice: i, Muted: on})
				}),
				widget.NewButton("solo", func() {
					g.Post(engine.Command{Kind: engine.CmdToggleSolo, Voice: i})
				}),
				widget.NewButton("reseed", func() {
					g.Post(engine.Command{Kind: engine.CmdReseed, Voice: i})
				}),
			))
		}

		w.SetContent(container.NewVBox(rows...))
		w.ShowAndRun()
	}()
}
