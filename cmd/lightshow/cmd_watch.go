package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/lightshow"
	"github.com/gogpu/lightshow/channel"
	"github.com/gogpu/lightshow/config"
	"github.com/gogpu/lightshow/curve"
	"github.com/gogpu/lightshow/internal/pattern"
	"github.com/gogpu/lightshow/preview/terminal"
)

var watchFlags struct {
	show    string
	fps     int
	pattern string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Play a test pattern live in the terminal",
	Long: "watch runs a test pattern through the show's pipeline and previews it\n" +
		"in the terminal. Press c to toggle between the show's curves and linear\n" +
		"dimming, q or Esc to quit.",
	Example: `  lightshow watch --show show.toml --fps 30 --pattern rainbow`,
	RunE:    runWatchCmd,
}

func init() {
	f := watchCmd.Flags()
	f.StringVar(&watchFlags.show, "show", "", "show file (.toml, .yaml)")
	f.IntVar(&watchFlags.fps, "fps", 30, "frames per second")
	f.StringVar(&watchFlags.pattern, "pattern", "chase", "test pattern (chase, rainbow, fade)")

	_ = watchCmd.MarkFlagRequired("show")
}

func runWatchCmd(cmd *cobra.Command, _ []string) error {
	rig, err := loadRig(watchFlags.show)
	if err != nil {
		return err
	}
	p, err := producer(rig, watchFlags.pattern)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	// Log lines would tear the screen.
	prev := lightshow.Logger()
	lightshow.SetLogger(nil)
	defer lightshow.SetLogger(prev)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()
	return watch(ctx, screen, rig, p, watchFlags.fps)
}

// watcher holds the state shared by the watch goroutines.
type watcher struct {
	screen  tcell.Screen
	surface *terminal.Surface
	rig     *config.Rig
	linear  atomic.Bool
	frame   atomic.Int64
}

// watch plays p on screen until ctx ends or the user quits. It takes
// ownership of screen and finalizes it before returning.
//
// The ticker goroutine is the pipeline's only writer. The redraw goroutine
// reads nothing but the color table.
func watch(ctx context.Context, screen tcell.Screen, rig *config.Rig, p pattern.Producer, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	w := &watcher{
		screen:  screen,
		surface: terminal.New(screen, terminal.WithCellSize(1, 2), terminal.WithOrigin(1, 1)),
		rig:     rig,
	}

	ctx, quit := context.WithCancel(ctx)
	defer quit()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		// Unblocks PollEvent.
		screen.Fini()
		return nil
	})
	g.Go(func() error {
		w.events(quit)
		return nil
	})
	g.Go(func() error {
		t := time.NewTicker(interval)
		defer t.Stop()
		for n := 0; ; n++ {
			rig.Pipeline.Tick(p.Frame(n))
			w.frame.Store(int64(n))
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
			}
		}
	})
	g.Go(func() error {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				w.redraw()
			}
		}
	})
	return g.Wait()
}

// events handles keys until the screen is finalized or the user quits.
func (w *watcher) events(quit context.CancelFunc) {
	for {
		ev := w.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC,
				ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				quit()
				return
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'c':
				w.toggleCurves()
			}
		case *tcell.EventResize:
			w.screen.Sync()
		}
	}
}

// toggleCurves switches every channel between its configured curve and
// linear dimming. Outputs pick the change up on their next frame.
func (w *watcher) toggleCurves() {
	linear := !w.linear.Load()
	for _, c := range w.rig.Show.Channels {
		cv := curve.Linear()
		if !linear {
			var err error
			if cv, err = w.rig.Show.Curve(c.Curve); err != nil {
				continue
			}
		}
		_ = w.rig.SetCurve(c.Name, cv)
	}
	w.linear.Store(linear)
}

func (w *watcher) redraw() {
	w.surface.Clear()
	table := w.rig.Pipeline.Table()
	labeled := make(map[channel.ID]bool)
	label := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, px := range w.rig.Pixels {
		px.Redraw(w.surface, false, table)
		if !labeled[px.NodeID()] {
			labeled[px.NodeID()] = true
			b := px.Bounds()
			w.surface.Label(image.Pt(b.Min.X, b.Max.Y+1), px.Node().Name, label)
		}
	}

	mode := "show"
	if w.linear.Load() {
		mode = "linear"
	}
	status := fmt.Sprintf(" frame %d  curves: %s  [c] toggle  [q] quit", w.frame.Load(), mode)
	_, h := w.screen.Size()
	for i, r := range status {
		w.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	w.surface.Show()
}
