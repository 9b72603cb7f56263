// Boughdemo animates a small transform hierarchy: a spinning hub with
// orbiting arms that each inherit a different subset of channels. Pass --config
// to load a YAML config; edits to the file are applied while running.
package main

import (
	"image/color"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/bough"
	"github.com/phanxgames/bough/ecs"
	"github.com/phanxgames/bough/view"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/tanema/gween/ease"

	"github.com/yohamta/donburi"
)

const (
	screenW = 640
	screenH = 480
)

type game struct {
	updates  *bough.UpdateManager
	bridge   *ecs.Bridge
	world    donburi.World
	renderer *view.Renderer
	watcher  *bough.ConfigWatcher
	log      zerolog.Logger
}

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML config file")
	debug := pflag.Bool("debug", false, "log per-frame stats")
	arms := pflag.IntP("arms", "n", 4, "number of orbiting arms")
	pflag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := bough.DefaultConfig()
	if *configPath != "" {
		loaded, err := bough.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
		cfg = loaded
	}
	if *debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}

	transforms := bough.NewTransformManagerFromConfig(cfg, log)
	updates := bough.NewUpdateManager(transforms, bough.WithUpdateLogger(cfg.Logger(log)), bough.WithDebugStats(cfg.Debug))
	world := donburi.NewWorld()
	bridge := ecs.NewBridge(world, transforms)
	updates.AddObserver(bridge)

	g := &game{
		updates:  updates,
		bridge:   bridge,
		world:    world,
		renderer: view.NewRenderer(view.Rect{Width: screenW, Height: screenH}),
		log:      log,
	}
	g.renderer.Tint = g.tint
	ecs.FrameChangedEvent.Subscribe(world, func(_ donburi.World, e ecs.FrameChanged) {
		if e.Frame%600 == 0 {
			log.Debug().Uint64("frame", e.Frame).Bool("changed", e.Changed).Int("drawn", g.renderer.Drawn()).Msg("frame")
		}
	})
	g.build(*arms)

	if *configPath != "" {
		w, err := bough.WatchConfig(*configPath)
		if err != nil {
			log.Warn().Err(err).Msg("config hot reload disabled")
		} else {
			g.watcher = w
			defer w.Close()
		}
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("bough demo")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}

func (g *game) build(arms int) {
	tm := g.updates.Transforms()
	i := g.updates.Buffers().UpdateIndex()

	hub := g.bridge.Create()
	hubID := g.bridge.ID(hub)
	tm.BakeVector3(hubID, bough.PropertyPosition, i, mgl32.Vec3{screenW / 2, screenH / 2, 0})
	tm.BakeVector3(hubID, bough.PropertySize, i, mgl32.Vec3{40, 40, 0})

	spin := bough.NewAnimation(6).SetLoopCount(0)
	spin.Animate(bough.NewAnimator[mgl32.Quat](
		bough.NewOrientationProperty(tm, hubID),
		bough.AnimateByAngleAxis(2*math.Pi, mgl32.Vec3{0, 0, 1}),
		nil,
	))
	g.updates.Play(spin)

	modes := []bough.InheritanceMode{
		bough.InheritAll,
		bough.InheritPosition,
		bough.InheritPosition | bough.InheritOrientation,
		bough.InheritPosition | bough.InheritScale,
	}
	for k := 0; k < arms; k++ {
		arm := g.bridge.Create()
		g.bridge.SetParent(arm, hub)
		id := g.bridge.ID(arm)
		angle := float64(k) * 2 * math.Pi / float64(arms)
		tm.BakeVector3(id, bough.PropertyParentOrigin, i, bough.ParentOriginCenter)
		tm.BakeVector3(id, bough.PropertyPosition, i, mgl32.Vec3{
			float32(120 * math.Cos(angle)), float32(120 * math.Sin(angle)), 0,
		})
		tm.BakeVector3(id, bough.PropertySize, i, mgl32.Vec3{24, 24, 0})
		tm.SetInheritanceMode(id, modes[k%len(modes)])

		pulse := bough.NewAnimation(1.2).SetLoopCount(0).SetAutoReverse(true)
		pulse.Animate(bough.NewAnimator[mgl32.Vec3](
			bough.NewVector3Property(tm, id, bough.PropertyScale),
			bough.AnimateToVec3(mgl32.Vec3{1.8, 1.8, 1}),
			bough.Ease(ease.InOutSine),
		))
		g.updates.Play(pulse)
	}
}

func (g *game) tint(id bough.TransformID) color.Color {
	_, level := g.updates.Transforms().Placement(id)
	if level == 0 {
		return color.RGBA{0xe0, 0xc0, 0x40, 0xff}
	}
	switch g.updates.Transforms().InheritanceMode(id) {
	case bough.InheritAll:
		return color.RGBA{0x40, 0xc0, 0x80, 0xff}
	case bough.InheritPosition:
		return color.RGBA{0x40, 0x80, 0xe0, 0xff}
	default:
		return color.RGBA{0xc0, 0x60, 0xc0, 0xff}
	}
}

func (g *game) Update() error {
	g.pollConfig()
	g.updates.Update(1.0 / float32(ebiten.TPS()))
	ecs.FrameChangedEvent.ProcessEvents(g.world)
	return nil
}

func (g *game) pollConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-g.watcher.Configs:
		if ok {
			cfg.Apply(g.updates)
			g.log.Info().Bool("debug", cfg.Debug).Str("level", cfg.LogLevel).Msg("config reloaded")
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.Warn().Err(err).Msg("config reload failed")
		}
	default:
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x18, 0x18, 0x20, 0xff})
	g.renderer.Draw(screen, g.updates.Transforms(), g.updates.Buffers().EventIndex())
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}
