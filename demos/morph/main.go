// morph renders the default spruce scene: a 4,000-particle foliage cloud and
// two ornament batches morphing between a scattered sphere and a tree cone.
// Press Space or click to toggle the target shape mid-flight.
package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/spruce"
)

const (
	screenW = 1280
	screenH = 720
)

type game struct {
	scene    *spruce.Scene
	renderer *spruce.Renderer
	intro    *gween.Tween
}

func newGame() *game {
	scene := spruce.DefaultSceneConfig().Build()
	renderer := spruce.NewRenderer()

	return &game{
		scene:    scene,
		renderer: renderer,
		// Camera glides in from afar while the cloud settles.
		intro: gween.New(48, float32(renderer.Distance), 2.5, ease.OutCubic),
	}
}

func (g *game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.scene.Toggle()
	}

	if g.intro != nil {
		dist, finished := g.intro.Update(float32(dt))
		g.renderer.Distance = float64(dist)
		if finished {
			g.intro = nil
		}
	}

	g.renderer.Yaw += 0.15 * dt
	g.scene.Update(dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scene)

	state := "scattered"
	if g.scene.Target() == spruce.TreeShape {
		state = "tree"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f\ntarget: %s (Space / click to toggle)", ebiten.ActualFPS(), state))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("spruce morph")
	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
