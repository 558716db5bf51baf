// Command tableinspector runs a toy multi-archetype simulation against the
// real table core and renders it live through a Dear ImGui overlay, driven
// by an Ebiten game loop. Grounded on the teacher's
// ecs/debugui/ebiten/example_test.go Game/backend wiring.
package main

import (
	"log"
	"math/rand"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/archtable/component"
	"github.com/plus3/archtable/entityindex"
	"github.com/plus3/archtable/notify"
	"github.com/plus3/archtable/table"
	"github.com/plus3/archtable/tableview"
	"github.com/plus3/archtable/world"
)

// Component ids for the toy simulation. Positions and Velocities are
// data-bearing; Marked is a tag.
const (
	idPosition table.EntityId = 10
	idVelocity table.EntityId = 11
	idMarked   table.EntityId = 12
)

// Game implements ebiten.Game, advancing the simulation and rendering the
// table viewer every frame.
type Game struct {
	reg          *world.Registry
	viewer       *tableview.TableViewer
	imguiBackend *ebitenbackend.EbitenBackend
	nextEntity   table.EntityId
	tick         int
}

func newGame() *Game {
	registry := component.NewRegistry()
	registry.Register(idPosition, 8) // two float32s
	registry.Register(idVelocity, 8)
	registry.RegisterTag(idMarked)

	reg := world.New(registry, notify.NewLog(), entityindex.New(1024))

	return &Game{
		reg:        reg,
		viewer:     tableview.New(reg),
		nextEntity: 1,
	}
}

func (g *Game) spawn(typ table.Type) {
	entity := g.nextEntity
	g.nextEntity++

	if _, _, _, err := g.reg.Spawn(typ, entity); err != nil {
		log.Printf("spawn failed: %v", err)
	}
}

func (g *Game) Update() error {
	g.imguiBackend.BeginFrame()

	g.tick++
	switch {
	case g.tick%30 == 0:
		g.spawn(table.Type{idPosition, idVelocity})
	case g.tick%17 == 0:
		g.spawn(table.Type{idPosition, idVelocity, idMarked})
	}

	// Occasionally promote the plain-moving archetype into the marked one,
	// exercising Table.Merge end to end.
	if g.tick%97 == 0 {
		if err := g.reg.Merge(table.Type{idPosition, idVelocity, idMarked}, table.Type{idPosition, idVelocity}); err != nil {
			log.Printf("merge failed: %v", err)
		}
	}

	if clicked := g.viewer.Render(); clicked != "" {
		imgui.SetTooltip(clicked)
	}

	g.imguiBackend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.imguiBackend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("Table Inspector", 1280, 720)
	imgui.CurrentIO().SetIniFilename("")

	game := newGame()
	game.imguiBackend = backend

	// Seed a little initial population so the viewer has something to show
	// from frame one.
	for i := 0; i < 64; i++ {
		if rand.Intn(2) == 0 {
			game.spawn(table.Type{idPosition, idVelocity})
		} else {
			game.spawn(table.Type{idPosition, idVelocity, idMarked})
		}
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
