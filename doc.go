// Package arbor is a small retained-mode widget toolkit for [Ebitengine],
// built to host synchronized tree views.
//
// The root package provides the widget tree, a stack layout, mouse input,
// icons loaded through an asset cache, TrueType text and tweens. The
// [github.com/phanxgames/arbor/treeview] package keeps a tree of widgets in
// step with an application's item hierarchy.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := arbor.NewScene()
//	// ... add widgets ...
//	arbor.Run(scene, arbor.RunConfig{
//		Title: "Outline", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly:
//
//	type Game struct{ scene *arbor.Scene }
//
//	func (g *Game) Update() error         { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) {
//		g.scene.SetViewport(float64(w), float64(h))
//		return w, h
//	}
//
// # Widgets
//
// Every visual element is a [Widget]. Widgets form a tree rooted at
// [Scene.Root]. There are three kinds, created with [NewBox], [NewImage]
// and [NewText]. Boxes stack their children along [Style.Direction];
// images are sized to their [IconSize]; text is sized to its measured
// extent.
//
//	panel := arbor.NewBox("panel", arbor.Style{Width: arbor.Px(200)})
//	scene.Root().AddChild(panel)
//
// Padding and gap accept pixel values only. Any other unit panics during
// layout.
//
// # Input
//
// Interactable widgets track an [Interaction] state (none, hovered,
// pressed) and fire per-widget and scene-level callbacks. Use
// [Scene.InjectClick] and friends to drive input from tests or scripts.
// Set an [EntityStore] to forward events into an ECS world; the
// arbor/ecs package provides a [Donburi] adapter.
//
// # Icons
//
// [NamedIcon] resolves icons/<name>.<W>x<H>.png through [Assets], with an
// @2x variant on high-density displays. Missing files degrade to a
// placeholder image and a logged warning.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package arbor
