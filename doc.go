// Package greenflag is a Scratch-style script runtime for [Ebitengine].
//
// Sprites are solid color boxes on a retained-mode scene graph. Scripts are
// plain Go functions attached to hats ("when green flag clicked", key press,
// sprite click, message received, clone start). Each running script is a
// cooperative thread: it runs until it yields, and the scheduler gives
// every live thread one turn per frame.
//
// # Quick start
//
//	cfg, _ := greenflag.LoadConfig("stage.toml")
//	rt, _ := greenflag.NewRuntime(cfg)
//
//	cat := rt.NewSprite("Cat", 40, 40, greenflag.Color{R: 1, G: 0.6, A: 1})
//	cat.WhenGreenFlagClicked(func(c *greenflag.ScriptContext) {
//		c.Forever(func() {
//			c.MoveSteps(4)
//			c.BounceIfOnEdge()
//		})
//	})
//
//	greenflag.Run(rt, greenflag.RunConfig{Title: "Cat", GreenFlag: true})
//
// For full control, implement [ebiten.Game] yourself and call
// [Runtime.Update] and [Scene.Draw] directly.
//
// # Coordinates
//
// Scripts work in logical coordinates: with [OriginCenter] the origin is the
// stage center and +y points up, as in Scratch. The scene graph works in UI
// coordinates: origin top-left, +y down. [LogicalToUI] and [UIToLogical]
// convert between them. Directions are Scratch degrees: 0 is up, 90 is
// right, and values are kept in (-180, 180].
//
// # Threads
//
// Every started script is registered in the runtime's [ThreadRegistry]
// under the owner ID of the actor running it. Stop blocks, green flag, and
// clone deletion stop threads through the registry. A stopped thread
// unwinds at its next suspension point; only its deferred calls run.
//
// Blocks take their actor and thread from the [ScriptContext] handed to the
// script, never from global state. A block with no sprite to act on, such
// as a motion block in a stage script, logs "unresolved owner" and does
// nothing.
//
// # Configuration and logging
//
// [LoadConfig] reads defaults, then a TOML file, then GREENFLAG_*
// environment variables. Logging uses [zerolog].
//
// Runtime events can be mirrored into a [Donburi] world with the adapter in
// greenflag/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [zerolog]: https://github.com/rs/zerolog
// [Donburi]: https://github.com/yohamta/donburi
package greenflag
