// Package ecs connects arbor to a [Donburi] world.
//
// [NewDonburiStore] bridges arbor interaction events (pointer and click)
// into the world as typed events. Subscribe to [InteractionEventType] in your
// ECS systems to receive them:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Hierarchy] keeps parent/child relations between entities carrying one
// item component and records every structural edit in dirty sets. [Hierarchy.Drain]
// hands them to a tree view once per tick:
//
//	h := ecs.NewHierarchy[Item](world, itemComponent)
//	tv := treeview.New[donburi.Entity](panel, h, treeview.Config{})
//	// each tick
//	tv.Tick(h.Drain())
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
