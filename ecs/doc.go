// Package ecs binds bough transforms to a [Donburi] world.
//
// A [Bridge] keeps entity parenting and the transform hierarchy in step:
// entities get a [Transform] component holding their TransformID, and the
// bridge mirrors SetParent and Destroy into the manager. Registered as a
// frame observer, it copies world matrices into the [WorldMatrix] component
// and publishes [FrameChangedEvent] after every frame.
//
// Usage:
//
//	bridge := ecs.NewBridge(world, updates.Transforms())
//	updates.AddObserver(bridge)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
