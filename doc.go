// Package canopy is the view-state engine behind an interactive 3D viewer.
//
// It tracks, for every node of a scene graph, whether the node is visible,
// selected, outlined, tinted, or has an opacity override, and keeps private
// material clones and selection boxes consistent with those overlapping,
// hierarchically inherited states as the user interacts with the scene.
// Rendering is left to the host: canopy reads and writes only the
// [Node.Visible] and [Node.Material] fields, and exposes materials in the
// form an [Ebitengine] renderer submits them ([Material.ColorScale],
// [Material.Blend]).
//
// # Quick start
//
//	scene := canopy.NewScene()
//	body := canopy.NewMeshNode("body", canopy.NewMaterial("steel", canopy.ColorWhite), bounds)
//	scene.Insert(scene.Root(), body)
//
//	vsm := canopy.New(canopy.DefaultOptions())
//	vsm.AttachScene(scene)
//	vsm.OnSelectionChanged(func(e canopy.SelectionChangedEvent) { ... })
//
//	vsm.SetSelectionState([]*canopy.Node{body}, true, false, false)
//	vsm.SetOpacity([]*canopy.Node{body}, 0.5, true)
//
//	vsm.ApplyNodeStates()  // before drawing
//	// ... draw scene.Root() and vsm.Overlay().Root() ...
//	vsm.RevertNodeStates() // after drawing
//
// # State model
//
// State is sparse: a [NodeState] record exists only for nodes that deviate
// from their defaults, and records are pruned as soon as they carry nothing.
// Selection and tint propagate to descendants as explicit inherited flags;
// world opacity is recomputed on demand as the product of the effective
// opacities along the path to the root.
//
// # Threading
//
// A ViewStateManager is single-threaded. Every operation, including its
// change notification, completes before returning. Bulk setters compute the
// whole diff first and fire exactly one notification per call.
//
// [Ebitengine]: https://ebitengine.org
package canopy
