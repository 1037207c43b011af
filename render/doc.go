// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render turns footprint geometry into images.
//
// The geometry packages never draw. They produce point sequences, and this
// package collects those sequences into a Scene of styled layers that a
// Backend writes out in some file format.
//
// # Scenes
//
// A Scene is a list of layers plus an optional caption:
//
//	scene := render.NewScene(800, 600)
//	scene.Add(render.Layer{
//	    Name:     "spots",
//	    Style:    templates.Spot,
//	    Outlines: field.OutlinePoints(),
//	    Closed:   true,
//	})
//
// Layers are drawn in ascending Style.Z order; layers with equal Z keep the
// order in which they were added.
//
// # Backends
//
// Backends register themselves by name in init(), following the
// database/sql driver pattern:
//
//	import _ "github.com/gogpu/beamer/render/raster" // registers "png"
//	import _ "github.com/gogpu/beamer/render/svg"    // registers "svg"
//
//	b, err := render.NewBackend("png")
//	err = b.Render(scene, w)
//
// # Coordinates
//
// Scene coordinates use the sample convention with y pointing up. A
// Viewport maps them onto the pixel canvas with y pointing down, scaled
// uniformly so that the scene bounds fit inside the margin.
package render
