package sitepress

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// editor.js (block editor drag-and-drop glue)
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
