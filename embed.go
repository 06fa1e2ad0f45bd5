package techreader

import "embed"

// StaticAssets holds the stylesheet, script and icon served under /public/.
//
//go:embed static/*
var StaticAssets embed.FS
