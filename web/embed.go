// Package web bundles the dashboard templates and assets into the binary.
package web

import "embed"

// TemplatesFS holds the dashboard, the edit page and their shared form fields.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

//go:embed static/*
var StaticFS embed.FS
