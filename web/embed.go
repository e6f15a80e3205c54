// Package web carries the embedded assets for the expense page.
package web

import "embed"

// TemplatesFS holds the page shell (index.html) and the per-day list
// partial (day_list.html).
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet and any other assets served under /static/.
//
//go:embed static/*
var StaticFS embed.FS
