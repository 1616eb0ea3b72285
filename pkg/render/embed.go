package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/cards/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the file name of the card stylesheet in AssetsFS.
const StylesheetName = stylesheetName

// TemplatesFS exposes the embedded card templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// AssetsFS exposes the card stylesheet so surfaces can serve it.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// Stylesheet returns the card stylesheet contents.
func Stylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+stylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
