package quotecard

import (
	"io/fs"

	"github.com/goliatone/go-quotecard/pkg/render"
)

// TemplatesFS exposes the built-in card templates so callers can reuse or
// extend them with their own template engine.
func TemplatesFS() fs.FS {
	return render.TemplatesFS()
}

// AssetsFS exposes the card stylesheet so Go applications can serve it.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(quotecard.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return render.AssetsFS()
}
