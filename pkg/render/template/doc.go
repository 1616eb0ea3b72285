// Package template defines the template engine seam used by the card and
// page renderers. The gotemplate subpackage provides the pongo2-backed
// implementation.
package template
