// Package render defines the renderer contract shared by the HTML and
// terminal front-ends: the Renderer interface and registry, per-field box
// layout, and the focus registry that drives box-to-box navigation.
package render
