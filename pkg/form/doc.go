// Package form defines the typed field descriptors produced by the extractor
// and consumed by renderers. A Field is immutable after extraction except for
// SelectedOption, which renderers update through Field.Select in response to
// user action. Rect geometry is expressed in document units; labels are empty
// unless the extractor paired the rect with a text node.
package form
