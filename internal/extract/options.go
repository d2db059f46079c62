package extract

import "go.uber.org/zap"

const (
	// DefaultTypeAttribute names the attribute carrying the field type.
	DefaultTypeAttribute = "fdtType"
	// DefaultNameAttribute names the attribute carrying the field label.
	DefaultNameAttribute = "fdtFieldName"
)

const (
	idAttribute = "id"
	rectTag     = "rect"
	textTag     = "text"
)

// Options configures an Extractor.
type Options struct {
	TypeAttribute string
	NameAttribute string
	Logger        *zap.Logger
}

func defaultOptions() Options {
	return Options{
		TypeAttribute: DefaultTypeAttribute,
		NameAttribute: DefaultNameAttribute,
		Logger:        zap.NewNop(),
	}
}
