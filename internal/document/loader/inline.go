package loader

import (
	"context"
	"errors"

	"github.com/goliatone/go-xmlform/pkg/document"
)

type byteSource interface {
	Bytes() []byte
}

func loadInline(ctx context.Context, src document.Source) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inline, ok := src.(byteSource)
	if !ok {
		return nil, errors.New("document loader: inline source carries no payload")
	}
	return inline.Bytes(), nil
}
