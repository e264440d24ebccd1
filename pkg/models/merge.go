package models

import (
	"reflect"
	"time"

	"dario.cat/mergo"
)

// Merge overrides the fields of dst with the non-empty fields of src, so zero fields in src never
// clear dst. It suits token status updates; graph data bags use NodePatch and EdgePatch instead.
// A zero time.Time in src keeps the dst value.
func Merge(dst, src any) error {
	return mergo.Merge(dst, src, mergo.WithOverride, mergo.WithTransformers(timeTransformer{}))
}

type timeTransformer struct{}

func (timeTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ != reflect.TypeOf(time.Time{}) {
		return nil
	}

	return func(dst, src reflect.Value) error {
		if !dst.CanSet() {
			return nil
		}

		if value, ok := src.Interface().(time.Time); ok && !value.IsZero() {
			dst.Set(src)
		}

		return nil
	}
}
