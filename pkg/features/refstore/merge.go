package refstore

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/vango-dev/refstore/internal/errors"
)

// Partial is a partial update of a state struct, keyed by the fields' JSON
// names or, failing that, their Go names. A nil value resets the field to
// its zero value.
type Partial map[string]any

// checkStateType returns E202 unless S is a struct type.
func checkStateType[S any]() error {
	if t := reflect.TypeOf((*S)(nil)).Elem(); t.Kind() != reflect.Struct {
		return errors.New("E202").WithDetail("got " + t.String())
	}
	return nil
}

// fieldIndexes caches reflect.Type -> map[string]int.
var fieldIndexes sync.Map

func fieldIndex(t reflect.Type) map[string]int {
	if cached, ok := fieldIndexes.Load(t); ok {
		return cached.(map[string]int)
	}

	idx := make(map[string]int, t.NumField()*2)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		idx[f.Name] = i
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			idx[name] = i
		}
	}

	actual, _ := fieldIndexes.LoadOrStore(t, idx)
	return actual.(map[string]int)
}

// Merge returns state with every field named in patch replaced by the
// patch value. Fields absent from patch keep their value; nested structs,
// maps and slices are replaced, not merged.
//
// On error state is returned unchanged.
func Merge[S any](state S, patch Partial) (S, error) {
	if err := checkStateType[S](); err != nil {
		return state, err
	}
	merged := state
	v := reflect.ValueOf(&merged).Elem()
	t := v.Type()
	idx := fieldIndex(t)

	for _, key := range patch.Keys() {
		i, ok := idx[key]
		if !ok {
			return state, errors.New("E203").
				WithDetail(fmt.Sprintf("field %q on %s", key, t.Name()))
		}
		field := v.Field(i)

		val := patch[key]
		if val == nil {
			field.Set(reflect.Zero(field.Type()))
			continue
		}

		rv := reflect.ValueOf(val)
		switch {
		case rv.Type().AssignableTo(field.Type()):
			field.Set(rv)
		case rv.Kind() == field.Kind() && rv.Type().ConvertibleTo(field.Type()):
			field.Set(rv.Convert(field.Type()))
		default:
			return state, errors.New("E204").
				WithDetail(fmt.Sprintf("field %q on %s wants %s, got %T", key, t.Name(), field.Type(), val))
		}
	}

	return merged, nil
}
