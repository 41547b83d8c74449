package binder

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindTagged walks the exported fields of the struct behind v, including
// embedded structs, and sets those carrying tag from lookup.
func bindTagged(v any, tag string, errKind error, lookup func(name string) []string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.Join(errKind, ErrInvalidTarget)
	}
	return bindStruct(rv.Elem(), tag, errKind, lookup)
}

func bindStruct(rv reflect.Value, tag string, errKind error, lookup func(string) []string) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		field := rv.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, ok := sf.Tag.Lookup(tag)
		if !ok {
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				if err := bindStruct(field, tag, errKind, lookup); err != nil {
					return err
				}
			}
			continue
		}
		name, _, _ = strings.Cut(name, ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		values := lookup(name)
		if len(values) == 0 {
			continue
		}
		if err := setValue(field, values[0]); err != nil {
			return fmt.Errorf("%w: %s: %v", errKind, name, err)
		}
	}
	return nil
}

func setValue(field reflect.Value, raw string) error {
	if field.Kind() == reflect.Pointer {
		ptr := reflect.New(field.Type().Elem())
		if err := setValue(ptr.Elem(), raw); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
