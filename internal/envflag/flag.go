// Package envflag populates a struct of flags from a comma-separated
// list held in an environment variable, such as
//
//	PRIMSET_DEBUG=checkinvariants,logresize
package envflag

import (
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalid indicates a malformed flag value.
var ErrInvalid = errors.New("invalid flag value")

// Init calls Parse with the contents of the named environment variable.
func Init[T any](flags *T, envVar string) error {
	if err := Parse(flags, os.Getenv(envVar)); err != nil {
		return errors.Wrapf(err, "cannot parse %s", envVar)
	}
	return nil
}

// Parse sets the fields of flags from env, a comma-separated list of
// name or name=value elements. Field names are matched case-insensitively.
// A bare name sets a boolean field to true. Bool and int fields are
// supported; a field tagged `envflag:"default:X"` starts out with value X.
//
// All elements are processed even when some are in error; the returned
// error combines every failure.
func Parse[T any](flags *T, env string) error {
	fv := reflect.ValueOf(flags).Elem()
	ft := fv.Type()
	index := make(map[string]int, ft.NumField())
	for i := range ft.NumField() {
		field := ft.Field(i)
		name := strings.ToLower(field.Name)
		index[name] = i
		tag, ok := field.Tag.Lookup("envflag")
		if !ok {
			continue
		}
		def, ok := strings.CutPrefix(tag, "default:")
		if !ok {
			return errors.Newf("unknown envflag tag %q", tag)
		}
		val, err := parseValue(name, field.Type.Kind(), def)
		if err != nil {
			return err
		}
		fv.Field(i).Set(reflect.ValueOf(val))
	}

	var result error
	for _, elem := range strings.Split(env, ",") {
		if elem == "" {
			continue
		}
		name, str, hasValue := strings.Cut(elem, "=")
		i, ok := index[strings.ToLower(name)]
		if !ok {
			result = errors.CombineErrors(result, errors.Newf("unknown flag %q", elem))
			continue
		}
		field := fv.Field(i)
		var val any
		switch {
		case hasValue:
			v, err := parseValue(name, field.Kind(), str)
			if err != nil {
				result = errors.CombineErrors(result, err)
				continue
			}
			val = v
		case field.Kind() == reflect.Bool:
			val = true
		default:
			result = errors.CombineErrors(result, errors.Newf("value needed for %s flag %q", field.Kind(), name))
			continue
		}
		field.Set(reflect.ValueOf(val))
	}
	return result
}

func parseValue(name string, kind reflect.Kind, str string) (any, error) {
	var (
		val any
		err error
	)
	switch kind {
	case reflect.Bool:
		val, err = strconv.ParseBool(str)
	case reflect.Int:
		val, err = strconv.Atoi(str)
	default:
		return nil, errors.Wrapf(ErrInvalid, "unsupported kind %s", kind)
	}
	if err != nil {
		return nil, errors.Wrapf(ErrInvalid, "invalid %s value %q for %s", kind, str, name)
	}
	return val, nil
}
