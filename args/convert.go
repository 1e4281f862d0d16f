package args

import (
	"encoding"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

var (
	durationType   = reflect.TypeOf(time.Duration(0))
	errEmptyNumber = errors.New("empty value")
)

// Converter turns a raw argument or environment value into a typed value.
type Converter[T any] func(raw string) (T, error)

// Identity returns the raw string unchanged.
func Identity(raw string) (string, error) {
	return raw, nil
}

// As builds a Converter backed by mapstructure weak decoding. The default hook set
// handles time.Duration, base-10 numbers and encoding.TextUnmarshaler targets; extra
// hooks run after it.
func As[T any](hooks ...mapstructure.DecodeHookFunc) Converter[T] {
	composed := append(DefaultDecodeHooks(), hooks...)
	return func(raw string) (T, error) {
		var out T
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &out,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(composed...),
		})
		if err != nil {
			return out, err
		}
		if err := decoder.Decode(raw); err != nil {
			var zero T
			return zero, err
		}
		return out, nil
	}
}

// Int converts base-10 integers.
func Int() Converter[int] { return As[int]() }

// Float converts decimal floating point numbers.
func Float() Converter[float64] { return As[float64]() }

// Duration converts strings such as "5s" or "1h30m".
func Duration() Converter[time.Duration] { return As[time.Duration]() }

// Bool accepts 1/t/true/y/yes/on and 0/f/false/n/no/off, case-insensitively.
func Bool() Converter[bool] { return parseBoolString }

// DefaultDecodeHooks returns the hooks every As converter starts with.
func DefaultDecodeHooks() []mapstructure.DecodeHookFunc {
	return []mapstructure.DecodeHookFunc{
		DurationHook(),
		NumberHook(),
		TextUnmarshalerHook(),
	}
}

// DurationHook converts strings (e.g., "5s") into time.Duration.
func DurationHook() mapstructure.DecodeHookFunc {
	return mapstructure.StringToTimeDurationHookFunc()
}

// NumberHook parses strings into integer, unsigned and float targets in base 10.
// Empty input is an error instead of zero, and prefixes such as 0x are rejected.
func NumberHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to == durationType {
			return data, nil
		}
		raw := reflect.ValueOf(data).String()
		out := reflect.New(to).Elem()
		switch to.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if raw == "" {
				return nil, errEmptyNumber
			}
			n, err := strconv.ParseInt(raw, 10, to.Bits())
			if err != nil {
				return nil, err
			}
			out.SetInt(n)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if raw == "" {
				return nil, errEmptyNumber
			}
			n, err := strconv.ParseUint(raw, 10, to.Bits())
			if err != nil {
				return nil, err
			}
			out.SetUint(n)
		case reflect.Float32, reflect.Float64:
			if raw == "" {
				return nil, errEmptyNumber
			}
			if strings.ContainsAny(raw, "xX") {
				return nil, &strconv.NumError{Func: "ParseFloat", Num: raw, Err: strconv.ErrSyntax}
			}
			f, err := strconv.ParseFloat(raw, to.Bits())
			if err != nil {
				return nil, err
			}
			out.SetFloat(f)
		default:
			return data, nil
		}
		return out.Interface(), nil
	}
}

// TextUnmarshalerHook decodes strings into encoding.TextUnmarshaler targets.
func TextUnmarshalerHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() == reflect.String {
			return data, nil
		}
		result := reflect.New(to)
		unmarshaller, ok := result.Interface().(encoding.TextUnmarshaler)
		if !ok {
			return data, nil
		}
		if err := unmarshaller.UnmarshalText([]byte(reflect.ValueOf(data).String())); err != nil {
			return nil, err
		}
		return result.Elem().Interface(), nil
	}
}

func parseBoolString(val string) (bool, error) {
	val = strings.TrimSpace(strings.ToLower(val))
	switch val {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return strconv.ParseBool(val)
	}
}
