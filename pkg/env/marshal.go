// Package env renders configuration structs back into dotenv text.
package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Collect maps the `env` tag of every exported field in cs to the field's
// current value. Zero values are kept so the result lists every setting.
// Nested structs without an env tag are walked, honoring envPrefix.
func Collect(cs ...any) (map[string]string, error) {
	values := make(map[string]string)
	for _, c := range cs {
		v := reflect.Indirect(reflect.ValueOf(c))
		if v.Kind() != reflect.Struct {
			return nil, fmt.Errorf("expected struct, got %T", c)
		}
		collect(v, "", values)
	}
	return values, nil
}

func collect(v reflect.Value, prefix string, values map[string]string) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" {
			if field.Type.Kind() == reflect.Struct {
				collect(v.Field(i), prefix+field.Tag.Get("envPrefix"), values)
			}
			continue
		}

		values[prefix+key] = formatValue(v.Field(i))
	}
}

// MarshalEnv renders cs as sorted dotenv lines.
func MarshalEnv(cs ...any) (string, error) {
	values, err := Collect(cs...)
	if err != nil {
		return "", err
	}

	out, err := godotenv.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to marshal env: %w", err)
	}
	if out != "" {
		out += "\n"
	}
	return out, nil
}

func formatValue(v reflect.Value) string {
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
