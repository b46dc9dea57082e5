package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from a struct's db tags. Combined with an
// ON CONFLICT suffix it is the single upsert primitive used by every
// repository in this project.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", nil, fmt.Errorf("model cannot be nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("model must be a struct")
	}

	var (
		cols []string
		vals []any
	)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		col, ok := dbColumn(t.Field(i))
		if !ok {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, v.Field(i).Interface())
	}
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("model has no db columns")
	}

	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

func dbColumn(field reflect.StructField) (string, bool) {
	if field.PkgPath != "" {
		return "", false
	}

	name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
	name = strings.TrimSpace(name)
	if name == "" || name == "-" {
		return "", false
	}

	return name, true
}
