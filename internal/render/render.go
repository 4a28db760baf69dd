// Package render formats an entity or benchmark report as JSON or as
// human-readable text, the two modes the CLI's --json/-j flag selects
// between (spec §9 "rendering the result as JSON or human-readable text").
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
)

// JSON writes v to w as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Text writes v to w as a label: value table, walking exported struct
// fields (and their json tags); nested structs and pointers are rendered as
// indented sub-tables, and slices/arrays as a compact JSON rendering of that
// field.
func Text(w io.Writer, v interface{}) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeFields(tw, v, ""); err != nil {
		return err
	}
	return tw.Flush()
}

func writeFields(tw *tabwriter.Writer, v interface{}, prefix string) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			fmt.Fprintf(tw, "%s\t<none>\n", strings.TrimSuffix(prefix, "."))
			return nil
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		fmt.Fprintf(tw, "%s\t%v\n", strings.TrimSuffix(prefix, "."), v)
		return nil
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}
		name := fieldName(field)
		if name == "-" {
			continue
		}
		fv := rv.Field(i)
		if isEmptyValue(fv) {
			continue
		}

		switch fv.Kind() {
		case reflect.Struct:
			fmt.Fprintf(tw, "%s%s:\t\n", prefix, name)
			writeFields(tw, fv.Interface(), prefix+"  ")
		case reflect.Ptr:
			if fv.IsNil() {
				continue
			}
			fmt.Fprintf(tw, "%s%s:\t\n", prefix, name)
			writeFields(tw, fv.Interface(), prefix+"  ")
		case reflect.Slice, reflect.Array:
			raw, _ := json.Marshal(fv.Interface())
			fmt.Fprintf(tw, "%s%s\t%s\n", prefix, name, string(raw))
		default:
			fmt.Fprintf(tw, "%s%s\t%v\n", prefix, name, fv.Interface())
		}
	}
	return nil
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		return f.Name
	}
	return name
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.String:
		return v.Len() == 0
	}
	return false
}

// SortedKeys returns the keys of m in sorted order, used by callers that
// render map[string]any upstream payloads in text mode.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
