// internal/app/features/shared/jsonio/jsonio.go
package jsonio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/dalemusser/recordhub/internal/app/system/actor"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/inputval"
	"github.com/dalemusser/recordhub/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
)

// Write sends v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// OK sends v with status 200.
func OK(w http.ResponseWriter, v any) { Write(w, http.StatusOK, v) }

// Message is the {message} body returned by mutations with nothing else to say.
type Message struct {
	Message string `json:"message"`
}

// Decode reads one JSON object from the request body into dst. Unknown
// fields, trailing data and mistyped values are Validation errors. An empty
// body decodes as {} when allowEmpty is set.
func Decode(r *http.Request, dst any, allowEmpty bool) error {
	if r.Body == nil {
		if allowEmpty {
			return nil
		}
		return apperr.Validationf("request body is required")
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, limits.MaxJSONBody))
	if err != nil {
		return apperr.Validationf("could not read request body")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			if allowEmpty {
				return nil
			}
			return apperr.Validationf("request body is required")
		}
		if isActorErr(err) {
			if field := actorField(raw, dst); field != "" {
				return apperr.Wrap(apperr.Validation, err, field+" "+err.Error())
			}
		}
		return apperr.Wrap(apperr.Validation, err, describe(err))
	}
	if dec.More() {
		return apperr.Validationf("request body must contain a single JSON object")
	}
	return nil
}

var refType = reflect.TypeOf(actor.Ref{})

func isActorErr(err error) bool {
	return errors.Is(err, actor.ErrWrongType) || errors.Is(err, actor.ErrBadID)
}

// actorField names the first actor.Ref field of dst whose value in raw does
// not parse. encoding/json drops the field name for errors returned by
// UnmarshalJSON, so it is recovered here.
func actorField(raw []byte, dst any) string {
	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) != nil {
		return ""
	}
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ""
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type != refType {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" {
			name = f.Name
		}
		v, ok := fields[name]
		if !ok {
			continue
		}
		var ref actor.Ref
		if ref.UnmarshalJSON(v) != nil {
			return name
		}
	}
	return ""
}

// DecodeValid decodes like Decode and then runs the struct's validate rules.
func DecodeValid(r *http.Request, dst any, allowEmpty bool) error {
	if err := Decode(r, dst, allowEmpty); err != nil {
		return err
	}
	return Valid(dst)
}

// Valid runs the struct's validate rules and reports the first failure as a
// Validation error.
func Valid(v any) error {
	if res := inputval.Validate(v); res.HasErrors() {
		return apperr.Validationf("%s", res.First())
	}
	return nil
}

func describe(err error) string {
	var (
		syntax *json.SyntaxError
		typ    *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntax):
		return "malformed JSON"
	case errors.As(err, &typ):
		if typ.Field != "" {
			return fmt.Sprintf("%s must be a %s", typ.Field, jsonKind(typ.Type.Kind().String()))
		}
		return "request body must be a JSON object"
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "malformed JSON"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return "unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	}
	// Errors returned by custom unmarshalers, e.g. actor references.
	return err.Error()
}

func jsonKind(goKind string) string {
	switch goKind {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "float32", "float64":
		return "number"
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "slice", "array":
		return "list"
	default:
		return "object"
	}
}

// PathID parses a positive integer URL parameter.
func PathID(r *http.Request, name string) (int64, error) {
	return ParseID(chi.URLParam(r, name), name)
}

// ParseID parses a positive integer id named name.
func ParseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("%s must be a positive integer", name)
	}
	return id, nil
}
