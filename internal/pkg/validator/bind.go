package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"staybnb/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const nonFieldErrors = "non_field_errors"

var decimalType = reflect.TypeOf(decimal.Decimal{})

// BindJSON decodes the request body into dst, a pointer to a struct. A body
// that does not decode comes back as a *domain.ValidationError naming every
// field whose value has the wrong type or format.
func BindJSON(c *gin.Context, dst any) error {
	body, err := c.GetRawData()
	if err != nil {
		return domain.FieldError(nonFieldErrors, "Could not read request body.")
	}
	return DecodeJSON(body, dst)
}

// DecodeJSON is BindJSON over a body already in memory. An empty body decodes
// as an empty object so required-field checks report what is missing.
func DecodeJSON(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	err := json.Unmarshal(body, dst)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return domain.FieldError(nonFieldErrors, "JSON parse error - "+err.Error())
	}

	var raw map[string]json.RawMessage
	if json.Unmarshal(body, &raw) != nil {
		return domain.FieldError(nonFieldErrors, "Invalid data. Expected a dictionary.")
	}

	v := domain.NewValidationError()
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		// Decode each field on its own: custom unmarshalers (dates, decimals)
		// fail without saying which key they were reading.
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			value, ok := raw[name]
			if name == "" || !ok {
				continue
			}
			if ferr := json.Unmarshal(value, reflect.New(f.Type).Interface()); ferr != nil {
				v.Add(name, decodeMessage(f.Type, ferr))
			}
		}
	}

	var typeErr *json.UnmarshalTypeError
	if len(v.Fields) == 0 && errors.As(err, &typeErr) && typeErr.Field != "" {
		v.Add(typeErr.Field, decodeMessage(typeErr.Type, err))
	}
	if len(v.Fields) == 0 {
		v.Add(nonFieldErrors, "Invalid data.")
	}
	return v
}

func decodeMessage(t reflect.Type, err error) string {
	if errors.Is(err, domain.ErrInvalidDate) {
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == decimalType {
		return "A valid number is required."
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.Float32, reflect.Float64:
		return "A valid number is required."
	case reflect.String:
		return "Not a valid string."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("Expected a list of %s values.", t.Elem().Kind())
	}
	return "Invalid value."
}
