package common

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldMessages flattens validator errors into a field -> message map.
// Messages are looked up as "field.tag" first, then "field"; anything else
// gets a generic description of the failed rule. Returns nil if err is not a validation error.
func FieldMessages(err error, messages map[string]string) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			out[field] = msg
			continue
		}
		if msg, ok := messages[field]; ok {
			out[field] = msg
			continue
		}
		if fe.Param() != "" {
			out[field] = fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param())
		} else {
			out[field] = fmt.Sprintf("%s failed %s", field, fe.Tag())
		}
	}
	return out
}

// JSONTagName makes validator report fields by their json name.
func JSONTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
