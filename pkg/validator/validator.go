// Package validator envuelve go-playground/validator con una instancia única
// y convierte sus errores en pares campo/regla legibles.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describe una regla incumplida.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s (%s=%s)", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s (%s)", e.Field, e.Tag)
}

// Errors es la lista de reglas incumplidas de una validación.
type Errors []FieldError

func (es Errors) Error() string {
	parts := make([]string, 0, len(es))
	for _, e := range es {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

// validator.Validate es seguro para uso concurrente y cachea los structs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct valida data según sus tags `validate`. Devuelve nil o Errors.
func Struct(data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Namespace(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}
