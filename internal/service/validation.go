package service

import (
	"errors"
	"reflect"
	"strings"

	"catalog/internal/model"

	"github.com/go-playground/validator/v10"
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest turns validator failures into a *model.ValidationError.
func validateRequest(v *validator.Validate, req *model.CreateProductRequest) error {
	if req == nil {
		return &model.ValidationError{Fields: []model.FieldError{
			{Field: "name", Rule: "required"},
			{Field: "price", Rule: "required"},
		}}
	}

	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &model.ValidationError{}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, model.FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
