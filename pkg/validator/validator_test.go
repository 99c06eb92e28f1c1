package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"name" validate:"required"`
}

type outer struct {
	ID     string `json:"id" validate:"required"`
	Hidden string `json:"-"`
	Child  *inner `json:"child"`
}

func TestFieldsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(outer{Child: &inner{Email: "nope"}})
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"id":          "required",
		"child.email": "email",
		"child.name":  "required",
	}, Fields(err))
}

func TestRegisterStructValidation(t *testing.T) {
	v := New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		o := sl.Current().Interface().(outer)
		if o.Child == nil {
			sl.ReportError(o.Child, "child", "Child", "required_for_test", "")
		}
	}, outer{})

	err := v.Validate(outer{ID: "x"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"child": "required_for_test"}, Fields(err))

	assert.NoError(t, v.Validate(outer{ID: "x", Child: &inner{Name: "n"}}))
}

func TestFieldsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, Fields(assert.AnError))
}
