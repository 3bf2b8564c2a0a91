package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writeBody struct {
	Title   *string `json:"title" binding:"required,notblank"`
	Content *string `json:"content" binding:"required"`
	Creator *string `json:"creator"`
}

func strPtr(s string) *string { return &s }

func TestCustomValidator_ValidateStruct(t *testing.T) {
	v := NewCustomValidator()

	tests := []struct {
		name      string
		body      *writeBody
		wantField string
	}{
		{"valid", &writeBody{Title: strPtr("T"), Content: strPtr("C")}, ""},
		{"empty content allowed", &writeBody{Title: strPtr("T"), Content: strPtr("")}, ""},
		{"missing title", &writeBody{Content: strPtr("C")}, "title"},
		{"blank title", &writeBody{Title: strPtr("   "), Content: strPtr("C")}, "title"},
		{"missing content", &writeBody{Title: strPtr("T"), Creator: strPtr("Tester")}, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.body)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}

func TestCustomValidator_NonStruct(t *testing.T) {
	v := NewCustomValidator()
	assert.NoError(t, v.ValidateStruct(nil))
	assert.NoError(t, v.ValidateStruct("text"))
	assert.NoError(t, v.ValidateStruct((*writeBody)(nil)))
}

func TestNewTranslator(t *testing.T) {
	v := NewCustomValidator()
	uni, err := NewTranslator(v.Engine().(*validator.Validate))
	require.NoError(t, err)

	trans, found := uni.GetTranslator("en")
	require.True(t, found)

	err = v.ValidateStruct(&writeBody{Title: strPtr(" "), Content: strPtr("C")})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "title must not be blank", verrs[0].Translate(trans))

	err = v.ValidateStruct(&writeBody{Title: strPtr("T")})
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "content is a required field", verrs[0].Translate(trans))
}
