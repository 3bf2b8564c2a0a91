// Package validator 提供 gin 使用的参数验证器
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// CustomValidator 实现 gin 的 binding.StructValidator
type CustomValidator struct {
	Once     sync.Once
	Validate *validator.Validate
}

var _ binding.StructValidator = (*CustomValidator)(nil)

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct validates structs and pointers to structs, other kinds pass through
func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	v.lazyinit()
	return v.Validate.Struct(obj)
}

func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.Validate
}

func (v *CustomValidator) lazyinit() {
	v.Once.Do(func() {
		v.Validate = validator.New()
		v.Validate.SetTagName("binding")

		// Report json field names in errors
		// 错误信息中使用 json 字段名
		v.Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.Validate.RegisterValidation("notblank", validators.NotBlank)
	})
}

// NewTranslator 注册 en/zh 翻译并返回 UniversalTranslator
func NewTranslator(v *validator.Validate) (*ut.UniversalTranslator, error) {
	uni := ut.New(en.New(), en.New(), zh.New())

	enTran, _ := uni.GetTranslator("en")
	zhTran, _ := uni.GetTranslator("zh")

	if err := en_translations.RegisterDefaultTranslations(v, enTran); err != nil {
		return nil, err
	}
	if err := zh_translations.RegisterDefaultTranslations(v, zhTran); err != nil {
		return nil, err
	}
	if err := registerNotBlank(v, enTran, "{0} must not be blank"); err != nil {
		return nil, err
	}
	if err := registerNotBlank(v, zhTran, "{0}不能为空白"); err != nil {
		return nil, err
	}
	return uni, nil
}

func registerNotBlank(v *validator.Validate, trans ut.Translator, text string) error {
	return v.RegisterTranslation("notblank", trans,
		func(ut ut.Translator) error {
			return ut.Add("notblank", text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("notblank", fe.Field())
			return t
		},
	)
}

// Install replaces gin's default validator and returns the translator set bound to it
// Install 替换 gin 默认验证器并返回对应的翻译器
func Install() (*ut.UniversalTranslator, error) {
	cv := NewCustomValidator()
	binding.Validator = cv
	return NewTranslator(cv.Engine().(*validator.Validate))
}
