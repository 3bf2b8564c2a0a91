package app

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string `json:"field"`
	Message string `json:"message"`
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString joins every message for log lines and details
// ErrorsToString 将所有错误信息拼接成字符串
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ", ")
}

// errTrailingData 请求体在第一个 JSON 值之后还有内容
var errTrailingData = errors.New("unexpected data after JSON body")

// BindAndValid decodes exactly one JSON value from the body into obj and validates it
// BindAndValid 绑定 JSON 请求体并验证，请求体只能包含一个 JSON 值
func BindAndValid(c *gin.Context, obj any) (bool, ValidErrors) {
	if c.Request == nil || c.Request.Body == nil {
		return toValidErrors(c, io.EOF)
	}
	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(obj); err != nil {
		return toValidErrors(c, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return toValidErrors(c, errTrailingData)
	}
	return toValidErrors(c, binding.Validator.ValidateStruct(obj))
}

// BindUriAndValid binds path parameters into obj and validates it
// BindUriAndValid 绑定路径参数并验证
func BindUriAndValid(c *gin.Context, obj any) (bool, ValidErrors) {
	return toValidErrors(c, c.ShouldBindUri(obj))
}

func toValidErrors(c *gin.Context, err error) (bool, ValidErrors) {
	if err == nil {
		return true, nil
	}

	var errs ValidErrors

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var numErr *strconv.NumError

	switch {
	case errors.As(err, &verrs):
		trans := translator(c)
		for _, fe := range verrs {
			msg := fe.Error()
			if trans != nil {
				msg = fe.Translate(trans)
			}
			errs = append(errs, &ValidError{Key: fe.Field(), Message: msg})
		}
	case errors.As(err, &typeErr) && typeErr.Field == "":
		// 顶层不是对象，例如 [1]
		errs = append(errs, &ValidError{Key: "body", Message: "Invalid JSON body"})
	case errors.As(err, &typeErr):
		errs = append(errs, &ValidError{
			Key:     typeErr.Field,
			Message: typeErr.Field + " must be of type " + typeErr.Type.String(),
		})
	case errors.As(err, &numErr):
		errs = append(errs, &ValidError{Key: "path", Message: strconv.Quote(numErr.Num) + " is not a valid integer"})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, errTrailingData):
		errs = append(errs, &ValidError{Key: "body", Message: "Invalid JSON body"})
	default:
		errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
	}
	return false, errs
}

func translator(c *gin.Context) ut.Translator {
	v, ok := c.Get("trans")
	if !ok {
		return nil
	}
	trans, _ := v.(ut.Translator)
	return trans
}
