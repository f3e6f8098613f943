package utils

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	goaway "github.com/TwiN/go-away"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	// clean: 不得包含脏话
	mustRegisterValidation(v, "clean", func(fl validator.FieldLevel) bool {
		return !IsProfane(fl.Field().String())
	})
	// clean_url: 只检查主机名、路径与查询参数，端口号不参与
	mustRegisterValidation(v, "clean_url", func(fl validator.FieldLevel) bool {
		return !IsProfaneURL(fl.Field().String())
	})
	return v
}

// mustRegisterValidation 注册失败时直接 panic，避免标签静默失效。
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// IsProfane 判断文本是否包含脏话。
func IsProfane(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return goaway.IsProfane(text)
}

func IsProfaneURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return IsProfane(raw)
	}
	parts := []string{u.Hostname(), u.Path, u.RawQuery, u.Fragment}
	return IsProfane(strings.Join(parts, " "))
}

// ValidateStruct 校验结构体，返回按字段顺序排列的可读错误信息；校验通过时返回 nil。
func ValidateStruct(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		messages = append(messages, humanizeField(fieldErr.Field())+" "+validationMessage(fieldErr))
	}
	return messages
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "can't be blank"
	case "min":
		return fmt.Sprintf("is too short (minimum is %s characters)", fe.Param())
	case "max":
		return fmt.Sprintf("is too long (maximum is %s characters)", fe.Param())
	case "email":
		return "is not a valid email"
	case "http_url", "url":
		return "is not a valid url"
	case "clean", "clean_url":
		return "cannot include profanity"
	}
	return "is invalid"
}

// humanizeField "image_url" -> "Image url"
func humanizeField(field string) string {
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
