package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
)

// bindError はリクエストボディのバインドエラーをValidationErrorに変換する。
// フィールド名はreqのjsonタグ名で表す。
func bindError(req any, err error) *apperr.ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.NewValidationError(jsonFieldName(req, fe.StructField()), fmt.Sprintf("failed on '%s'", fe.Tag()))
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.NewValidationError(typeErr.Field, "must be "+typeErr.Type.String())
	}
	return apperr.NewValidationError("body", "malformed request body")
}

// jsonFieldName は構造体フィールドのjsonタグ名を返す。タグがなければフィールド名を返す。
func jsonFieldName(req any, field string) string {
	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return field
	}
	sf, ok := t.FieldByName(field)
	if !ok {
		return field
	}
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field
	}
	return name
}
