// Package validator registers the custom binding rules used by request
// payloads and turns validation failures into field-level error details.
package validator

import (
	"encoding/json"
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/models"
)

var (
	once  sync.Once
	trans ut.Translator
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("doc_status", validateDocStatus)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("month", validateMonth)

		locale := en.New()
		trans, _ = ut.New(locale, locale).GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		registerMessage(v, "iso4217", "{0} must be an ISO 4217 currency code")
		registerMessage(v, "doc_status", "{0} must be one of Pending, Issued, Paid, Confirmed, Canceled")
		registerMessage(v, "transaction_type", "{0} must be Income or Expense")
		registerMessage(v, "month", "{0} must be between 1 and 12")
	})
}

func registerMessage(v *validator.Validate, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error { return ut.Add(tag, text, true) },
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field())
			return msg
		})
}

// jsonFieldName reports fields by their wire name (json or form tag).
func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// decimalValue lets numeric rules (gt, gte, lte) apply to decimal fields.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateISO4217(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 || strings.ToUpper(code) != code {
		return false
	}
	_, err := currency.ParseISO(code)
	return err == nil
}

func validateDocStatus(fl validator.FieldLevel) bool {
	return models.Status(fl.Field().String()).Valid()
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch models.TransactionType(fl.Field().String()) {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		return true
	}
	return false
}

func validateMonth(fl validator.FieldLevel) bool {
	m := fl.Field().Int()
	return m >= 1 && m <= 12
}

// ToAppError converts a binding error into a 422 AppError with one detail per
// offending field. Malformed bodies produce a single detail for the body.
func ToAppError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		details := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			msg := fe.Error()
			if trans != nil {
				msg = fe.Translate(trans)
			}
			details = append(details, apperrors.FieldError{Field: fe.Field(), Message: msg})
		}
		return apperrors.Validation("Request validation failed", details...)
	}

	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return apperrors.InvalidField(typeErr.Field, "has an invalid type")
	}

	return apperrors.Validation("Malformed request", apperrors.FieldError{Field: "body", Message: err.Error()})
}
