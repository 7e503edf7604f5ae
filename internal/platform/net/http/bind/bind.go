// Package bind provides validation helpers for query-parameter handlers
package bind

import (
	"reflect"
	"strings"
	"sync"

	perr "noladash/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and form tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer form tag names in messages (query params bind via form tags)
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("form")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// Struct validates v and converts the first failure into a platform validation error
func Struct(v any) error {
	svc := Get()
	if err := svc.Validator.Struct(v); err != nil {
		if ferrs, ok := err.(validator.ValidationErrors); ok && len(ferrs) > 0 {
			fe := ferrs[0]
			return perr.WithField(
				perr.Validationf("%s", fe.Translate(svc.Translator)),
				fe.Field(),
			)
		}
		return perr.Validationf("%v", err)
	}
	return nil
}
