package http

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffops-api/internal/domain"
)

const notBlankTag = "notblank"

// Validator validación de DTOs con mensajes en español y nombres de campo JSON.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator registra traducciones y validaciones propias.
func NewValidator() *Validator {
	v := validator.New()
	_es := es.New()
	uni := ut.New(_es, _es)
	translator, _ := uni.GetTranslator("es")
	_ = es_translations.RegisterDefaultTranslations(v, translator)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && strings.TrimSpace(s) != ""
	})
	_ = v.RegisterTranslation(notBlankTag, translator,
		func(t ut.Translator) error { return t.Add(notBlankTag, "{0} no puede estar vacío", false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(notBlankTag, fe.Field())
			return s
		},
	)
	return &Validator{validate: v, translator: translator}
}

// Struct devuelve un domain.Validation con los mensajes ordenados por campo.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.Validation("VALIDATION", err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(v.translator))
	}
	sort.Strings(msgs)
	return domain.Validation("VALIDATION", strings.Join(msgs, "; "))
}

// bind parsea el cuerpo JSON y lo valida.
func (v *Validator) bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Validation("INVALID_BODY", "cuerpo inválido")
	}
	return v.Struct(out)
}
