package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	errs "github.com/LambdaTest/axon/pkg/errors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	jsonTagName  = "json"
	emptyTagName = "-"
	subString    = 2
)

// configureValidator configure the struct validator
func configureValidator(validate *validator.Validate) error {
	eng := en.New()
	uni := ut.New(eng, eng)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return err
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(jsonTagName), ",", subString)[0]
		if name == emptyTagName {
			return fld.Name
		}
		return name
	})
	return nil
}

// validateConfig checks the populated config against the struct constraints.
func validateConfig(cfg *Config) error {
	validate := validator.New()
	if err := configureValidator(validate); err != nil {
		return err
	}
	if err := validate.Struct(cfg); err != nil {
		payload, merr := json.Marshal(errs.ValidationErr(err))
		if merr != nil {
			return err
		}
		return errs.New(fmt.Sprintf("invalid config: %s", string(payload)))
	}
	return nil
}
