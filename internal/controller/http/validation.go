package http

import (
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/Freeeeeet/skischool_office/internal/scheduler"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators добавляет в валидатор gin теги clock (HH:MM) и isodate (YYYY-MM-DD)
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("clock", validateClock); err != nil {
			registerErr = fmt.Errorf("register clock validation: %w", err)
			return
		}
		if err := v.RegisterValidation("isodate", validateISODate); err != nil {
			registerErr = fmt.Errorf("register isodate validation: %w", err)
		}
	})
	return registerErr
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := scheduler.ParseClock(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(model.DateLayout, fl.Field().String())
	return err == nil
}
