package http

import (
	"sync"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request structs:
//
//	department  a valid department code
//	frequency   daily, weekly or monthly
//	permission  admin, member or view
//	weekday     monday through sunday
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
			_, err := domain.NormalizeDepartment(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
			return domain.Frequency(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
			return domain.Permission(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			return domain.ValidDueDay(fl.Field().String())
		})
	})
}
