package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mkoval/rpmarket/internal/usecase"
)

// The couponcode rule mirrors the code format accepted by the coupon engine
// so malformed codes are rejected before hitting storage.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("couponcode", func(fl validator.FieldLevel) bool {
			return usecase.ValidateCouponCode(fl.Field().String())
		})
	}
}
