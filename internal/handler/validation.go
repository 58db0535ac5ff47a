package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/filmfest/internal/model"
)

// RegisterValidators 注册枚举校验器，供请求绑定用
// 枚举在入口处就挡掉非法值，数据库里不会出现走样的写法
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("evaluation", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseEvaluation(fl.Field().String())
		return ok
	})

	v.RegisterValidation("selection_status", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseSelectionStatus(fl.Field().String())
		return ok
	})
}
