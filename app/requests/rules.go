package requests

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
	"github.com/thedevsaddam/govalidator"
)

func init() {
	// max_cn:N 按字符而不是字节计算长度
	govalidator.AddCustomRule("max_cn", func(field string, rule string, message string, value interface{}) error {
		limit := cast.ToInt(strings.TrimPrefix(rule, "max_cn:"))
		if utf8.RuneCountInString(cast.ToString(value)) <= limit {
			return nil
		}
		if message != "" {
			return errors.New(message)
		}
		return fmt.Errorf("长度不能超过 %d 个字", limit)
	})
}
