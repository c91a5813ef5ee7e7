package response

import "net/http"

// ErrorBody 统一错误体：{"detail": "..."}
type ErrorBody struct {
	Detail string `json:"detail"`
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) ErrorBody {
	msg := CodeMsgMap[code]
	if msg == "" {
		msg = http.StatusText(code)
	}
	if customMsg != "" {
		msg = customMsg
	}
	return ErrorBody{Detail: msg}
}

type Status struct {
	Message string `json:"message,omitempty"`
	Status  string `json:"status"`
}
