package response

import "net/http"

// 错误码直接使用 HTTP 状态码
const (
	CodeBadRequest         = http.StatusBadRequest
	CodeNotFound           = http.StatusNotFound
	CodeTooLarge           = http.StatusRequestEntityTooLarge
	CodeUnprocessable      = http.StatusUnprocessableEntity
	CodeTooManyRequests    = http.StatusTooManyRequests
	CodeServerError        = http.StatusInternalServerError
	CodeServiceUnavailable = http.StatusServiceUnavailable
	CodeTimeout            = http.StatusGatewayTimeout
)

// CodeMsgMap 用于集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeBadRequest:         "Bad Request",
	CodeNotFound:           "Not Found",
	CodeTooLarge:           "Request Entity Too Large",
	CodeUnprocessable:      "Unprocessable Entity",
	CodeTooManyRequests:    "Too Many Requests",
	CodeServerError:        "Internal Server Error",
	CodeServiceUnavailable: "Service Unavailable",
	CodeTimeout:            "Gateway Timeout",
}
