package ez

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	resp "rizal-api/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindNone    Binder = "none"     // 不绑定
	BindJSON    Binder = "json"     // 从 JSON 绑定
	BindQuery   Binder = "query"    // 从 URL ?a=b 绑定
	BindURI     Binder = "uri"      // 从路径参数 /:id 绑定
	BindURIJSON Binder = "uri+json" // 先路径参数，再 JSON
)

// 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error    { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func NotFound(msg string) error      { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Unprocessable(msg string) error { return &AErr{Code: resp.CodeUnprocessable, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/users/:id"
	Binder  Binder
	Status  int // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)

	// Translate 把领域错误转成 AErr，返回 nil 表示不认识
	Translate func(err error) *AErr
}

// RegisterAction 在 g 下注册动作接口
func RegisterAction[I any, O any](g gin.IRoutes, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			code := resp.CodeUnprocessable
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				code = resp.CodeTooLarge
			}
			c.AbortWithStatusJSON(code, resp.Error(code, BindDetail(err)))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			writeErr(c, err, a.Translate)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodPatch:
		g.PATCH(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default: // 默认 POST
		g.POST(a.Path, h)
	}
}

func bind(c *gin.Context, b Binder, in any) error {
	switch b {
	case BindJSON:
		return bindJSONObject(c, in)
	case BindQuery:
		return c.ShouldBindQuery(in)
	case BindURI:
		return uriErr(c, c.ShouldBindUri(in))
	case BindURIJSON:
		// 路径参数只做映射，校验留给 JSON 绑定统一做
		m := make(map[string][]string, len(c.Params))
		for _, p := range c.Params {
			m[p.Key] = []string{p.Value}
		}
		if err := binding.MapFormWithTag(in, m, "uri"); err != nil {
			return uriErr(c, err)
		}
		return bindJSONObject(c, in)
	default: // BindNone: 不绑定
		return nil
	}
}

var ErrBodyNotObject = errors.New("request body must be a JSON object")

// bindJSONObject 请求体必须是 JSON 对象；null / 数组 / 标量一律拒绝
func bindJSONObject(c *gin.Context, in any) error {
	if c.Request.Body == nil {
		return io.EOF
	}
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return io.EOF
	}
	if body[0] != '{' {
		return ErrBodyNotObject
	}
	return binding.JSON.BindBody(body, in)
}

// ParamError 路径参数无法解析
type ParamError struct {
	Name   string
	Reason string
}

func (e *ParamError) Error() string { return e.Name + ": " + e.Reason }

func uriErr(c *gin.Context, err error) error {
	var ne *strconv.NumError
	if !errors.As(err, &ne) {
		return err
	}
	name := "path"
	for _, p := range c.Params {
		if p.Value == ne.Num {
			name = p.Key
			break
		}
	}
	reason := "value is not a valid integer"
	if errors.Is(ne.Err, strconv.ErrRange) {
		reason = "integer value out of range"
	}
	return &ParamError{Name: name, Reason: reason}
}

// 统一错误映射
func writeErr(c *gin.Context, err error, translate func(error) *AErr) {
	var ae *AErr
	if !errors.As(err, &ae) && translate != nil {
		ae = translate(err)
	}
	if ae == nil {
		ae = &AErr{Code: resp.CodeServerError, Msg: "internal error", Err: err}
	}
	if ae.Code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(ae.Code, resp.Error(ae.Code, ae.Error()))
}

// BindDetail 把绑定/校验错误转成可读文本
func BindDetail(err error) string {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		parts := make([]string, 0, len(ves))
		for _, fe := range ves {
			parts = append(parts, fieldMsg(fe))
		}
		return strings.Join(parts, "; ")
	}
	var se *json.SyntaxError
	var te *json.UnmarshalTypeError
	var mbe *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return "request body is required"
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "malformed JSON: unexpected end of input"
	case errors.As(err, &se):
		return "malformed JSON: " + se.Error()
	case errors.As(err, &te):
		return fmt.Sprintf("%s: expected %s", te.Field, te.Type)
	case errors.As(err, &mbe):
		return "request body too large"
	}
	return err.Error()
}

func fieldMsg(fe validator.FieldError) string {
	name := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + ": field required"
	case "email":
		return name + ": value is not a valid email address"
	}
	return fmt.Sprintf("%s: failed on '%s'", name, fe.Tag())
}
