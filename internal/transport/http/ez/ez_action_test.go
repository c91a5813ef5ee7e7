package ez

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGone = errors.New("gone")

type idIn struct {
	ID int64 `uri:"id"`
}

type echoIn struct {
	ID    int64  `uri:"id" json:"-"`
	Email string `json:"email" binding:"required,email"`
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	translate := func(err error) *AErr {
		if errors.Is(err, errGone) {
			return &AErr{Code: http.StatusNotFound, Msg: "thing not found"}
		}
		return nil
	}
	RegisterAction(r, Action[idIn, gin.H]{
		Method: http.MethodGet, Path: "/things/:id", Binder: BindURI, Translate: translate,
		Handler: func(c *gin.Context, in *idIn) (gin.H, error) {
			switch in.ID {
			case 1:
				return gin.H{"id": in.ID}, nil
			case 2:
				return nil, errors.New("boom")
			}
			return nil, errGone
		},
	})
	RegisterAction(r, Action[echoIn, gin.H]{
		Method: http.MethodPut, Path: "/things/:id", Binder: BindURIJSON, Status: http.StatusAccepted,
		Handler: func(c *gin.Context, in *echoIn) (gin.H, error) {
			return gin.H{"id": in.ID, "email": in.Email}, nil
		},
	})
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAction_StatusMapping(t *testing.T) {
	r := newEngine()

	w := do(r, http.MethodGet, "/things/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())

	w = do(r, http.MethodGet, "/things/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodGet, "/things/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"thing not found"}`, w.Body.String())

	w = do(r, http.MethodGet, "/things/2", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"internal error"}`, w.Body.String())
}

func TestRegisterAction_URIAndJSON(t *testing.T) {
	r := newEngine()

	w := do(r, http.MethodPut, "/things/7", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"id":7,"email":"a@x.com"}`, w.Body.String())

	w = do(r, http.MethodPut, "/things/7", `{"email":"nope"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"detail":"email: value is not a valid email address"}`, w.Body.String())

	w = do(r, http.MethodPut, "/things/7", `{}`)
	assert.JSONEq(t, `{"detail":"email: field required"}`, w.Body.String())

	w = do(r, http.MethodPut, "/things/7", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAErr_Unwrap(t *testing.T) {
	err := Internal("wrapped", errGone)
	assert.ErrorIs(t, err, errGone)
	assert.Equal(t, "wrapped", err.Error())
}

func TestRegisterAction_BodyMustBeObject(t *testing.T) {
	r := newEngine()
	for _, body := range []string{"null", "[1]", `"a@x.com"`, "  7 "} {
		w := do(r, http.MethodPut, "/things/7", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
		assert.JSONEq(t, `{"detail":"request body must be a JSON object"}`, w.Body.String(), body)
	}

	w := do(r, http.MethodPut, "/things/7", `{"email":`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"detail":"malformed JSON: unexpected end of input"}`, w.Body.String())
}

func TestRegisterAction_PathParamDetail(t *testing.T) {
	r := newEngine()

	w := do(r, http.MethodGet, "/things/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"detail":"id: value is not a valid integer"}`, w.Body.String())

	w = do(r, http.MethodGet, "/things/99999999999999999999", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"detail":"id: integer value out of range"}`, w.Body.String())

	w = do(r, http.MethodPut, "/things/x1", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"detail":"id: value is not a valid integer"}`, w.Body.String())
}
