package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"rizal-api/internal/domain"
	"rizal-api/internal/service"
	httpez "rizal-api/internal/transport/http/ez"
	"rizal-api/pkg/utils"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Priority() int { return 10 }

type createUserIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Name     string `json:"name"     binding:"required"`
	Password string `json:"password" binding:"required"`
}

type idIn struct {
	ID int64 `uri:"id"`
}

type updateUserIn struct {
	ID    int64                  `uri:"id" json:"-"`
	Email utils.Optional[string] `json:"email"`
	Name  utils.Optional[string] `json:"name"`
	Role  utils.Optional[string] `json:"role"`
}

type deleteOut struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

// MountAPI 挂载 /users 资源
func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	httpez.RegisterAction(g, httpez.Action[createUserIn, domain.User]{
		Method:    http.MethodPost,
		Path:      "/users",
		Binder:    httpez.BindJSON,
		Translate: translate,
		Handler: func(c *gin.Context, in *createUserIn) (domain.User, error) {
			u, err := h.svc.Create(service.CreateUserInput{Email: in.Email, Name: in.Name, Password: in.Password})
			if err != nil {
				return domain.User{}, err
			}
			return *u, nil
		},
	})

	httpez.RegisterAction(g, httpez.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return h.svc.List()
		},
	})

	httpez.RegisterAction(g, httpez.Action[idIn, domain.User]{
		Method:    http.MethodGet,
		Path:      "/users/:id",
		Binder:    httpez.BindURI,
		Translate: translate,
		Handler: func(c *gin.Context, in *idIn) (domain.User, error) {
			u, err := h.svc.Get(in.ID)
			if err != nil {
				return domain.User{}, err
			}
			return *u, nil
		},
	})

	httpez.RegisterAction(g, httpez.Action[updateUserIn, domain.User]{
		Method:    http.MethodPut,
		Path:      "/users/:id",
		Binder:    httpez.BindURIJSON,
		Translate: translate,
		Handler: func(c *gin.Context, in *updateUserIn) (domain.User, error) {
			if err := validatePatch(in); err != nil {
				return domain.User{}, err
			}
			u, err := h.svc.Update(in.ID, domain.UserPatch{Email: in.Email, Name: in.Name, Role: in.Role})
			if err != nil {
				return domain.User{}, err
			}
			return *u, nil
		},
	})

	httpez.RegisterAction(g, httpez.Action[idIn, deleteOut]{
		Method:    http.MethodDelete,
		Path:      "/users/:id",
		Binder:    httpez.BindURI,
		Translate: translate,
		Handler: func(c *gin.Context, in *idIn) (deleteOut, error) {
			u, err := h.svc.Delete(in.ID)
			if err != nil {
				return deleteOut{}, err
			}
			return deleteOut{Message: "User deleted", User: *u}, nil
		},
	})
}

// validatePatch 出现的字段不能为 null；email 出现时需合法
func validatePatch(in *updateUserIn) error {
	fields := []struct {
		name string
		opt  utils.Optional[string]
	}{{"email", in.Email}, {"name", in.Name}, {"role", in.Role}}
	for _, f := range fields {
		if f.opt.Null {
			return httpez.Unprocessable(f.name + ": field may not be null")
		}
	}
	if in.Email.Set() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return httpez.Internal("validator unavailable", nil)
		}
		if err := v.Var(in.Email.Value, "required,email"); err != nil {
			return httpez.Unprocessable("email: value is not a valid email address")
		}
	}
	return nil
}

func translate(err error) *httpez.AErr {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return &httpez.AErr{Code: http.StatusNotFound, Msg: "User not found", Err: err}
	case errors.Is(err, domain.ErrUserExists):
		return &httpez.AErr{Code: http.StatusBadRequest, Msg: "User already exists", Err: err}
	}
	return nil
}
