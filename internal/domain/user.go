package domain

import (
	"errors"

	"rizal-api/pkg/utils"
)

const RoleStudent = "student"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// UserPatch 部分更新：只覆盖出现的字段
type UserPatch struct {
	Email utils.Optional[string]
	Name  utils.Optional[string]
	Role  utils.Optional[string]
}

// Apply 返回合并后的副本，u 本身不变
func (u User) Apply(p UserPatch) User {
	u.Email = p.Email.Or(u.Email)
	u.Name = p.Name.Or(u.Name)
	u.Role = p.Role.Or(u.Role)
	return u
}

type UserRepository interface {
	Create(u *User) error // 成功后回填 u.ID
	FindByID(id int64) (*User, error)
	List() ([]User, error)
	Update(id int64, p UserPatch) (*User, error)
	Delete(id int64) (*User, error)
}
