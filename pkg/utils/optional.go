package utils

import (
	"bytes"
	"encoding/json"
)

// Optional 区分 JSON 中「字段缺失」与「字段出现」（含显式 null）
type Optional[T any] struct {
	Value   T
	Present bool // 请求体里出现过该 key
	Null    bool // 出现且为 null
}

// Some 构造一个已赋值的 Optional
func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Present: true} }

// Set 出现且非 null
func (o Optional[T]) Set() bool { return o.Present && !o.Null }

// Or 未赋值时返回 def
func (o Optional[T]) Or(def T) T {
	if o.Set() {
		return o.Value
	}
	return def
}

// UnmarshalJSON 只有 key 出现时才会被调用，缺失字段保持零值（Present=false）
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
