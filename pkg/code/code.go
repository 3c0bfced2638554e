// Package code 提供带错误种类的业务状态码注册表
package code

import (
	"fmt"
	"net/http"
)

// Kind 错误种类的封闭枚举
// 调用方依据 Kind 决定重试策略，绝不解析错误文本
type Kind int

const (
	// KindNone 非错误或未分类
	KindNone Kind = iota
	// KindNotFound 资源不存在（或对调用方不可见）
	KindNotFound
	// KindPermissionDenied 权限不足
	KindPermissionDenied
	// KindVersionConflict 乐观锁版本冲突，可重读后重试
	KindVersionConflict
	// KindInvalidArgument 调用方参数错误，修正前不可重试
	KindInvalidArgument
	// KindStorageFailure 存储层故障
	KindStorageFailure
)

// Code 业务状态码
type Code struct {
	// 状态码
	code int
	// 状态
	status bool
	// 错误种类
	kind Kind
	// 错误消息
	Lang lang
	// 数据
	data     interface{}
	haveData bool
	// 错误详细信息
	details     []string
	haveDetails bool
}

var codes = map[int]string{}

// NewError registers a new error code, panics on duplicates
// NewError 注册一个新的错误码，重复注册会 panic
func NewError(code int, kind Kind, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, kind: kind, Lang: l}
}

// NewSuss registers a new success code
// NewSuss 注册一个新的成功码
func NewSuss(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: true, kind: KindNone, Lang: l}
}

// Clone 创建一个新的 Code 副本
// 注册的全局 Code 对象是共享的，携带数据前必须先克隆
func (e *Code) Clone() *Code {
	return &Code{
		code:   e.code,
		status: e.status,
		kind:   e.kind,
		Lang:   e.Lang,
	}
}

// Error 实现 error 接口
func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Kind() Kind {
	return e.kind
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

// Is 支持 errors.Is 按状态码比较
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	return ok && t.code == e.code
}

// WithData 返回携带响应数据的副本
func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.haveData = true
	c.data = data
	return c
}

// WithDetails 返回携带错误详情的副本
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveDetails = true
	c.details = append(c.details, details...)
	return c
}

// StatusCode HTTP 状态码，业务码统一走 200 信封
func (e *Code) StatusCode() int {
	return http.StatusOK
}
