// Package errors 提供统一的应用错误结构与 HTTP 错误响应
package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/noteledger/note-ledger-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// TraceIDKey gin.Context 中存储 Trace ID 的键
// 与 middleware 包保持一致
const TraceIDKey = "trace_id"

// AppError 统一应用错误结构体
// 包含错误码、消息、详情、追踪ID和时间戳
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Kind 错误种类
	Kind code.Kind `json:"-"`
	// Message 错误消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap 实现 errors.Unwrap 接口，支持错误链路追踪
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Kind:      c.Kind(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithTraceID 设置 TraceID 并返回自身（链式调用）
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// errResponse 错误响应信封，与 pkg/app.Res 字段保持一致
type errResponse struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Message interface{} `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorResponse 统一错误响应处理
// 服务层返回 *code.Code 或 AppError，其余错误一律按内部错误处理
func ErrorResponse(c *gin.Context, err error) {
	traceID := c.GetString(TraceIDKey)

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		c.JSON(http.StatusOK, errResponse{
			Code:    codeErr.Code(),
			Status:  codeErr.Status(),
			Message: codeErr.Msg(),
			Details: detailsOrNil(codeErr),
			TraceID: traceID,
		})
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.TraceID == "" {
			appErr.TraceID = traceID
		}
		c.JSON(http.StatusOK, errResponse{
			Code:    appErr.Code,
			Status:  false,
			Message: appErr.Message,
			Details: appErr.Details,
			TraceID: appErr.TraceID,
		})
		return
	}

	fallback := code.ErrorServerInternal.WithDetails(err.Error())
	c.JSON(http.StatusOK, errResponse{
		Code:    fallback.Code(),
		Status:  false,
		Message: fallback.Msg(),
		Details: fallback.Details(),
		TraceID: traceID,
	})
}

func detailsOrNil(c *code.Code) interface{} {
	if c.HaveDetails() {
		return c.Details()
	}
	return nil
}
