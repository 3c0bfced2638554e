// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	User UserServiceConfig // User related config // 用户相关配置
	App  AppServiceConfig  // App related config // 应用相关配置
}

// UserServiceConfig user service configuration
// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool // Whether registration is enabled // 注册是否启用
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	SoftDeleteRetentionTime string // Soft delete retention time (e.g., 7d, 24h, 0/empty for no cleanup) // 软删除保留时间（支持格式：7d、24h，0 或空表示不自动清理）
	AttachmentMaxSize       string // Attachment max size (e.g., 10MB) // 附件大小上限（支持格式：10MB）
	DefaultPageSize         int    // Default page size // 默认页面大小
	MaxPageSize             int    // Max page size // 最大页面大小
}
