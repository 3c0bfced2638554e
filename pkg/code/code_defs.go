package code

// 通用状态码
var (
	Success = NewSuss(0, lang{en: "Success", zh_cn: "成功"})
	Failed  = NewError(1, KindNone, lang{en: "Failed", zh_cn: "失败"})
)

// 服务级错误码 100xx
var (
	ErrorServerInternal   = NewError(10000, KindNone, lang{en: "Server internal error", zh_cn: "服务内部错误"})
	ErrorInvalidParams    = NewError(10001, KindInvalidArgument, lang{en: "Invalid request parameters", zh_cn: "请求参数错误"})
	ErrorNotFoundAPI      = NewError(10002, KindNotFound, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorTooManyRequests  = NewError(10003, KindNone, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorDBQuery          = NewError(10004, KindStorageFailure, lang{en: "Database query error", zh_cn: "数据库查询错误"})
	ErrorDBTransaction    = NewError(10005, KindStorageFailure, lang{en: "Database transaction failed", zh_cn: "数据库事务执行失败"})
	ErrorInvalidStorage   = NewError(10006, KindInvalidArgument, lang{en: "Invalid storage type", zh_cn: "存储类型无效"})
	ErrorStorageOperation = NewError(10007, KindStorageFailure, lang{en: "Storage operation failed", zh_cn: "存储操作失败"})
)

// 用户相关错误码 200xx
var (
	ErrorNotUserAuthToken       = NewError(20000, KindPermissionDenied, lang{en: "Missing auth token", zh_cn: "缺少认证 Token"})
	ErrorInvalidUserAuthToken   = NewError(20001, KindPermissionDenied, lang{en: "Invalid auth token", zh_cn: "认证 Token 无效"})
	ErrorUserNotFound           = NewError(20002, KindNotFound, lang{en: "User not found", zh_cn: "用户不存在"})
	ErrorUserAlreadyExists      = NewError(20003, KindInvalidArgument, lang{en: "Username already exists", zh_cn: "用户名已存在"})
	ErrorUserEmailAlreadyExists = NewError(20004, KindInvalidArgument, lang{en: "Email already exists", zh_cn: "邮箱已存在"})
	ErrorUserRegisterIsDisable  = NewError(20005, KindPermissionDenied, lang{en: "Registration is disabled", zh_cn: "注册功能已关闭"})
	ErrorUserUsernameNotValid   = NewError(20006, KindInvalidArgument, lang{en: "Invalid username format", zh_cn: "用户名格式不正确"})
	ErrorUserPasswordNotMatch   = NewError(20007, KindInvalidArgument, lang{en: "Passwords do not match", zh_cn: "两次输入的密码不一致"})
	ErrorUserPasswordIncorrect  = NewError(20008, KindPermissionDenied, lang{en: "Incorrect username or password", zh_cn: "用户名或密码错误"})
	ErrorPasswordNotValid       = NewError(20009, KindInvalidArgument, lang{en: "Invalid password", zh_cn: "密码无效"})
	ErrorUserRegister           = NewError(20010, KindStorageFailure, lang{en: "User registration failed", zh_cn: "用户注册失败"})
	ErrorTokenGenerate          = NewError(20011, KindNone, lang{en: "Token generation failed", zh_cn: "Token 生成失败"})
)

// 笔记相关错误码 300xx
var (
	ErrorNoteNotFound         = NewError(30000, KindNotFound, lang{en: "Note not found or access denied", zh_cn: "笔记不存在或无权访问"})
	ErrorNoteVersionNotFound  = NewError(30001, KindNotFound, lang{en: "Note version not found", zh_cn: "笔记版本不存在"})
	ErrorNotePermissionDenied = NewError(30002, KindPermissionDenied, lang{en: "Permission denied for this note", zh_cn: "无权操作该笔记"})
	ErrorNoteVersionConflict  = NewError(30003, KindVersionConflict, lang{en: "Note was modified by another request, please refetch and retry", zh_cn: "笔记已被其他请求修改，请重新获取后重试"})
	ErrorNoteCreate           = NewError(30004, KindStorageFailure, lang{en: "Note creation failed", zh_cn: "笔记创建失败"})
	ErrorNoteUpdate           = NewError(30005, KindStorageFailure, lang{en: "Note update failed", zh_cn: "笔记更新失败"})
	ErrorNoteDelete           = NewError(30006, KindStorageFailure, lang{en: "Note deletion failed", zh_cn: "笔记删除失败"})
	ErrorNoteInvalidVersion   = NewError(30007, KindInvalidArgument, lang{en: "Invalid version number", zh_cn: "版本号无效"})
)

// 分享相关错误码 400xx
var (
	ErrorShareSelf              = NewError(40000, KindInvalidArgument, lang{en: "Cannot share a note with yourself", zh_cn: "不能将笔记分享给自己"})
	ErrorShareInvalidPermission = NewError(40001, KindInvalidArgument, lang{en: "Invalid share permission", zh_cn: "分享权限无效"})
	ErrorShareNotFound          = NewError(40002, KindNotFound, lang{en: "Share grant not found", zh_cn: "分享记录不存在"})
	ErrorShareUpsert            = NewError(40003, KindStorageFailure, lang{en: "Share grant save failed", zh_cn: "分享保存失败"})
)

// 附件相关错误码 500xx
var (
	ErrorAttachmentNotFound = NewError(50000, KindNotFound, lang{en: "Attachment not found", zh_cn: "附件不存在"})
	ErrorAttachmentUpload   = NewError(50001, KindStorageFailure, lang{en: "Attachment upload failed", zh_cn: "附件上传失败"})
	ErrorAttachmentTooLarge = NewError(50002, KindInvalidArgument, lang{en: "Attachment exceeds size limit", zh_cn: "附件超出大小限制"})
)
