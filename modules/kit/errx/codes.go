package errx

// 跨包统一的系统类错误码。
//
// 约束：
// - 这里只放配置期/传输层的技术错误，便于日志检索和告警
// - 面向客户端的拒绝（401 等）走中间件短路响应，不走 errx

const (
	// CodeInternal 表示不可预期的内部错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeInvalidConfig 表示配置文件缺失或无法解析。
	CodeInvalidConfig Code = "INVALID_CONFIG"
	// CodeInvalidPattern 表示路由模板无法编译（注册期致命错误）。
	CodeInvalidPattern Code = "INVALID_ROUTE_PATTERN"
	// CodeNestedGroup 表示试图在分组上再注册分组（只支持一层）。
	CodeNestedGroup Code = "NESTED_GROUP"
	// CodeInvalidRoute 表示注册了空 handler/空中间件等非法路由配置。
	CodeInvalidRoute Code = "INVALID_ROUTE"
	// CodeListenFailed 表示监听地址绑定失败。
	CodeListenFailed Code = "LISTEN_FAILED"
	// CodeAcceptFailed 表示 accept 失败（记录后继续循环）。
	CodeAcceptFailed Code = "ACCEPT_FAILED"
	// CodeConnRead 表示读连接失败（放弃该连接）。
	CodeConnRead Code = "CONN_READ_FAILED"
	// CodeConnWrite 表示写连接失败（放弃该连接）。
	CodeConnWrite Code = "CONN_WRITE_FAILED"
)

// 统一系统类哨兵错误（允许 WithData/WithCause 派生新对象）。
var (
	ErrInternal       = NewSys(CodeInternal, "内部错误")
	ErrInvalidConfig  = NewSys(CodeInvalidConfig, "配置无效")
	ErrInvalidPattern = NewSys(CodeInvalidPattern, "路由模板无效")
	ErrNestedGroup    = NewSys(CodeNestedGroup, "不支持嵌套路由分组")
	ErrInvalidRoute   = NewSys(CodeInvalidRoute, "路由注册参数无效")
	ErrListenFailed   = NewSys(CodeListenFailed, "监听失败")
	ErrAcceptFailed   = NewSys(CodeAcceptFailed, "接受连接失败")
	ErrConnRead       = NewSys(CodeConnRead, "读取连接失败")
	ErrConnWrite      = NewSys(CodeConnWrite, "写入连接失败")
)
