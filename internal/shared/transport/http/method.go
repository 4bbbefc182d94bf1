package http

// Method 表示请求方法。分发时只做相等比较。
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

var knownMethods = map[string]Method{
	string(MethodGet):     MethodGet,
	string(MethodPost):    MethodPost,
	string(MethodPut):     MethodPut,
	string(MethodDelete):  MethodDelete,
	string(MethodPatch):   MethodPatch,
	string(MethodHead):    MethodHead,
	string(MethodOptions): MethodOptions,
}

// ParseMethod 把请求行里的方法 token 转成 Method。
// 无法识别的 token 一律回退为 GET（宽松解析，不视为错误）。
func ParseMethod(token string) Method {
	if m, ok := knownMethods[token]; ok {
		return m
	}
	return MethodGet
}

func (m Method) String() string {
	return string(m)
}
