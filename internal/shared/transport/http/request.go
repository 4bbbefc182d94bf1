package http

import (
	"strings"
)

const (
	protoHTTP11 = "HTTP/1.1"
	crlf        = "\r\n"
	headerSep   = ": "
)

// Request 是解析后的请求。
//
// 约束：
// - Path 总是以 "/" 开头
// - Params 只在路由命中时整体替换，中间件写入的值会被丢弃
// - 一个 Request 只属于一条连接，不跨 goroutine 共享
type Request struct {
	Method  Method
	Path    string
	Body    string
	Headers map[string]string
	Params  map[string]string
}

// NewRequest 构造一个空 headers/params 的请求，主要给测试和内部调用使用。
func NewRequest(method Method, path string, body string) *Request {
	return &Request{
		Method:  method,
		Path:    normalizePath(path),
		Body:    body,
		Headers: make(map[string]string),
		Params:  make(map[string]string),
	}
}

// Parse 把原始报文解析成 Request，永远不会失败：
// 请求行缺失时回退到 GET /，非法的 header 行直接跳过，body 为第一个空行之后的全部内容。
// 超出读缓冲区的数据不会出现在 raw 里，这里也不做 Content-Length 校验。
func Parse(raw string) *Request {
	head, body := splitHeadBody(raw)
	lines := strings.Split(head, "\n")

	req := NewRequest(MethodGet, "/", body)

	fields := strings.Fields(strings.TrimSuffix(lines[0], "\r"))
	if len(fields) > 0 {
		req.Method = ParseMethod(fields[0])
	}
	if len(fields) > 1 {
		req.Path = normalizePath(fields[1])
	}

	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, headerSep)
		if !ok {
			continue
		}
		req.Headers[name] = value
	}
	return req
}

// splitHeadBody 以第一个空行切分头部与 body；优先 CRLF 形式，找不到时接受裸 LF。
func splitHeadBody(raw string) (string, string) {
	if head, body, ok := strings.Cut(raw, crlf+crlf); ok {
		return head, body
	}
	if head, body, ok := strings.Cut(raw, "\n\n"); ok {
		return head, body
	}
	return raw, ""
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}

// Header 返回 header 值（大小写敏感，与解析时一致）。
func (r *Request) Header(name string) (string, bool) {
	if r == nil || r.Headers == nil {
		return "", false
	}
	v, ok := r.Headers[name]
	return v, ok
}

// SetHeader 供中间件改写请求头。
func (r *Request) SetHeader(name, value string) {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[name] = value
}

// Param 返回路由捕获的参数，不存在时返回空串。
func (r *Request) Param(name string) string {
	if r == nil || r.Params == nil {
		return ""
	}
	return r.Params[name]
}

// SetParam 写入单个参数。注意：路由命中时会整体替换 Params。
func (r *Request) SetParam(name, value string) {
	if r.Params == nil {
		r.Params = make(map[string]string)
	}
	r.Params[name] = value
}

// SetParams 整体替换参数表。
func (r *Request) SetParams(params map[string]string) {
	if params == nil {
		params = make(map[string]string)
	}
	r.Params = params
}

// Bytes 按请求侧线格式编码：请求行、headers、空行、body。
// Parse(string(req.Bytes())) 会保留 method/path/body/headers。
func (r *Request) Bytes() []byte {
	var b strings.Builder
	b.WriteString(r.Method.String())
	b.WriteByte(' ')
	b.WriteString(normalizePath(r.Path))
	b.WriteByte(' ')
	b.WriteString(protoHTTP11)
	b.WriteString(crlf)
	writeHeaders(&b, r.Headers)
	b.WriteString(crlf)
	b.WriteString(r.Body)
	return []byte(b.String())
}

func writeHeaders(b *strings.Builder, headers map[string]string) {
	for name, value := range headers {
		b.WriteString(name)
		b.WriteString(headerSep)
		b.WriteString(value)
		b.WriteString(crlf)
	}
}
