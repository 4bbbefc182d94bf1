package http

import (
	"io"
	"strconv"
	"strings"
)

const (
	StatusOK                  = 200
	StatusUnauthorized        = 401
	StatusNotFound            = 404
	StatusInternalServerError = 500
)

const (
	HeaderContentType = "Content-Type"
	defaultMediaType  = "text/plain"
)

// reasonPhrases 只收录这几个状态码，其余一律输出 "Unknown"。
var reasonPhrases = map[int]string{
	StatusOK:                  "OK",
	StatusNotFound:            "Not Found",
	StatusInternalServerError: "Internal Server Error",
}

// Response 是待写回连接的响应，构造时总带有 Content-Type: text/plain。
type Response struct {
	Status  int
	Body    string
	Headers map[string]string
}

// NewResponse 构造 200 响应。
func NewResponse(body string) *Response {
	return &Response{
		Status:  StatusOK,
		Body:    body,
		Headers: map[string]string{HeaderContentType: defaultMediaType},
	}
}

// NewStatusResponse 构造指定状态码的响应。
func NewStatusResponse(status int, body string) *Response {
	resp := NewResponse(body)
	resp.Status = status
	return resp
}

// NotFound 是路由未命中时的兜底响应。
func NotFound() *Response {
	return NewStatusResponse(StatusNotFound, "404 Not Found")
}

func (r *Response) SetHeader(name, value string) {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[name] = value
}

// ReasonPhrase 返回状态行里的原因短语。
func ReasonPhrase(status int) string {
	if reason, ok := reasonPhrases[status]; ok {
		return reason
	}
	return "Unknown"
}

// Bytes 序列化响应。header 顺序取决于 map 遍历顺序，客户端不能依赖。
func (r *Response) Bytes() []byte {
	var b strings.Builder
	b.WriteString(protoHTTP11)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(r.Status))
	b.WriteByte(' ')
	b.WriteString(ReasonPhrase(r.Status))
	b.WriteString(crlf)
	writeHeaders(&b, r.Headers)
	b.WriteString(crlf)
	b.WriteString(r.Body)
	return []byte(b.String())
}

// WriteTo 把完整响应写入 w，实现 io.WriterTo。
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Bytes())
	return int64(n), err
}
