package tcp

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"

	"Iron/internal/shared/transport/http"
	"Iron/internal/shared/transport/router"
	"Iron/internal/shared/utils"
	"Iron/modules/kit/logx"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeConn 每次 Read 最多返回剩余的输入，写入内容收集在 out 里。
type fakeConn struct {
	net.Conn

	mu       sync.Mutex
	in       *strings.Reader
	out      bytes.Buffer
	writeErr error
	closed   bool
}

func newFakeConn(raw string) *fakeConn {
	return &fakeConn{in: strings.NewReader(raw)}
}

func (c *fakeConn) Read(b []byte) (int, error) {
	return c.in.Read(b)
}

func (c *fakeConn) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	return c.out.Write(b)
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50000}
}

func (c *fakeConn) written() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.String()
}

func serveFake(t *testing.T, s *Server, c *fakeConn) string {
	t.Helper()
	if !s.trackConn(c) {
		t.Fatalf("trackConn failed")
	}
	s.serveConn(context.Background(), c)
	if !c.closed {
		t.Fatalf("连接处理完后应关闭")
	}
	return c.written()
}

func echoRouter() *router.Router {
	return router.NewBuilder().
		POST("/echo", func(ctx context.Context, req *http.Request) *http.Response {
			return http.NewResponse(req.Body)
		}).
		Build()
}

func observed() (logx.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logx.NewZapLogger(zap.New(core)), logs
}

func TestServeConn_读缓冲区截断(t *testing.T) {
	head := "POST /echo HTTP/1.1\r\n\r\n"
	s := NewServer(echoRouter(), WithReadBufferSize(len(head)+3))

	got := serveFake(t, s, newFakeConn(head+"abcdefgh"))
	if !strings.HasSuffix(got, "\r\n\r\nabc") {
		t.Fatalf("期望 body 截断为 abc, got=%q", got)
	}
}

func TestServeConn_缓冲区足够时完整读取(t *testing.T) {
	s := NewServer(echoRouter())
	body := strings.Repeat("x", 500)
	got := serveFake(t, s, newFakeConn("POST /echo HTTP/1.1\r\n\r\n"+body))
	if got != "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\n"+body {
		t.Fatalf("unexpected response len=%d", len(got))
	}
}

func TestServeConn_客户端未发送数据即关闭(t *testing.T) {
	log, logs := observed()
	s := NewServer(echoRouter(), WithLogger(log))

	if got := serveFake(t, s, newFakeConn("")); got != "" {
		t.Fatalf("不应写回任何内容, got=%q", got)
	}
	if n := logs.FilterField(zap.String("error_code", "CONN_READ_FAILED")).Len(); n != 1 {
		t.Fatalf("期望 1 条读失败日志, got=%d all=%v", n, logs.All())
	}
	if n := logs.FilterMessage("access").FilterField(zap.String("error_reason", "read_failed")).Len(); n != 1 {
		t.Fatalf("期望访问日志带 read_failed, got=%d", n)
	}
}

func TestServeConn_写失败只记录日志(t *testing.T) {
	log, logs := observed()
	s := NewServer(echoRouter(), WithLogger(log))

	c := newFakeConn("POST /echo HTTP/1.1\r\n\r\nhi")
	c.writeErr = errors.New("broken pipe")
	serveFake(t, s, c)

	if n := logs.FilterField(zap.String("error_code", "CONN_WRITE_FAILED")).Len(); n != 1 {
		t.Fatalf("期望 1 条写失败日志, got=%d all=%v", n, logs.All())
	}
}

func TestServeConn_访问日志(t *testing.T) {
	log, logs := observed()
	gen, _ := utils.NewSnowflake(3)
	s := NewServer(echoRouter(), WithLogger(log), WithConnIDs(gen))

	serveFake(t, s, newFakeConn("POST /echo HTTP/1.1\r\n\r\nhi"))
	serveFake(t, s, newFakeConn("GET /missing HTTP/1.1\r\n\r\n"))

	access := logs.FilterMessage("access").All()
	if len(access) != 2 {
		t.Fatalf("期望 2 条访问日志, got=%v", logs.All())
	}
	first := access[0].ContextMap()
	if first["action"] != "POST /echo" || first["status"] != int64(200) || first["route"] != "/echo" {
		t.Fatalf("unexpected access log: %v", first)
	}
	if id, _ := first["conn_id"].(int64); utils.NodeID(id) != 3 {
		t.Fatalf("conn_id 应来自节点 3 的生成器, got=%v", first["conn_id"])
	}
	if access[1].Level != zapcore.WarnLevel || access[1].ContextMap()["status"] != int64(404) {
		t.Fatalf("404 应记 WARN, got=%v", access[1])
	}
}
