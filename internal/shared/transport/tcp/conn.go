package tcp

import (
	"context"
	"fmt"
	"net"

	"Iron/internal/shared/transport"
	"Iron/internal/shared/transport/http"
	"Iron/modules/kit/errx"
	"Iron/modules/kit/logx"

	"go.uber.org/zap"
)

// serveConn 处理一条连接：单次读取 -> 解析 -> 分发 -> 写回 -> 关闭，不支持 keep-alive。
// 读写失败只影响当前连接。
func (s *Server) serveConn(parent context.Context, conn net.Conn) {
	// 关闭监听不应打断进行中的请求。
	ctx := transport.NewContextWithParent(context.WithoutCancel(parent), "conn")
	transport.SetConn(ctx, s.connIDs.NextID(), conn.RemoteAddr().String())

	defer func() {
		if rec := recover(); rec != nil {
			err := errx.ErrInternal.WithData("panic", fmt.Sprint(rec)).WithCause(fmt.Errorf("%v", rec))
			transport.SetErrorReason(ctx, "panic")
			logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog("serve_conn", err))
		}
		_ = conn.Close()
		transport.WriteAccessLog(ctx, s.log)
		s.untrackConn(conn)
	}()

	req, ok := s.readRequest(ctx, conn)
	if !ok {
		return
	}
	transport.SetAction(ctx, req.Method.String()+" "+req.Path)
	s.log.WithContext(ctx).Debug("received request",
		zap.String("method", req.Method.String()),
		zap.String("path", req.Path))

	resp := s.router.Handle(ctx, req)
	transport.SetStatus(ctx, resp.Status)

	if _, err := resp.WriteTo(conn); err != nil {
		transport.SetErrorReason(ctx, "write_failed")
		logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog("write_response",
			errx.ErrConnWrite.WithData("remote_addr", conn.RemoteAddr().String()).WithCause(err)))
	}
}

// readRequest 只调用一次 Read；超出缓冲区的数据被截断，不再读取。
func (s *Server) readRequest(ctx context.Context, conn net.Conn) (*http.Request, bool) {
	buf := make([]byte, s.readBufferSize)
	n, err := conn.Read(buf)
	if n == 0 {
		if err == nil {
			err = fmt.Errorf("empty read")
		}
		transport.SetErrorReason(ctx, "read_failed")
		logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog("read_request",
			errx.ErrConnRead.WithData("remote_addr", conn.RemoteAddr().String()).WithCause(err)))
		return nil, false
	}
	return http.Parse(string(buf[:n])), true
}
