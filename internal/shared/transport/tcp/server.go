package tcp

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"Iron/internal/shared/transport/router"
	"Iron/internal/shared/utils"
	"Iron/modules/kit/errx"
	"Iron/modules/kit/logx"

	"go.uber.org/zap"
)

// DefaultReadBufferSize 是单次读取请求的默认缓冲区大小，超出部分不会被解析。
const DefaultReadBufferSize = 1024

// ErrServerClosed 在 Shutdown 之后由 Serve/ListenAndServe 返回。
var ErrServerClosed = errors.New("tcp: server closed")

// Server 监听一个地址，每个连接一个 goroutine：读一次、分发、写回、关闭。
// Router 在启动前构建完成，之后所有连接只读共享。
type Server struct {
	router         *router.Router
	log            logx.Logger
	readBufferSize int
	connIDs        *utils.Snowflake

	mu       sync.Mutex
	ln       net.Listener
	conns    map[net.Conn]struct{}
	shutdown bool
	wg       sync.WaitGroup
}

type Option func(*Server)

// WithReadBufferSize 设置单次读取的缓冲区大小（n <= 0 时忽略）。
func WithReadBufferSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.readBufferSize = n
		}
	}
}

func WithLogger(l logx.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithConnIDs 指定连接编号生成器。
func WithConnIDs(gen *utils.Snowflake) Option {
	return func(s *Server) {
		if gen != nil {
			s.connIDs = gen
		}
	}
}

func NewServer(r *router.Router, opts ...Option) *Server {
	if r == nil {
		panic(errx.ErrInvalidRoute.WithReason("nil router"))
	}
	s := &Server{
		router:         r,
		log:            logx.Nop(),
		readBufferSize: DefaultReadBufferSize,
		conns:          make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.connIDs == nil {
		s.connIDs, _ = utils.NewSnowflake(0)
	}
	return s
}

// ListenAndServe 绑定 addr 后进入 accept 循环（阻塞）。
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errx.ErrListenFailed.WithData("addr", addr).WithCause(err)
	}
	return s.Serve(ctx, ln)
}

// Serve 在 ln 上循环 accept，直到 Shutdown 或 ctx 结束，此时返回 ErrServerClosed。
// accept 失败只记录日志并退避重试，不会结束循环。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if !s.trackListener(ln) {
		_ = ln.Close()
		return ErrServerClosed
	}
	s.log.Info("listening", zap.String("addr", ln.Addr().String()))

	stop := context.AfterFunc(ctx, func() { _ = s.closeListener() })
	defer stop()

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isShutdown() || errors.Is(err, net.ErrClosed) {
				return ErrServerClosed
			}
			backoff = nextBackoff(backoff)
			logx.ReportSysErrorWithLoggerContext(ctx, s.log,
				logx.NewSysLog("accept", errx.ErrAcceptFailed.WithCause(err)),
				zap.Duration("retry_in", backoff))
			time.Sleep(backoff)
			continue
		}
		backoff = 0

		if !s.trackConn(conn) {
			_ = conn.Close()
			return ErrServerClosed
		}
		go s.serveConn(ctx, conn)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	const maxBackoff = time.Second
	if d == 0 {
		return 5 * time.Millisecond
	}
	if d *= 2; d > maxBackoff {
		return maxBackoff
	}
	return d
}

// Addr 返回监听地址，未监听时为 nil。
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown 关闭监听并等待进行中的连接处理完成；ctx 到期时强制关闭剩余连接。
func (s *Server) Shutdown(ctx context.Context) error {
	_ = s.closeListener()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.mu.Lock()
		for c := range s.conns {
			_ = c.Close()
		}
		s.mu.Unlock()
		<-done
		return ctx.Err()
	}
}

func (s *Server) trackListener(ln net.Listener) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdown {
		return false
	}
	s.ln = ln
	return true
}

func (s *Server) closeListener() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) isShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown
}

// trackConn 在 Shutdown 之后拒绝新连接；wg 与 shutdown 标志在同一把锁下维护。
func (s *Server) trackConn(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdown {
		return false
	}
	s.conns[c] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrackConn(c net.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	s.wg.Done()
}
