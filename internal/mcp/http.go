package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
)

// Route paths served by the router.
const (
	PathMCP    = "/mcp"
	PathHealth = "/health"
)

const shutdownTimeout = 10 * time.Second

// NewRouter mounts the MCP handler and a health probe on a gin engine.
func NewRouter(s *Server, logger logSDK.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(
			gmw.WithLogger(logger.Named("gin")),
		),
	)

	router.GET(PathHealth, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"tools":  s.AvailableToolNames(),
		})
	})
	router.Any(PathMCP, gin.WrapH(s.Handler()))

	return router
}

// RunServer serves handler on addr until ctx is canceled, then shuts down
// gracefully.
func RunServer(ctx context.Context, addr string, handler http.Handler, logger logSDK.Logger) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on http", zap.String("addr", addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "listen on %q", addr)
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown http server")
	}

	return nil
}
