package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/Laisky/vigi-tools/internal/mcp/tools"
)

// httpLogBodyLimit caps how much of a request or response body is logged.
const httpLogBodyLimit = 4096

func newMCPHooks(logger logSDK.Logger) *srv.Hooks {
	if logger == nil {
		return nil
	}

	hooks := &srv.Hooks{}

	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcp.MCPMethod, message any) {
		fields := hookLogFields(ctx, id, method)
		if message != nil {
			fields = append(fields, zap.String("request", redactHookPayload(message)))
		}
		logger.Debug("mcp request received", fields...)
	})

	hooks.AddOnSuccess(func(ctx context.Context, id any, method mcp.MCPMethod, message any, result any) {
		fields := hookLogFields(ctx, id, method)
		if result != nil {
			fields = append(fields, zap.String("response", redactHookPayload(result)))
		}
		logger.Info("mcp request succeeded", fields...)
	})

	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		fields := hookLogFields(ctx, id, method)
		if message != nil {
			fields = append(fields, zap.String("request", redactHookPayload(message)))
		}
		fields = append(fields, zap.Error(err))
		if shouldDowngradeMCPErrorLog(method, err) {
			logger.Debug("mcp request failed (non-critical)", fields...)
			return
		}
		logger.Error("mcp request failed", fields...)
	})

	hooks.AddOnRegisterSession(func(ctx context.Context, session srv.ClientSession) {
		logger.Info("mcp session registered", zap.String("session_id", session.SessionID()))
	})

	hooks.AddOnUnregisterSession(func(ctx context.Context, session srv.ClientSession) {
		logger.Info("mcp session unregistered", zap.String("session_id", session.SessionID()))
	})

	return hooks
}

// shouldDowngradeMCPErrorLog reports whether a failure is a client probing
// for a capability this server does not offer. Only tools are served.
func shouldDowngradeMCPErrorLog(method mcp.MCPMethod, err error) bool {
	if err == nil {
		return false
	}

	errText := strings.ToLower(err.Error())
	switch method {
	case mcp.MethodResourcesList, mcp.MethodResourcesTemplatesList:
		return strings.Contains(errText, "resources not supported")
	case mcp.MethodPromptsList:
		return strings.Contains(errText, "prompts not supported")
	default:
		return false
	}
}

func hookLogFields(ctx context.Context, id any, method mcp.MCPMethod) []zap.Field {
	fields := []zap.Field{
		zap.Any("request_id", id),
		zap.String("method", string(method)),
	}

	if session := srv.ClientSessionFromContext(ctx); session != nil {
		fields = append(fields, zap.String("session_id", session.SessionID()))
	}

	return fields
}

// withHTTPLogging logs every JSON-RPC exchange at debug level. Tool calls
// additionally name the tool and its target, the news endpoint or the page
// url, so a request can be traced without reading the raw body.
func withHTTPLogging(next http.Handler, logger logSDK.Logger) http.Handler {
	if next == nil {
		return nil
	}
	if logger == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startAt := time.Now()
		body, err := readAndRestoreRequestBody(r)
		if err != nil {
			logger.Error("read request body", zap.Error(err))
		}

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("mcp_session_id", strings.TrimSpace(r.Header.Get(srv.HeaderKeySessionID))),
		}
		fields = append(fields, describeRPCCall(body)...)

		logged, truncated := truncateForLog(body, httpLogBodyLimit)
		logger.Debug("incoming mcp request", append(fields,
			zap.String("body", redactMCPBody(logged)),
			zap.Bool("body_truncated", truncated),
		)...)

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		logger.Debug("mcp request served", append(fields,
			zap.Int("status", sw.Status()),
			zap.Duration("cost", time.Since(startAt)),
		)...)
	})
}

// rpcCall is the part of a JSON-RPC request that identifies a tool call.
type rpcCall struct {
	Method string `json:"method"`
	Params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"params"`
}

// describeRPCCall returns log fields naming the rpc method and, for tool
// calls, the tool and what it was asked to reach. Bodies that are not a
// single JSON-RPC request yield no fields.
func describeRPCCall(body []byte) []zap.Field {
	var call rpcCall
	if len(body) == 0 || json.Unmarshal(body, &call) != nil || call.Method == "" {
		return nil
	}

	fields := []zap.Field{zap.String("rpc_method", call.Method)}
	if call.Method != string(mcp.MethodToolsCall) {
		return fields
	}

	fields = append(fields, zap.String("tool", call.Params.Name))
	switch call.Params.Name {
	case tools.NewsSearchToolName:
		if endpoint, ok := call.Params.Arguments["endpoint"].(string); ok {
			fields = append(fields, zap.String("news_endpoint", endpoint))
		}
	case tools.WebScrapeToolName:
		if target, ok := call.Params.Arguments["url"].(string); ok {
			fields = append(fields, zap.String("scrape_url", target))
		}
	}

	return fields
}

func readAndRestoreRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	if err := r.Body.Close(); err != nil {
		return nil, errors.Wrap(err, "close body")
	}

	r.Body = io.NopCloser(bytes.NewReader(data))
	return data, nil
}

// statusWriter records the response status. Flush must keep working since
// streamable HTTP may answer with server-sent events.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	return sw.ResponseWriter.Write(b)
}

func (sw *statusWriter) Status() int {
	if sw.status == 0 {
		return http.StatusOK
	}
	return sw.status
}

func (sw *statusWriter) Flush() {
	if flusher, ok := sw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func truncateForLog(data []byte, limit int) (string, bool) {
	if len(data) <= limit {
		return string(data), false
	}
	return string(data[:limit]), true
}
