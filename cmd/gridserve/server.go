package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/schema"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/decker502/minegrid/pkg/config"
	"github.com/decker502/minegrid/pkg/document"
	"github.com/decker502/minegrid/pkg/render"
)

// 单个请求的限制
const (
	maxBodyBytes = 4 << 20
	maxPixels    = 64_000_000
)

// RenderParams /render 查询参数
type RenderParams struct {
	Format string  `schema:"format"`
	Width  float64 `schema:"width"`
	Scale  float64 `schema:"scale"`
	Reveal *bool   `schema:"reveal"`
}

// Server 网格渲染 HTTP 服务
type Server struct {
	cfg      *config.EditorConfig
	renderer *render.Renderer
	textFont *render.Font
	bombFont *render.Font
	decoder  *schema.Decoder
	log      logrus.FieldLogger
}

// NewServer 创建渲染服务
func NewServer(cfg *config.EditorConfig, textFont, bombFont *render.Font, log logrus.FieldLogger) *Server {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Server{
		cfg:      cfg,
		renderer: render.NewRenderer(render.NewTheme(cfg)),
		textFont: textFont,
		bombFont: bombFont,
		decoder:  decoder,
		log:      log.WithField("component", "gridserve"),
	}
}

// Handler 返回带 CORS 和访问日志的路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return wrap(mux, s.logging, corsMiddleware())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var params RenderParams
	if err := s.decoder.Decode(&params, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := s.withDefaults(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, skipped, err := document.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	g, err := doc.Grid()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l := config.CalculateLayout(g.Cols(), g.Rows(), params.Width)
	if params.Format == "png" {
		px := float64(l.PixelWidth()) * float64(l.PixelHeight()) * params.Scale * params.Scale
		if px > maxPixels {
			http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
			return
		}
	}

	opts := render.Options{
		RevealBombs: *params.Reveal,
		BombCount:   g.BombCount(),
		TextFont:    s.textFont,
		BombFont:    s.bombFont,
	}

	var buf bytes.Buffer
	contentType := "image/svg+xml"
	if params.Format == "png" {
		contentType = "image/png"
		err = s.renderer.WritePNG(&buf, g, l, opts, params.Scale)
	} else {
		err = s.renderer.WriteSVG(&buf, g, l, opts)
	}
	if err != nil {
		s.log.WithError(err).Error("render failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	s.log.WithFields(logrus.Fields{
		"format":  params.Format,
		"cols":    g.Cols(),
		"rows":    g.Rows(),
		"bombs":   g.BombCount(),
		"skipped": skipped,
	}).Debug("rendered")

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Skipped-Entries", strconv.Itoa(skipped))
	w.Write(buf.Bytes())
}

// withDefaults 填充缺省参数并校验
func (s *Server) withDefaults(p RenderParams) (RenderParams, error) {
	if p.Format == "" {
		p.Format = "png"
	}
	if p.Format != "png" && p.Format != "svg" {
		return p, fmt.Errorf("unknown format %q", p.Format)
	}
	if p.Width == 0 {
		p.Width = s.cfg.CanvasWidth
	}
	if p.Width < 0 || p.Width > 10_000 {
		return p, fmt.Errorf("width out of range: %v", p.Width)
	}
	if p.Scale == 0 {
		p.Scale = s.cfg.ExportScale
	}
	if p.Scale < 0 || p.Scale > 8 {
		return p, fmt.Errorf("scale out of range: %v", p.Scale)
	}
	if p.Reveal == nil {
		reveal := s.cfg.RevealBombs
		p.Reveal = &reveal
	}
	return p, nil
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || errors.Is(err, document.ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// Middleware HTTP 中间件
type Middleware func(http.Handler) http.Handler

func wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}

func corsMiddleware() Middleware {
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowedMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:  []string{"Content-Type"},
		ExposedHeaders:  []string{"X-Skipped-Entries"},
	}).Handler
}

type loggingWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *loggingWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &loggingWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"uri":        r.URL.RequestURI(),
			"status":     wrapped.statusCode,
			"remoteAddr": r.RemoteAddr,
			"durationMs": time.Since(start).Milliseconds(),
		}).Info("handled request")
	})
}
