package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/peterkuimelis/memmatch/internal/audio"
	"github.com/peterkuimelis/memmatch/internal/game"
	"github.com/peterkuimelis/memmatch/internal/log"
	mmnet "github.com/peterkuimelis/memmatch/internal/net"
	"github.com/peterkuimelis/memmatch/internal/results"
	"github.com/peterkuimelis/memmatch/internal/score"
	"github.com/peterkuimelis/memmatch/internal/session"
)

//go:embed static
var staticFiles embed.FS

// AssetsPrefix is the URL path sound files are served under.
const AssetsPrefix = "/assets"

// DifficultyInfo is the JSON representation of a difficulty for /api/difficulties.
type DifficultyInfo struct {
	Name    string `json:"name"`
	Pairs   int    `json:"pairs"`
	Columns int    `json:"columns"`
}

// Options configures a Server. Scores is required.
type Options struct {
	AssetsDir string
	Session   session.Config
	Scores    *score.Store
	Publisher results.Publisher
	Events    log.EventLogger // shared by every connection
	Clock     game.Clock
	Logger    *zap.Logger
}

// Server is the memmatch web UI server. Every websocket connection plays
// its own session.
type Server struct {
	opts   Options
	logger *zap.Logger
	router chi.Router
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Scores == nil {
		opts.Scores = score.NewStore(score.NewMemoryKV(), opts.Logger)
	}
	s := &Server{opts: opts, logger: opts.Logger}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))

	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Sound files from the filesystem
	if s.opts.AssetsDir != "" {
		r.Handle(AssetsPrefix+"/*", http.StripPrefix(AssetsPrefix+"/", http.FileServer(http.Dir(s.opts.AssetsDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/difficulties", s.handleDifficulties)
		r.Get("/scores/{difficulty}", s.handleScores)
	})

	r.Get("/ws", s.handleWebSocket)
	s.router = r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleDifficulties(w http.ResponseWriter, r *http.Request) {
	infos := make([]DifficultyInfo, 0, len(game.Difficulties))
	for _, d := range game.Difficulties {
		l := d.Layout()
		infos = append(infos, DifficultyInfo{Name: d.String(), Pairs: l.Pairs, Columns: l.Columns})
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	d, ok := game.ParseDifficulty(chi.URLParam(r, "difficulty"))
	if !ok {
		http.Error(w, "unknown difficulty", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mmnet.ScoreViews(s.opts.Scores.Recent(d.String())))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// wsCodec adapts a websocket connection to the protocol's Encoder and
// Decoder.
type wsCodec struct {
	ctx  context.Context
	conn *websocket.Conn
}

func (c wsCodec) Encode(v any) error { return wsjson.Write(c.ctx, c.conn, v) }
func (c wsCodec) Decode(v any) error { return wsjson.Read(c.ctx, c.conn, v) }

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	codec := wsCodec{ctx: ctx, conn: wsConn}
	ctrl := session.New(s.opts.Session, session.Deps{
		Clock:     s.opts.Clock,
		Renderer:  mmnet.NewStreamRenderer(codec),
		Scores:    s.opts.Scores,
		Mixer:     audio.NewMixer(AssetsPrefix, s.logger),
		Events:    s.opts.Events,
		Logger:    s.logger,
		Publisher: s.opts.Publisher,
	})

	ctrl.ShowBestScores()
	err = mmnet.Serve(ctx, codec, ctrl, s.logger)

	// Cancel first so a tick blocked on a slow write releases the controller.
	cancel()
	ctrl.Close()
	switch status := websocket.CloseStatus(err); {
	case err == nil, status == websocket.StatusNormalClosure, status == websocket.StatusGoingAway:
	case errors.Is(err, context.Canceled):
	default:
		s.logger.Info("websocket session ended", zap.Error(err))
	}
	wsConn.Close(websocket.StatusNormalClosure, "")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
