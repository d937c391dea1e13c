// Package server exposes heightmap generation over a websocket so a browser
// or engine preview can request maps interactively.
//
// Protocol: the client sends a JSON Request per map; the server replies with
// one JSON Response per request on the same connection, in order.
package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/katalvlaran/heightfield/noise"
)

var (
	// ErrTooLarge indicates a request whose width*height exceeds Config.MaxCells.
	ErrTooLarge = errors.New("server: requested map exceeds cell limit")

	// ErrTooManyOctaves indicates a request above Config.MaxOctaves.
	ErrTooManyOctaves = errors.New("server: requested octaves exceed limit")

	// ErrInvalidParams indicates noise parameters that cannot produce finite heights.
	ErrInvalidParams = errors.New("server: invalid noise parameters")
)

// Request limits applied when Config leaves them unset.
const (
	DefaultMaxCells   = 1 << 20
	DefaultMaxOctaves = 16
)

// offsetSpan bounds the magnitude of a drawn octave offset.
const offsetSpan = 100000

const shutdownTimeout = 5 * time.Second

// Config configures the preview server. Zero limits fall back to the defaults.
type Config struct {
	Addr       string
	MaxCells   int
	MaxOctaves int
	Workers    int
}

// Request asks for one heightmap.
type Request struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Noise  noise.Params `json:"noise"`
}

// Response carries one heightmap (row-major) or an error message.
type Response struct {
	Width   int       `json:"width,omitempty"`
	Height  int       `json:"height,omitempty"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Heights []float64 `json:"heights,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// Server is the websocket preview endpoint.
type Server struct {
	cfg      Config
	logger   *zap.Logger
	upgrader websocket.Upgrader

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}
}

// New builds a Server. A nil logger is replaced with a no-op logger.
func New(cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = noise.DefaultWorkers
	}
	if cfg.MaxCells < 1 {
		cfg.MaxCells = DefaultMaxCells
	}
	if cfg.MaxOctaves < 1 {
		cfg.MaxOctaves = DefaultMaxOctaves
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // preview tool, any origin
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler routes /ws (websocket) and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down and closes
// every open websocket.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("Preview server starting", zap.String("addr", s.cfg.Addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeClients()
	<-errCh
	s.logger.Info("Preview server stopped")

	return err
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	s.track(conn)
	defer s.untrack(conn)

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		resp := s.generate(req)
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Warn("WebSocket write error", zap.Error(err))
			return
		}
	}
}

// generate validates req and produces its Response.
func (s *Server) generate(req Request) Response {
	if err := s.validate(req); err != nil {
		s.logger.Debug("Rejected request", zap.Error(err))
		return Response{Error: err.Error()}
	}

	start := time.Now()
	g, err := noise.Generate(req.Width, req.Height, req.Noise,
		noise.WithWorkers(s.cfg.Workers), noise.WithLogger(s.logger))
	if err != nil {
		return Response{Error: err.Error()}
	}
	lo, hi := g.MinMax()
	s.logger.Info("Generated heightmap",
		zap.Int("width", req.Width),
		zap.Int("height", req.Height),
		zap.Int64("seed", req.Noise.Seed),
		zap.Stringer("mode", req.Noise.Mode),
		zap.Duration("elapsed", time.Since(start)))

	return Response{
		Width:   g.Width(),
		Height:  g.Height(),
		Min:     lo,
		Max:     hi,
		Heights: g.Data(),
	}
}

// validate rejects requests that are malformed or too expensive to serve.
// Area is compared by division so huge sizes cannot wrap.
func (s *Server) validate(req Request) error {
	if req.Width <= 0 || req.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", req.Width, req.Height, noise.ErrInvalidDimensions)
	}
	if req.Width > s.cfg.MaxCells/req.Height {
		return fmt.Errorf("%dx%d > %d: %w", req.Width, req.Height, s.cfg.MaxCells, ErrTooLarge)
	}
	if req.Noise.Octaves > s.cfg.MaxOctaves {
		return fmt.Errorf("octaves=%d > %d: %w", req.Noise.Octaves, s.cfg.MaxOctaves, ErrTooManyOctaves)
	}
	if err := validateNoise(req.Width, req.Height, req.Noise); err != nil {
		return err
	}
	if rw := req.Noise.Runway; rw != nil && rw.Enabled {
		if err := rw.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// validateNoise checks that p yields finite heights: persistence within [0,1]
// and the largest sample coordinate representable as a float64.
func validateNoise(width, height int, p noise.Params) error {
	if math.IsNaN(p.Persistence) || p.Persistence < 0 || p.Persistence > 1 {
		return fmt.Errorf("persistence=%g: %w", p.Persistence, ErrInvalidParams)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"scale", p.Scale}, {"lacunarity", p.Lacunarity}, {"offset.x", p.Offset.X}, {"offset.y", p.Offset.Y},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s=%g: %w", f.name, f.v, ErrInvalidParams)
		}
	}

	scale := p.Scale
	if scale <= 0 {
		scale = noise.MinScale
	}
	lacunarity := math.Max(p.Lacunarity, noise.MinLacunarity)
	octaves := max(p.Octaves, noise.MinOctaves)
	reach := offsetSpan + math.Max(math.Abs(p.Offset.X), math.Abs(p.Offset.Y)) + float64(max(width, height))
	if coord := reach / scale * math.Pow(lacunarity, float64(octaves-1)); math.IsInf(coord, 0) || math.IsNaN(coord) {
		return fmt.Errorf("sample coordinates overflow (scale=%g, lacunarity=%g, octaves=%d): %w",
			p.Scale, p.Lacunarity, octaves, ErrInvalidParams)
	}

	return nil
}

func (s *Server) track(conn *websocket.Conn) {
	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	s.clientsMu.Unlock()
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.clientsMu.Lock()
	delete(s.clients, conn)
	s.clientsMu.Unlock()
	_ = conn.Close()
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}
}
