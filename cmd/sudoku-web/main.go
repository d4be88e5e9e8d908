package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	httpadapter "svw.info/playsudoku/internal/adapters/http"
	"svw.info/playsudoku/internal/game"
	"svw.info/playsudoku/internal/generator"
	"svw.info/playsudoku/internal/hint"
	"svw.info/playsudoku/internal/infrastructure/storage"
	"svw.info/playsudoku/internal/namegen"
	"svw.info/playsudoku/internal/solver"
	"svw.info/playsudoku/internal/validator"
)

var (
	listenAddr string
	dbPath     string
	logLevel   string
)

func main() {
	command := &cobra.Command{
		Use:   "sudoku-web",
		Short: "Sudoku web app: puzzle generation, play state, persistence",
		Run:   run,
	}
	command.Flags().StringVarP(&listenAddr, "listen", "l", ":8080", "listen address")
	command.Flags().StringVarP(&dbPath, "db", "d", "sudoku.db", "sqlite database path")
	command.Flags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	level := zapcore.InfoLevel
	_ = level.Set(logLevel)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// statusWriter captures HTTP status and bytes written for the request log.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func requestLogger(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Int("bytes", sw.bytes),
			zap.Duration("dur", time.Since(start).Round(time.Millisecond)),
		)
	})
}

func run(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer logger.Sync()

	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Fatal("open storage", zap.Error(err))
	}
	defer store.Close()

	s := solver.NewBacktracking()
	gen := generator.NewUnique(s)
	val := validator.New()
	hin := hint.NewSingles(val)
	names := namegen.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	svc := game.NewService(gen, val, hin, s, store, names)
	h := httpadapter.New(svc, store)

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           requestLogger(logger, h.Router()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", listenAddr), zap.String("db", dbPath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)
	<-osSignals

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}
