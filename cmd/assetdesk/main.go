package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"assetdesk/internal/api"
	"assetdesk/internal/db"
	"assetdesk/internal/store"
	"assetdesk/internal/web"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

// envDefault returns the environment variable value, or def if unset.
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// .env is optional; flags and real environment variables win over it.
	godotenv.Load()

	fs := flag.NewFlagSet("assetdesk", flag.ContinueOnError)

	var dbPath string
	fs.StringVar(&dbPath, "db", envDefault("ASSETDESK_DB", "assetdesk.sqlite3"), "")
	fs.StringVar(&dbPath, "d", envDefault("ASSETDESK_DB", "assetdesk.sqlite3"), "")

	var addr string
	fs.StringVar(&addr, "addr", envDefault("ASSETDESK_ADDR", ":8080"), "")
	fs.StringVar(&addr, "a", envDefault("ASSETDESK_ADDR", ":8080"), "")

	var adminName string
	fs.StringVar(&adminName, "name", envDefault("ASSETDESK_ADMIN_NAME", "Admin"), "")
	fs.StringVar(&adminName, "n", envDefault("ASSETDESK_ADMIN_NAME", "Admin"), "")

	var adminEmail string
	fs.StringVar(&adminEmail, "email", envDefault("ASSETDESK_ADMIN_EMAIL", "admin@localhost"), "")
	fs.StringVar(&adminEmail, "e", envDefault("ASSETDESK_ADMIN_EMAIL", "admin@localhost"), "")

	var logPath string
	fs.StringVar(&logPath, "log", envDefault("ASSETDESK_LOG", ""), "")
	fs.StringVar(&logPath, "l", envDefault("ASSETDESK_LOG", ""), "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: assetdesk [flags]

Flags:
  -d, -db <path>          SQLite database path (default: assetdesk.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -n, -name <name>        admin display name on first run (default: Admin)
  -e, -email <email>      admin login email on first run (default: admin@localhost)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit

Each flag can also be set through the environment (ASSETDESK_DB,
ASSETDESK_ADDR, ASSETDESK_ADMIN_NAME, ASSETDESK_ADMIN_EMAIL,
ASSETDESK_LOG), optionally via a .env file in the working directory.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	closeLog, err := setupLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	// Open database and run migrations (idempotent).
	database, err := db.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "path", dbPath)

	ctx := context.Background()

	// Create the first admin account if none exists yet. The generated
	// password is printed once and cannot be recovered.
	count, err := store.CountAdmins(ctx, database)
	if err != nil {
		slog.Error("failed to count admins", "error", err)
		os.Exit(1)
	}
	if count == 0 {
		password, err := bootstrapAdmin(ctx, database, adminName, adminEmail)
		if err != nil {
			slog.Error("failed to create admin account", "error", err)
			os.Exit(1)
		}
		printBootstrapResult(adminName, adminEmail, password)
	}

	// Expired revoked tokens accumulate across restarts; drop them now.
	if err := store.PruneRevokedTokens(ctx, database); err != nil {
		slog.Warn("failed to prune revoked tokens", "error", err)
	}

	// Load JWT secret from database (auto-generated on first run).
	jwtSecret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		slog.Error("failed to get JWT secret", "error", err)
		os.Exit(1)
	}

	// Set up routers.
	apiRouter := api.NewRouter(database, jwtSecret)
	webRouter, err := web.NewRouter(database, jwtSecret)
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	handler := api.LoggingMiddleware(mux)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}

// bootstrapAdmin creates the initial admin account with a random password
// and returns the plaintext password.
func bootstrapAdmin(ctx context.Context, database *sql.DB, name, email string) (string, error) {
	password, err := generatePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	if _, err := store.CreateAdmin(ctx, database, name, email, string(hash)); err != nil {
		return "", err
	}

	return password, nil
}

// printBootstrapResult prints the generated admin credentials to stdout.
func printBootstrapResult(name, email, password string) {
	fmt.Println("Admin account created:")
	fmt.Printf("  Name:     %s\n", name)
	fmt.Printf("  Email:    %s\n", email)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password — it cannot be recovered.")
	fmt.Println("The admin can register more accounts after logging in.")
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
