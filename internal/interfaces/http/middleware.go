package http

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jhoicas/seikyusho-api/internal/application/dto"
	"github.com/jhoicas/seikyusho-api/pkg/logger"
)

// Locals keys.
const (
	LocalRequestID  = "request_id"
	LocalLogger     = "logger"
	HeaderRequestID = "X-Request-ID"
)

// RequestLogging asigna un X-Request-ID (se respeta el del cliente) y registra
// cada petición con método, ruta, estado y latencia.
func RequestLogging(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(HeaderRequestID, requestID)
		reqLog := logger.FromZerolog(log.With().Str("request_id", requestID).Logger())
		c.Locals(LocalRequestID, requestID)
		c.Locals(LocalLogger, reqLog)

		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler escriba la respuesta antes de leer el estado.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}

// RequestLogger devuelve el logger de la petición (con request_id) o un Nop fuera del middleware.
func RequestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(LocalLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}

// GetRequestID devuelve el identificador de la petición.
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// ── Rate limiting ─────────────────────────────────────────────────────────────

// RateLimiterConfig límite por IP (token bucket).
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration
	EntryTTL          time.Duration
}

// IPRateLimiter un limitador por IP cliente; las entradas inactivas se purgan.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter crea el limitador. La limpieza periódica termina al cancelar ctx.
func NewIPRateLimiter(ctx context.Context, cfg RateLimiterConfig) *IPRateLimiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	if cfg.EntryTTL <= 0 {
		cfg.EntryTTL = 10 * time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	rl := &IPRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
		ttl:      cfg.EntryTTL,
		now:      time.Now,
	}
	go rl.cleanupLoop(ctx, cfg.CleanupInterval)
	return rl
}

func (rl *IPRateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = rl.now()
	return entry.limiter
}

func (rl *IPRateLimiter) cleanupLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *IPRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.ttl)
	for ip, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, ip)
		}
	}
}

// Size número de IPs con limitador activo.
func (rl *IPRateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Middleware responde 429 cuando la IP agota su cupo.
func (rl *IPRateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limiter := rl.get(c.IP())
		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !limiter.Allow() {
			c.Set("X-RateLimit-Remaining", "0")
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas solicitudes, intente de nuevo en unos segundos"})
		}
		c.Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		return c.Next()
	}
}
