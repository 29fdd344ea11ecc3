// Copyright 2026 The ComplyCore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/complycore/complycore/internal/audit"
	"github.com/complycore/complycore/internal/auditlog"
	"github.com/complycore/complycore/internal/category"
	"github.com/complycore/complycore/internal/config"
	"github.com/complycore/complycore/internal/document"
	"github.com/complycore/complycore/internal/identity"
	"github.com/complycore/complycore/internal/kpi"
	"github.com/complycore/complycore/internal/mail"
	"github.com/complycore/complycore/internal/nonconformity"
	"github.com/complycore/complycore/internal/observability/logger"
	"github.com/complycore/complycore/internal/observability/metrics"
	"github.com/complycore/complycore/internal/observability/tracing"
	"github.com/complycore/complycore/internal/risk"
	"github.com/complycore/complycore/internal/store/postgres"
	"github.com/complycore/complycore/internal/sysconfig"
	"github.com/complycore/complycore/internal/tenant"
	"github.com/complycore/complycore/internal/token"
	transportHTTP "github.com/complycore/complycore/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.InitLogger(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})
	slog.Info("starting complycore compliance backend")

	ctx := context.Background()

	// Initialize tracer
	tracer, err := tracing.New(ctx, tracing.Config{
		Enabled:        cfg.Observability.OTELEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		SamplingRate:   1.0,
	})
	if err != nil {
		slog.Error("failed to initialize tracer", logger.Error(err))
	}
	defer tracer.Shutdown(ctx)

	// Initialize meter
	meter, err := metrics.New(ctx, metrics.Config{
		Enabled: cfg.Observability.OTELEnabled,
	}, cfg.Observability.ServiceName)
	if err != nil {
		slog.Error("failed to initialize meter", logger.Error(err))
		os.Exit(1)
	}

	// Initialize database
	db, err := postgres.New(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		slog.Error("failed to connect to database", logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	tenantRepo := postgres.NewTenantRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	ncRepo := postgres.NewNonConformityRepository(db)
	kpiRepo := postgres.NewKPIRepository(db)
	riskRepo := postgres.NewRiskRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	sysConfigRepo := postgres.NewSysConfigRepository(db)

	// Initialize helpers
	auditLogger := auditlog.NewSlogLogger()
	passwordHasher := identity.NewPasswordHasher(
		cfg.Security.Argon2Memory,
		cfg.Security.Argon2Iterations,
		cfg.Security.Argon2Parallelism,
		cfg.Security.Argon2SaltLength,
		cfg.Security.Argon2KeyLength,
	)
	tokenManager := token.NewManager(
		cfg.Token.AccessSecret,
		cfg.Token.RefreshSecret,
		cfg.Token.Issuer,
		cfg.Token.AccessTTL,
		cfg.Token.RefreshTTL,
		cfg.Token.InviteTTL,
	)

	var mailSender mail.Sender = mail.LogSender{}
	if cfg.Mail.Enabled {
		mailSender = mail.NewSMTPSender(
			cfg.Mail.Host,
			cfg.Mail.Port,
			cfg.Mail.Username,
			cfg.Mail.Password,
			cfg.Mail.From,
		)
	}

	// Initialize services
	identityService := identity.NewService(userRepo, passwordHasher, auditLogger)
	tenantService := tenant.NewService(tenantRepo, auditLogger)
	auditService := audit.NewService(auditRepo)
	documentService := document.NewService(documentRepo)
	ncService := nonconformity.NewService(ncRepo)
	kpiService := kpi.NewService(kpiRepo)
	riskService := risk.NewService(riskRepo)
	categoryService := category.NewService(categoryRepo)
	configService := sysconfig.NewService(
		sysConfigRepo,
		cfg.ConfigCache.TTL,
		cfg.ConfigCache.CleanupInterval,
		auditLogger,
	)

	// Rate limiter
	rateLimiter := transportHTTP.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	// Initialize HTTP handler
	handler := transportHTTP.NewHandler(
		identityService,
		tenantService,
		auditService,
		documentService,
		ncService,
		kpiService,
		riskService,
		categoryService,
		configService,
		tokenManager,
		auditLogger,
		mailSender,
		meter,
	)

	// Create router
	router := transportHTTP.NewRouter(handler, rateLimiter)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server
	go func() {
		slog.Info("starting http server", logger.Component("server"), logger.Operation("listen"))
		slog.Info(fmt.Sprintf("listening on %s", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", logger.Error(err))
	}

	slog.Info("server stopped")
}
