package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iota-uz/deptemp/internal/server"
	"github.com/iota-uz/deptemp/modules"
	"github.com/iota-uz/deptemp/pkg/commands/common"
	"github.com/iota-uz/deptemp/pkg/configuration"
	"github.com/iota-uz/deptemp/pkg/logging"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, time.Second*5)
	handles, err := common.OpenHandles(connectCtx, conf)
	cancel()
	if err != nil {
		panic(err)
	}
	defer handles.Close()

	if conf.Database.MigrateOnStart {
		migrator, closeMigrator, err := handles.Migrator(conf)
		if err != nil {
			panic(err)
		}
		if migrator != nil {
			if err := migrator.Up(ctx); err != nil {
				panic(err)
			}
		}
		closeMigrator()
	}

	app, err := common.NewApplication(conf, handles, modules.BuiltInModules...)
	if err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          handles.Pool,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Listening on: %s (store: %s, workers: %d)", conf.SocketAddress, conf.Database.Driver, conf.Workers)
		return serverInstance.Start(conf.SocketAddress)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), conf.ShutdownTimeout)
		defer cancel()
		logger.Info("Shutting down")
		return serverInstance.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server stopped with error")
		conf.Unload()
		os.Exit(1)
	}
	conf.Unload()
}
