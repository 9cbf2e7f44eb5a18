package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jikkosoft/library-service/config"
	"github.com/jikkosoft/library-service/internal/handler"
	"github.com/jikkosoft/library-service/internal/notify"
	"github.com/jikkosoft/library-service/internal/repository"
	"github.com/jikkosoft/library-service/internal/scheduler"
	"github.com/jikkosoft/library-service/internal/server"
	"github.com/jikkosoft/library-service/internal/service"
	"github.com/jikkosoft/library-service/migrations"
	"github.com/jikkosoft/library-service/pkg/kafka"
	"github.com/jikkosoft/library-service/pkg/logger"
	"github.com/jikkosoft/library-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Fatal("kafka.NewProducer", zap.Error(err))
	}
	notifier := notify.NewKafkaNotifier(producer, cfg.Kafka.NotificationTopic, log)

	repos := service.Repositories{
		Category:    repository.NewCategoryRepository(db, log),
		Author:      repository.NewAuthorRepository(db, log),
		Library:     repository.NewLibraryRepository(db, log),
		Book:        repository.NewBookRepository(db, log),
		BookCopy:    repository.NewBookCopyRepository(db, log),
		Member:      repository.NewMemberRepository(db, log),
		Loan:        repository.NewLoanRepository(db, log),
		Reservation: repository.NewReservationRepository(db, log),
		User:        repository.NewUserRepository(db, log),
		Audit:       repository.NewAuditLogRepository(db, log),
	}
	svc := service.NewService(repos, repository.NewTransactor(db), service.NewClock(), notifier, log)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run()
	})
	g.Go(func() error {
		return scheduler.New(svc, cfg.Scheduler.SweepInterval, log).Run(ctx)
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	cancel()
	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error("shutdown", zap.Error(err))
	}
	if err := notifier.Close(); err != nil {
		log.Error("kafka close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
