package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-records/library/config"
	"github.com/Astemirdum/library-records/library/internal/handler"
	"github.com/Astemirdum/library-records/library/internal/model"
	"github.com/Astemirdum/library-records/library/internal/repository"
	"github.com/Astemirdum/library-records/library/internal/server"
	"github.com/Astemirdum/library-records/library/internal/service"
	"github.com/Astemirdum/library-records/library/migrations"
	"github.com/Astemirdum/library-records/pkg/kafka"
	"github.com/Astemirdum/library-records/pkg/logger"
	"github.com/Astemirdum/library-records/pkg/postgres"
	"github.com/Astemirdum/library-records/pkg/validate"
)

const shutdownTimeout = 5 * time.Second

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	publisher := kafka.NewNopPublisher()
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		publisher = kafka.NewPublisher(producer, cfg.Kafka.Topic)
	} else {
		log.Info("kafka is not configured, borrow events are dropped")
	}

	svc := service.NewService(repo, log,
		service.WithPolicy(cfg.Lending),
		service.WithPublisher(publisher),
	)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ", zap.String("addr", srv.Addr()))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err = publisher.Close(); err != nil {
		log.Error("publisher.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}

// Migrate applies the embedded schema in the given direction without starting the server.
func Migrate(ctx context.Context, cfg *config.Config, direction postgres.Direction) error {
	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, nil)
	if err != nil {
		return err
	}
	defer db.Close()
	return postgres.Migrate(db, migrations.MigrationFiles, direction)
}

// CreateAdmin registers an active admin account, migrating the schema first.
func CreateAdmin(ctx context.Context, cfg *config.Config, name, email, password string) (model.User, error) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return model.User{}, err
	}
	defer db.Close()

	svc, err := newAdminService(db, log)
	if err != nil {
		return model.User{}, err
	}

	active := true
	req := model.CreateUserRequest{
		Name:     name,
		Email:    email,
		Role:     model.RoleAdmin,
		IsActive: &active,
		Password: password,
	}
	if err = validate.NewCustomValidator().Validate(req); err != nil {
		return model.User{}, errors.Wrap(err, "invalid admin")
	}
	return svc.CreateUser(ctx, req)
}

func newAdminService(db *pgxpool.Pool, log *zap.Logger) (*service.Service, error) {
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return nil, err
	}
	return service.NewService(repo, log), nil
}
