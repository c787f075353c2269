package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cre-deals-api/infrastructure/database/postgres"
	"github.com/vfg2006/cre-deals-api/infrastructure/repository"
	"github.com/vfg2006/cre-deals-api/internal/api"
	"github.com/vfg2006/cre-deals-api/internal/config"
	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/internal/pipeline"
	"github.com/vfg2006/cre-deals-api/internal/scheduler"
	"github.com/vfg2006/cre-deals-api/internal/store"
	"github.com/vfg2006/cre-deals-api/internal/usecases/authenticating"
	"github.com/vfg2006/cre-deals-api/internal/usecases/dealing"
	"github.com/vfg2006/cre-deals-api/internal/usecases/insighting"
	"github.com/vfg2006/cre-deals-api/internal/usecases/valuing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	dealRepo := repository.NewDealRepository(pgConn)
	valuationRepo := repository.NewValuationRepository(pgConn)

	// O kanban observa a coleção de negócios e persiste os movimentos no repositório
	deals := store.NewCollection[domain.Deal]("deals", dealRepo.FetchAll)
	reconciler := pipeline.NewReconciler(dealRepo)
	stopWatching := reconciler.Watch(deals)
	defer stopWatching()

	if err := deals.Load(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao carregar negócios iniciais; o kanban começa vazio")
	}

	authenticator := authenticating.NewService(userRepo, cfg.Auth.SecretKey)
	dealService := dealing.NewService(dealRepo, deals, reconciler)
	valuationService := valuing.NewService(valuationRepo, cfg.Forecast)
	insightService := insighting.NewService(dealRepo, valuationRepo)

	pipelineSyncService := scheduler.NewPipelineSyncService(deals, cfg)
	if err := pipelineSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de ressincronização do kanban")
	} else {
		logrus.Info("Agendador de ressincronização do kanban iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		dealService,
		valuationService,
		insightService,
		pipelineSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
