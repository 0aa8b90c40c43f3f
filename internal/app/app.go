package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/bwmarrin/snowflake"
	"github.com/robfig/cron/v3"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/talkincode/medshop/config"
)

// Application owns process-wide resources: configuration, the local
// durable store for persisted sessions, the id generator and the cron
// scheduler. Per-browser view state lives in the web layer's registry,
// not here.
type Application struct {
	appConfig *config.AppConfig
	boltDB    *bolt.DB
	sched     *cron.Cron
	idNode    *snowflake.Node
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider    = (*Application)(nil)
	_ StorageProvider   = (*Application)(nil)
	_ IDProvider        = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Storage() *bolt.DB {
	return a.boltDB
}

// OverrideStorage replaces the local store handle (used in tests).
func (a *Application) OverrideStorage(db *bolt.DB) {
	a.boltDB = db
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}
	if cfg.Logger.FileEnable {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, cfg.Logger.Filename)
	}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	if err := os.MkdirAll(cfg.System.Workdir, 0o755); err != nil {
		zap.S().Errorf("workdir create failed: %v", err)
	}

	// Local durable store for persisted browser sessions
	dbpath := filepath.Join(cfg.System.Workdir, "medshop.db")
	a.boltDB, err = bolt.Open(dbpath, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		zap.S().Errorf("local store open failed: %v", err)
	} else {
		zap.S().Infof("local store opened: %s", dbpath)
	}

	a.idNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	a.sched = cron.New(cron.WithLocation(time.Local))
}

// NextID yields a process-unique id for browser session keys.
func (a *Application) NextID() string {
	return a.idNode.Generate().String()
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// StartBackgroundJobs starts the cron runner after jobs are registered.
func (a *Application) StartBackgroundJobs() {
	a.sched.Start()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.boltDB != nil {
		_ = a.boltDB.Close()
	}
	_ = zap.L().Sync()
}
