package app

import (
	"github.com/robfig/cron/v3"
	bolt "go.etcd.io/bbolt"

	"github.com/talkincode/medshop/config"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StorageProvider provides the local durable store
type StorageProvider interface {
	Storage() *bolt.DB
}

// IDProvider provides process-unique identifiers
type IDProvider interface {
	NextID() string
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context.
// Services should depend on specific providers or this combined interface.
type AppContext interface {
	ConfigProvider
	StorageProvider
	IDProvider
	SchedulerProvider

	StartBackgroundJobs()
	Release()
}
