package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/veriscan/casedesk/internal/clock"
	"github.com/veriscan/casedesk/internal/config"
	"github.com/veriscan/casedesk/internal/escalation"
	"github.com/veriscan/casedesk/internal/logger"
	"github.com/veriscan/casedesk/internal/migration"
	"github.com/veriscan/casedesk/internal/observability"
	"github.com/veriscan/casedesk/internal/organization"
	"github.com/veriscan/casedesk/internal/providers/telegram"
	"github.com/veriscan/casedesk/internal/scheduler"
	"github.com/veriscan/casedesk/internal/server"
	"github.com/veriscan/casedesk/internal/submission"
	"github.com/veriscan/casedesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		fx.Provide(databaseConfig),
		db.Module,
		clock.Module,
		migration.Module,

		// Domains
		organization.Module,
		submission.Module,
		telegram.Module,
		escalation.Module,
		scheduler.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func databaseConfig(cfg config.Config) db.Config {
	return db.Config{
		Type:            cfg.DBType,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		SSLMode:         cfg.DBSSLMode,
		MaxIdleConn:     cfg.DBMaxIdleConn,
		MaxOpenConn:     cfg.DBMaxOpenConn,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	}
}
