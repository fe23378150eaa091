package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rpupo63/construction-site-backend/config"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the database selected by DB_TYPE ("supa" or "sqlite").
func Open(cfg map[string]string) (*gorm.DB, error) {
	dbType := config.GetString(cfg, "DB_TYPE", "supa")

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormCfg := &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
		NowFunc:     models.Now,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch dbType {
	case "supa":
		zlog.Info().Msg("Connecting to Supabase database...")
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  supabaseDSN(cfg),
			PreferSimpleProtocol: true,
		}), gormCfg)
		if err != nil {
			return nil, errs.NewDatabaseError("connect", "database", err)
		}
		if replica := config.GetString(cfg, "SUPABASE_REPLICA_DSN", ""); replica != "" {
			err = db.Use(dbresolver.Register(dbresolver.Config{
				Replicas: []gorm.Dialector{postgres.New(postgres.Config{
					DSN:                  replica,
					PreferSimpleProtocol: true,
				})},
				Policy: dbresolver.RandomPolicy{},
			}))
			if err != nil {
				return nil, errs.NewDatabaseError("register replica", "database", err)
			}
			zlog.Info().Msg("Read replica registered")
		}
	case "sqlite":
		path := config.GetString(cfg, "SQLITE_PATH", "construction.db")
		zlog.Info().Str("path", path).Msg("Opening SQLite database...")
		db, err = gorm.Open(sqlite.Open(path), gormCfg)
		if err != nil {
			return nil, errs.NewDatabaseError("connect", "database", err)
		}
	default:
		return nil, errs.BadRequest(fmt.Sprintf("unsupported DB_TYPE %q", dbType))
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, errs.NewDatabaseError("test connection", "database", err)
	}
	return db, nil
}

func supabaseDSN(cfg map[string]string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		config.GetString(cfg, "SUPABASE_DB_HOST", ""),
		config.GetString(cfg, "SUPABASE_DB_USER", ""),
		config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
		config.GetString(cfg, "SUPABASE_DB_NAME", ""),
		config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
	)
}
