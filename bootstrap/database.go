package bootstrap

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mahjong/pkg/config"
	"mahjong/pkg/database"
	"mahjong/pkg/database/migrations"
	"mahjong/pkg/logger"
)

// SetupDB 初始化数据库和 ORM，migrate 为 true 时自动迁移表结构
func SetupDB(migrate bool) (*gorm.DB, error) {
	// 根据配置文件选择数据库类型
	dialector, err := dialectorFromConfig()
	if err != nil {
		return nil, err
	}

	// 连接数据库，并设置 GORM 的日志模式和连接池
	db, err := database.Connect(dialector, logger.NewGormLogger(), database.PoolConfig{
		MaxOpenConns:    config.GetInt("database.max_open_connections"),
		MaxIdleConns:    config.GetInt("database.max_idle_connections"),
		ConnMaxLifetime: time.Duration(config.GetInt("database.max_life_seconds")) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, err
		}
	}
	return db, nil
}

// Migrate 自动迁移数据库结构
func Migrate(db *gorm.DB) error {
	if err := database.AutoMigrate(db, migrations.RegisterTables()); err != nil {
		logger.ErrorString("数据库", "自动迁移", "数据表结构迁移失败："+err.Error())
		return err
	}
	logger.InfoString("数据库", "自动迁移", "数据表结构迁移成功")
	return nil
}

func dialectorFromConfig() (gorm.Dialector, error) {
	switch connection := config.GetString("database.connection"); connection {
	case "postgresql", "postgres":
		return setupPostgreSQL(), nil
	case "mysql":
		return setupMySQL(), nil
	case "sqlite":
		return setupSQLite(), nil
	default:
		return nil, fmt.Errorf("暂不支持该数据库类型: %s", connection)
	}
}

// setupPostgreSQL 配置 PostgreSQL 连接
func setupPostgreSQL() gorm.Dialector {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		config.Get("database.postgresql.host"),
		config.Get("database.postgresql.port"),
		config.Get("database.postgresql.username"),
		config.Get("database.postgresql.password"),
		config.Get("database.postgresql.database"),
	)
	return postgres.New(postgres.Config{
		DSN: dsn,
	})
}

// setupMySQL 配置 MySQL 连接，时间统一按 UTC 读写
func setupMySQL() gorm.Dialector {
	dsn := fmt.Sprintf("%v:%v@tcp(%v:%v)/%v?charset=%v&parseTime=True&loc=UTC",
		config.Get("database.mysql.username"),
		config.Get("database.mysql.password"),
		config.Get("database.mysql.host"),
		config.Get("database.mysql.port"),
		config.Get("database.mysql.database"),
		config.Get("database.mysql.charset"),
	)
	return mysql.New(mysql.Config{
		DSN: dsn,
	})
}

// setupSQLite 配置 SQLite 连接
func setupSQLite() gorm.Dialector {
	return sqlite.Open(config.Get("database.sqlite.database"))
}
