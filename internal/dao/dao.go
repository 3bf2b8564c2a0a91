// Package dao 实现数据访问层
package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/simple-note-service/internal/model"
	"github.com/haierkeys/simple-note-service/pkg/util"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// ErrNotInitialized is returned when the store was never configured
var ErrNotInitialized = errors.New("database engine is not initialized, check that DATABASE_URL is set")

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// URL 连接串，例如 sqlite:///storage/notes.db、mysql://u:p@host:3306/db、postgres://u:p@host/db
	URL string
	// Replicas 只读副本连接串
	Replicas []string
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int
	// ConnMaxLifetime 连接最大生命周期
	ConnMaxLifetime string
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string
	// RunMode debug 模式下输出 SQL 日志
	RunMode string
	// Tracing 为每条 SQL 创建 opentracing span
	Tracing bool
}

type Dao struct {
	Db     *gorm.DB
	config *DatabaseConfig
	logger *zap.Logger
}

// Option Dao 配置选项
type Option func(*Dao)

// WithConfig 设置数据库配置
func WithConfig(cfg *DatabaseConfig) Option {
	return func(d *Dao) {
		d.config = cfg
	}
}

// WithLogger 设置日志器
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

// New 创建 Dao，db 为 nil 时所有会话获取都会返回 ErrNotInitialized
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{Db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB returns the process-wide engine
func (d *Dao) DB() (*gorm.DB, error) {
	if d == nil || d.Db == nil {
		return nil, ErrNotInitialized
	}
	return d.Db, nil
}

// Session acquires a dedicated connection for one unit of work.
// The returned release function returns the connection to the pool; it is idempotent
// and must be called on every exit path.
// Session 获取一个专用连接，release 必须在所有退出路径上调用
func (d *Dao) Session(ctx context.Context) (*gorm.DB, func(), error) {
	db, err := d.DB()
	if err != nil {
		return nil, func() {}, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, func() {}, err
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, func() {}, fmt.Errorf("acquire connection: %w", err)
	}

	s := db.WithContext(ctx).Session(&gorm.Session{NewDB: true})
	s.Statement.ConnPool = conn

	var once sync.Once
	release := func() {
		once.Do(func() {
			if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
				d.logger.Warn("dao session release failed", zap.Error(err))
			}
		})
	}
	return s, release, nil
}

type sessionKey struct{}

// ContextWithSession stores a request session in ctx
func ContextWithSession(ctx context.Context, s *gorm.DB) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the request session stored by ContextWithSession
func SessionFromContext(ctx context.Context) (*gorm.DB, bool) {
	s, ok := ctx.Value(sessionKey{}).(*gorm.DB)
	return s, ok && s != nil
}

// conn returns the request session when one is bound to ctx, otherwise a fresh session
// owned by the caller.
func (d *Dao) conn(ctx context.Context) (*gorm.DB, func(), error) {
	if s, ok := SessionFromContext(ctx); ok {
		return s.WithContext(ctx), func() {}, nil
	}
	return d.Session(ctx)
}

// AutoMigrate 自动迁移所有表
func (d *Dao) AutoMigrate() error {
	db, err := d.DB()
	if err != nil {
		return err
	}
	return model.AutoMigrateAll(db)
}

// NewDBEngineWithConfig opens the engine described by cfg.URL
// NewDBEngineWithConfig 根据连接串创建数据库引擎
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	if strings.TrimSpace(c.URL) == "" {
		return nil, ErrNotInitialized
	}
	if lg == nil {
		lg = zap.NewNop()
	}

	dialector, err := Dialector(c.URL)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if c.RunMode == "debug" {
		gormLogger = logger.New(zapWriter{lg.Sugar()}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	maxOpen := c.MaxOpenConns
	if isMemorySQLite(c.URL) {
		// Every connection to :memory: is a separate database
		maxOpen = 1
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(maxOpen)
	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && c.ConnMaxLifetime != "" {
		sqlDB.SetConnMaxLifetime(d)
	}
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && c.ConnMaxIdleTime != "" {
		sqlDB.SetConnMaxIdleTime(d)
	}

	if len(c.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(c.Replicas))
		for _, r := range c.Replicas {
			rd, err := Dialector(r)
			if err != nil {
				return nil, fmt.Errorf("replica: %w", err)
			}
			replicas = append(replicas, rd)
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).SetMaxIdleConns(c.MaxIdleConns).SetMaxOpenConns(maxOpen)
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register replicas: %w", err)
		}
		lg.Info("database replicas registered", zap.Int("count", len(replicas)))
	}

	if c.Tracing {
		if err := db.Use(&gormTracing.OpentracingPlugin{}); err != nil {
			return nil, fmt.Errorf("register tracing: %w", err)
		}
	}

	if c.AutoMigrate {
		if err := model.AutoMigrateAll(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	return db, nil
}

// Dialector maps a connection URL to a gorm dialector.
// sqlite URLs follow the sqlite:///relative.db and sqlite:////absolute.db convention.
func Dialector(rawURL string) (gorm.Dialector, error) {
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return nil, fmt.Errorf("invalid database url %q: missing scheme", redact(rawURL))
	}
	// mysql+pymysql, postgresql+psycopg2, ...
	scheme, _, _ = strings.Cut(strings.ToLower(scheme), "+")

	switch scheme {
	case "sqlite", "sqlite3":
		path := sqlitePath(rest)
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
			path += "?_pragma=busy_timeout(5000)"
		}
		return sqlite.Open(path), nil
	case "mysql":
		dsn, err := mysqlDSN(rest)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open("postgres://" + rest), nil
	}
	return nil, fmt.Errorf("unsupported database scheme %q", scheme)
}

func sqlitePath(rest string) string {
	path := strings.TrimPrefix(rest, "/")
	if path == "" || path == ":memory:" {
		return ":memory:"
	}
	return path
}

func isMemorySQLite(rawURL string) bool {
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok || !strings.HasPrefix(strings.ToLower(scheme), "sqlite") {
		return false
	}
	return sqlitePath(rest) == ":memory:"
}

// mysqlDSN converts user:pass@host:port/db?x=y into the go-sql-driver format
func mysqlDSN(rest string) (string, error) {
	u, err := url.Parse("mysql://" + rest)
	if err != nil {
		return "", fmt.Errorf("invalid mysql url: %w", err)
	}
	host := u.Host
	if u.Port() == "" {
		host += ":3306"
	}
	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}
	password, _ := u.User.Password()
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
		u.User.Username(),
		password,
		host,
		strings.TrimPrefix(u.Path, "/"),
		q.Encode(),
	), nil
}

func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}

type zapWriter struct {
	s *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.s.Infof(format, args...)
}
