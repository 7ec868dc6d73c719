package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cutdesk/internal/config"
	"cutdesk/internal/domain"
	"cutdesk/internal/logging"
	"cutdesk/internal/ports"
)

// KeymapRepository implements ports.KeymapStore using GORM on SQLite
type KeymapRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.KeymapStore = (*KeymapRepository)(nil)

// gormLogger routes GORM output to the cutdesk logger
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		logging.Logger.Error("gorm query error", "error", err, "duration", elapsed, "sql", sql, "rows", rows)
	case elapsed > 200*time.Millisecond:
		logging.Logger.Warn("slow query", "duration", elapsed, "sql", sql, "rows", rows)
	default:
		logging.Logger.Debug("gorm query", "duration", elapsed, "sql", sql, "rows", rows)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("CUTDESK_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewKeymapRepository opens (creating if needed) the keymap database at dbPath
func NewKeymapRepository(dbPath string) (*KeymapRepository, error) {
	dbPath = config.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:  newGormLogger(),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&UserKeymapModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate user_keymaps schema: %w", err)
	}

	return &KeymapRepository{db: db}, nil
}

// Close closes the database connection
func (r *KeymapRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get implements KeymapReader.Get
func (r *KeymapRepository) Get(ctx context.Context, user string) (*domain.UserKeymap, error) {
	var model UserKeymapModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("user_id = ?", user).First(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("keymap for %s: %w", user, domain.ErrKeymapNotFound)
		}
		return nil, fmt.Errorf("failed to get keymap: %w", err)
	}

	return userKeymapModelToDomain(model)
}

// Upsert implements KeymapWriter.Upsert.
// A nil ActivePreset or nil CustomBindings keeps the stored value; an empty non-nil map clears the overrides.
func (r *KeymapRepository) Upsert(ctx context.Context, user string, update domain.KeymapUpdate) (*domain.UserKeymap, error) {
	var model UserKeymapModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			err := tx.Where("user_id = ?", user).First(&model).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				model = UserKeymapModel{
					ActivePreset:       domain.DefaultPresetName,
					CustomBindingsJSON: "{}",
					UserID:             user,
				}
			case err != nil:
				return err
			}

			if update.ActivePreset != nil {
				model.ActivePreset = *update.ActivePreset
			}
			if update.CustomBindings != nil {
				encoded, err := encodeBindings(update.CustomBindings)
				if err != nil {
					return err
				}
				model.CustomBindingsJSON = encoded
			}

			return tx.Save(&model).Error
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save keymap: %w", err)
	}

	logging.Logger.Debug("Keymap saved", "user", user, "preset", model.ActivePreset)
	return userKeymapModelToDomain(model)
}

// withRetry retries an operation when SQLite reports the database busy or locked
func withRetry(fn func() error) error {
	const maxRetries = 5
	for i := range maxRetries {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
