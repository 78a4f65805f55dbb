package models

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

type Context string

const (
	DBContextURL Context = "pl-backend-url"
)

func config() *gorm.Config {
	return &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}
}

// Connect opens the SQLite database and configures the connection pool.
func Connect(dsn string) error {
	// Migration with foreign keys disabled since sqlite does not support
	// ALTER COLUMN. Tables are copied to a temporary table, then the table
	// is dropped and recreated
	db, err := gorm.Open(sqlite.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection serializes all writers. This prevents SQLITE_BUSY errors
	// and makes every transaction exclusive, which the limit check and the
	// category deletion rely on.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return register(db)
}

// ConnectPostgres opens a PostgreSQL database.
func ConnectPostgres(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return register(db)
}

// register sets up the callbacks and sets the exported DB variable.
func register(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "pocket_ledger:after_query", queryCallback},
		{db.Callback().Query().After("*"), "pocket_ledger:after_query_general", generalCallback},
		{db.Callback().Row().After("*"), "pocket_ledger:after_row_general", generalCallback},
		{db.Callback().Create().After("*"), "pocket_ledger:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "pocket_ledger:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "pocket_ledger:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "pocket_ledger:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "pocket_ledger:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return err
		}
	}

	DB = db
	return nil
}

var plural = regexp.MustCompile("ies$")

// SQLSTATE of unique violations in PostgreSQL
const pgUniqueViolation = "23505"

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		name = plural.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// uniqueViolation reports if err is a violation of the unique index on a table.
// SQLite reports the table and columns, PostgreSQL reports the index name.
func uniqueViolation(err error, table, index string) bool {
	msg := err.Error()
	return strings.Contains(msg, fmt.Sprintf("UNIQUE constraint failed: %s.", table)) ||
		(strings.Contains(msg, "duplicate key value violates unique constraint") && strings.Contains(msg, index))
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if uniqueViolation(db.Error, "users", "user_username") {
		db.Error = ErrUsernameNotUnique
	}

	// Category names need to be unique per owner
	if uniqueViolation(db.Error, "expense_categories", "expense_category_owner_name") ||
		uniqueViolation(db.Error, "income_categories", "income_category_owner_name") {
		db.Error = ErrCategoryNameNotUnique
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	db.Error = generalError(db.Error)
}

// generalError replaces errors of the database driver or the connection
// with ErrGeneral and logs them. All other errors are returned unchanged.
func generalError(err error) error {
	if err == nil || !infrastructureError(err) {
		return err
	}

	log.Error().Msgf("%T: %v", err, err.Error())
	return ErrGeneral
}

// infrastructureError reports if err was caused by the database or the
// connection to it instead of the data of the request.
func infrastructureError(err error) bool {
	// "sql: database is closed" is hard-coded in the sql module
	if err.Error() == "sql: database is closed" || errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var sqliteErr *go_sqlite.Error
	if errors.As(err, &sqliteErr) {
		return true
	}

	// Unique violations that are not mapped to a domain error by
	// createUpdateCallback are still caused by the request
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code != pgUniqueViolation
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(User{}, ExpenseCategory{}, IncomeCategory{}, Expense{}, Income{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
