package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"venus/config"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
}

func New(cfg *config.Config) (*Connection, error) {
	pg := cfg.DB.Postgres

	write, err := connect(endpoint{
		name:     "write",
		username: pg.Write.Username,
		password: pg.Write.Password,
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		dbName:   pg.Prefix + pg.Write.Name,
		sslMode:  pg.Write.SSLMode,
	}, pg.MaxRetry, pg.RetryWaitTime)
	if err != nil {
		return nil, err
	}

	// a deployment without a replica reads from the primary
	if pg.Read.Host == "" {
		return &Connection{Read: write, Write: write}, nil
	}

	read, err := connect(endpoint{
		name:     "read",
		username: pg.Read.Username,
		password: pg.Read.Password,
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		dbName:   pg.Prefix + pg.Read.Name,
		sslMode:  pg.Read.SSLMode,
	}, pg.MaxRetry, pg.RetryWaitTime)
	if err != nil {
		_ = write.Close()

		return nil, err
	}

	return &Connection{Read: read, Write: write}, nil
}

func (c *Connection) Close() error {
	if c.Read != c.Write {
		_ = c.Read.Close()
	}

	return c.Write.Close() //nolint:wrapcheck
}

// DSN renders the connection string used by migrate and sqlx.
func DSN(username, password, host, port, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)
}

func connect(ep endpoint, maxRetry, waitTime int) (*sqlx.DB, error) {
	descriptor := DSN(ep.username, ep.password, ep.host, ep.port, ep.dbName, ep.sslMode)

	var lastErr error

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", ep.name).
				Str("host", ep.host).
				Str("port", ep.port).
				Str("dbName", ep.dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", ep.name).
			Str("host", ep.host).
			Str("port", ep.port).
			Str("dbName", ep.dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("connecting to postgres (%s): %w", ep.name, lastErr)
}
