package database

import (
	"testing"

	"sports-booking/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := utils.DatabaseConfig{Host: "db", Port: "5432", Name: "booking", User: "app", Password: "p@ss word"}

	dsn := DSN(cfg)
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/booking?sslmode=disable", dsn)

	parsed, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "p@ss word", parsed.ConnConfig.Password)
	assert.Equal(t, "booking", parsed.ConnConfig.Database)
	assert.Equal(t, uint16(5432), parsed.ConnConfig.Port)
}
