package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		user, pass string
		want       string
	}{
		{
			name: "driver syntax untouched",
			in:   "root:pw@tcp(127.0.0.1:3306)/shop?parseTime=true",
			want: "root:pw@tcp(127.0.0.1:3306)/shop?parseTime=true",
		},
		{
			name: "url with credentials",
			in:   "mysql://root:pw@db:3306/shop",
			want: "root:pw@tcp(db:3306)/shop?charset=utf8mb4&parseTime=true",
		},
		{
			name: "jdbc params translated and overrides win",
			in:   "jdbc:mysql://db:3306/shop?useSSL=false&characterEncoding=utf8&useUnicode=true",
			user: "app",
			pass: "secret",
			want: "app:secret@tcp(db:3306)/shop?charset=utf8&parseTime=true&tls=false",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeMySQLDSN(tt.in, tt.user, tt.pass))
		})
	}
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewGorm_SQLite(t *testing.T) {
	db, err := NewGorm(Opts{Driver: "sqlite", DSN: "file:gormtest?mode=memory&cache=shared", MaxOpenConns: 1, MaxIdleConns: 1, LogLevel: "silent"})
	require.NoError(t, err)

	var n int
	require.NoError(t, db.Raw("SELECT 1").Scan(&n).Error)
	assert.Equal(t, 1, n)
}
