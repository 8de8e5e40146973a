package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSNFromEnv(t *testing.T) {
	t.Setenv("MYSQL_USER", "store")
	t.Setenv("MYSQL_PASSWORD", "secret")
	t.Setenv("MYSQL_HOST", "db")
	t.Setenv("MYSQL_PORT", "3306")
	t.Setenv("MYSQL_DATABASE", "storefront")

	dsn := dsnFromEnv()

	assert.Contains(t, dsn, "store:secret@tcp(db:3306)/storefront")
	assert.Contains(t, dsn, "parseTime=True")
	// Rows matched, not rows changed: status updates that re-submit the
	// current values must still report the row as found.
	assert.Contains(t, dsn, "clientFoundRows=true")
}
