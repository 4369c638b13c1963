package audit

import (
	"strings"

	"github.com/glebarez/sqlite"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/gorm"
)

// dialectorFor picks a gorm dialector for dsn. A libsql:// or http(s)://
// URL routes through the libsql-client-go driver, for a remote or embedded
// replica database; anything else opens as a local, pure-Go sqlite file via
// glebarez/sqlite, which needs no cgo toolchain on the machine running the
// CLI.
func dialectorFor(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "libsql://"),
		strings.HasPrefix(dsn, "http://"),
		strings.HasPrefix(dsn, "https://"):
		return sqlite.Dialector{DriverName: "libsql", DSN: dsn}
	default:
		return sqlite.Open(dsn)
	}
}
