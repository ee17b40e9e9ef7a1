package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// sqliteTimeLayout is fixed width so stored timestamps sort as text.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type dialect struct {
	name       string
	driverName string
	goose      string
	migrations string
}

var (
	postgres = dialect{name: "postgres", driverName: "pgx", goose: "postgres", migrations: "migrations/postgres"}
	sqlite   = dialect{name: "sqlite", driverName: "sqlite", goose: "sqlite3", migrations: "migrations/sqlite"}
)

func dialectByName(name string) (dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx":
		return postgres, nil
	case "sqlite", "sqlite3":
		return sqlite, nil
	default:
		return dialect{}, fmt.Errorf("unsupported store driver %q", name)
	}
}

// rebind rewrites '?' placeholders into the dialect's form.
func (d dialect) rebind(query string) string {
	if d.name != postgres.name {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d dialect) timeArg(t time.Time) any {
	if d.name == sqlite.name {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t.UTC()
}

// scanTime accepts the timestamp representations of both dialects.
type scanTime struct {
	Time time.Time
}

func (s *scanTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		s.Time = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	case nil:
		s.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (s *scanTime) parse(v string) error {
	for _, layout := range []string{sqliteTimeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			s.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q", v)
}
