//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_admin/internal/domain"
	mysqlrepo "hotel_admin/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string { return &s }

func migrationsDir(t *testing.T) string {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "..", "migrations")
	}
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	return dir
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotel_admin",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotel_admin?parseTime=true&multiStatements=true&charset=utf8mb4&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = mysqlrepo.Open(context.Background(), dsn)
		return e
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ---------- the test ----------
func TestJournal_RecordAndListUnassigned(t *testing.T) {
	db := startMySQL(t)
	applyMigrations(t, db)

	j := mysqlrepo.New(db)
	ctx := context.Background()

	subs := []domain.Submission{
		{HotelID: pstr("101"), HotelName: "Ocean View", AmenityIDs: []string{"1", "3"}, Status: domain.SubmissionAssigned},
		{HotelID: pstr("102"), HotelName: "Hill Top", AmenityIDs: []string{"2"}, Status: domain.SubmissionAssignFailed, Error: pstr("assign 500")},
		{HotelName: "Sand Dunes", Status: domain.SubmissionCreateFailed, Error: pstr("remote 400")},
		{HotelID: pstr("104"), HotelName: "Lake Side", Status: domain.SubmissionCreated},
	}
	for _, s := range subs {
		if err := j.Record(ctx, s); err != nil {
			t.Fatalf("Record %s: %v", s.HotelName, err)
		}
	}

	got, err := j.ListUnassigned(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnassigned: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 unassigned, got %+v", got)
	}
	s := got[0]
	if s.HotelID == nil || *s.HotelID != "102" || s.HotelName != "Hill Top" {
		t.Fatalf("unexpected row: %+v", s)
	}
	if len(s.AmenityIDs) != 1 || s.AmenityIDs[0] != "2" || s.Error == nil || *s.Error != "assign 500" {
		t.Fatalf("unexpected row details: %+v", s)
	}
	if s.ID == 0 || s.CreatedAt.IsZero() {
		t.Fatalf("id/created_at not populated: %+v", s)
	}
}
