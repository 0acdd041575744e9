package repo

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdfbrief/pdfbrief/internal/config"
	"github.com/pdfbrief/pdfbrief/internal/model"
	appErr "github.com/pdfbrief/pdfbrief/internal/pkg/errors"
)

// Tests in this file need a running Postgres. Point TEST_DB_HOST at one to
// enable them, e.g.
//
//	TEST_DB_HOST=127.0.0.1 TEST_DB_USER=postgres TEST_DB_PASSWORD=postgres TEST_DB_NAME=pdfbrief_test go test ./internal/repo/
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set")
	}
	port := 5432
	if v := os.Getenv("TEST_DB_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		require.NoError(t, err)
		port = p
	}
	cfg := config.DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     os.Getenv("TEST_DB_USER"),
		Password: os.Getenv("TEST_DB_PASSWORD"),
		DBName:   os.Getenv("TEST_DB_NAME"),
		SSLMode:  "disable",
	}
	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, ApplyMigrations(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().UnixNano(), rand.Intn(1000))
}

func mustCreateUser(t *testing.T, db *sql.DB) *model.User {
	t.Helper()
	now := time.Now().Unix()
	user := &model.User{
		ID:           uniqueName("uid"),
		Username:     uniqueName("user"),
		PasswordHash: "hash",
		Ctime:        now,
		Mtime:        now,
	}
	require.NoError(t, NewUserRepo(db).Create(context.Background(), user))
	return user
}

func TestUserRepoCreateGet(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	ctx := context.Background()

	user := mustCreateUser(t, db)

	got, err := users.GetByUsername(ctx, user.Username)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "hash", got.PasswordHash)

	got, err = users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Username, got.Username)

	_, err = users.GetByUsername(ctx, uniqueName("missing"))
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestUserRepoDuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	ctx := context.Background()

	user := mustCreateUser(t, db)
	dup := &model.User{
		ID:           uniqueName("uid"),
		Username:     user.Username,
		PasswordHash: "other",
		Ctime:        user.Ctime,
		Mtime:        user.Mtime,
	}
	require.ErrorIs(t, users.Create(ctx, dup), appErr.ErrConflict)
}

func TestSummaryRepoListOrderAndScope(t *testing.T) {
	db := openTestDB(t)
	summaries := NewSummaryRepo(db)
	ctx := context.Background()

	owner := mustCreateUser(t, db)
	other := mustCreateUser(t, db)

	base := time.Now().Unix()
	for i, uid := range []string{owner.ID, owner.ID, other.ID} {
		rec := &model.Summary{
			ID:       uniqueName("sid"),
			UserID:   uid,
			Filename: fmt.Sprintf("doc%d.pdf", i),
			Summary:  "text",
			FileKey:  uniqueName("key") + ".pdf",
			Ctime:    base + int64(i),
		}
		require.NoError(t, summaries.Create(ctx, rec))
	}

	list, err := summaries.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "doc1.pdf", list[0].Filename)
	require.Equal(t, "doc0.pdf", list[1].Filename)
	for _, rec := range list {
		require.Equal(t, owner.ID, rec.UserID)
	}
}

func TestSummaryRepoGetIsOwnerScoped(t *testing.T) {
	db := openTestDB(t)
	summaries := NewSummaryRepo(db)
	ctx := context.Background()

	owner := mustCreateUser(t, db)
	other := mustCreateUser(t, db)

	rec := &model.Summary{
		ID:       uniqueName("sid"),
		UserID:   owner.ID,
		Filename: "doc.pdf",
		Summary:  "text",
		Ctime:    time.Now().Unix(),
	}
	require.NoError(t, summaries.Create(ctx, rec))

	got, err := summaries.GetByID(ctx, owner.ID, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.Filename, got.Filename)

	_, err = summaries.GetByID(ctx, other.ID, rec.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
	_, err = summaries.GetByID(ctx, owner.ID, uniqueName("missing"))
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestSummaryRepoListFileKeys(t *testing.T) {
	db := openTestDB(t)
	summaries := NewSummaryRepo(db)
	ctx := context.Background()

	owner := mustCreateUser(t, db)
	key := uniqueName("key") + ".pdf"
	require.NoError(t, summaries.Create(ctx, &model.Summary{
		ID:      uniqueName("sid"),
		UserID:  owner.ID,
		FileKey: key,
		Ctime:   time.Now().Unix(),
	}))

	keys, err := summaries.ListFileKeys(ctx)
	require.NoError(t, err)
	require.Contains(t, keys, key)
}
