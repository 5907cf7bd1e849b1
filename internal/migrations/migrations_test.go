package migrations

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestRun_Idempotent(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()

	// First run creates everything, second run must be a no-op.
	assert.NoError(t, Run(ctx, db))
	assert.NoError(t, Run(ctx, db))

	wantTables := []string{
		"users", "posts", "comments", "likes", "follows", "stories",
		"story_views", "conversations", "messages", "notifications",
		"hashtags", "post_hashtags",
	}
	for _, table := range wantTables {
		var exists bool
		err := db.Get(&exists,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, table)
		assert.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}

	var indexCount int
	err := db.Get(&indexCount,
		`SELECT COUNT(*) FROM pg_indexes WHERE indexname LIKE 'idx_%'`)
	assert.NoError(t, err)
	assert.Equal(t, len(indexes), indexCount)
}

func TestRun_Constraints(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	assert.NoError(t, Run(ctx, db))

	// Two users and a post to hang rows off.
	_, err := db.Exec(`INSERT INTO users (username, email, password_hash) VALUES
		('alice', 'alice@example.com', 'hash'),
		('bob', 'bob@example.com', 'hash')`)
	assert.NoError(t, err)
	_, err = db.Exec(`INSERT INTO posts (user_id, media_urls, media_types) VALUES
		(1, '{"u"}', '{"image"}')`)
	assert.NoError(t, err)
	_, err = db.Exec(`INSERT INTO comments (post_id, user_id, content) VALUES (1, 2, 'hi')`)
	assert.NoError(t, err)

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO users (username, email, password_hash) VALUES
			('alice', 'other@example.com', 'hash')`)
		assert.Error(t, err)
	})

	t.Run("like must target exactly one of post or comment", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO likes (user_id, post_id, comment_id) VALUES (1, 1, 1)`)
		assert.Error(t, err)

		_, err = db.Exec(`INSERT INTO likes (user_id) VALUES (1)`)
		assert.Error(t, err)

		_, err = db.Exec(`INSERT INTO likes (user_id, post_id) VALUES (1, 1)`)
		assert.NoError(t, err)
	})

	t.Run("duplicate post like rejected", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO likes (user_id, post_id) VALUES (1, 1)`)
		assert.Error(t, err)
	})

	t.Run("self follow rejected", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO follows (follower_id, following_id) VALUES (1, 1)`)
		assert.Error(t, err)

		_, err = db.Exec(`INSERT INTO follows (follower_id, following_id) VALUES (1, 2)`)
		assert.NoError(t, err)

		_, err = db.Exec(`INSERT INTO follows (follower_id, following_id) VALUES (1, 2)`)
		assert.Error(t, err, "duplicate follow should be rejected")
	})

	t.Run("duplicate story view rejected", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO stories (user_id, media_url, media_type, expires_at)
			VALUES (1, 'u', 'image', NOW() + INTERVAL '1 day')`)
		assert.NoError(t, err)

		_, err = db.Exec(`INSERT INTO story_views (story_id, user_id) VALUES (1, 2)`)
		assert.NoError(t, err)

		_, err = db.Exec(`INSERT INTO story_views (story_id, user_id) VALUES (1, 2)`)
		assert.Error(t, err)
	})

	t.Run("cascade delete removes dependent rows", func(t *testing.T) {
		_, err := db.Exec(`DELETE FROM users WHERE username = 'alice'`)
		assert.NoError(t, err)

		var posts int
		assert.NoError(t, db.Get(&posts, `SELECT COUNT(*) FROM posts`))
		assert.Zero(t, posts)

		var likes int
		assert.NoError(t, db.Get(&likes, `SELECT COUNT(*) FROM likes`))
		assert.Zero(t, likes)
	})
}
