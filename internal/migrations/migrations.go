package migrations

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/socialgram/socialgram-api/internal/logger"
)

// Migration is a single named DDL statement. Every statement uses
// IF NOT EXISTS, so a re-run after a mid-way failure resumes safely.
type Migration struct {
	Name string
	SQL  string
}

// tables holds table DDL in dependency order: referenced tables before the
// tables that reference them, junction tables last.
var tables = []Migration{
	{
		Name: "users",
		SQL: `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(30) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			full_name VARCHAR(100),
			bio TEXT,
			profile_image_url TEXT,
			is_verified BOOLEAN DEFAULT FALSE,
			is_private BOOLEAN DEFAULT FALSE,
			followers_count INTEGER DEFAULT 0,
			following_count INTEGER DEFAULT 0,
			posts_count INTEGER DEFAULT 0,
			last_login TIMESTAMP,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,
	},
	{
		Name: "posts",
		SQL: `
		CREATE TABLE IF NOT EXISTS posts (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			caption TEXT,
			media_urls TEXT[] NOT NULL,
			media_types TEXT[] NOT NULL,
			location VARCHAR(255),
			likes_count INTEGER DEFAULT 0,
			comments_count INTEGER DEFAULT 0,
			is_archived BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,
	},
	{
		Name: "comments",
		SQL: `
		CREATE TABLE IF NOT EXISTS comments (
			id SERIAL PRIMARY KEY,
			post_id INTEGER REFERENCES posts(id) ON DELETE CASCADE,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			parent_id INTEGER REFERENCES comments(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			likes_count INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,
	},
	{
		Name: "likes",
		SQL: `
		CREATE TABLE IF NOT EXISTS likes (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			post_id INTEGER REFERENCES posts(id) ON DELETE CASCADE,
			comment_id INTEGER REFERENCES comments(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT NOW(),
			CONSTRAINT unique_post_like UNIQUE(user_id, post_id),
			CONSTRAINT unique_comment_like UNIQUE(user_id, comment_id),
			CONSTRAINT like_target_check CHECK (
				(post_id IS NOT NULL AND comment_id IS NULL) OR
				(post_id IS NULL AND comment_id IS NOT NULL)
			)
		)`,
	},
	{
		Name: "follows",
		SQL: `
		CREATE TABLE IF NOT EXISTS follows (
			id SERIAL PRIMARY KEY,
			follower_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			following_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT NOW(),
			CONSTRAINT unique_follow UNIQUE(follower_id, following_id),
			CONSTRAINT no_self_follow CHECK (follower_id != following_id)
		)`,
	},
	{
		Name: "stories",
		SQL: `
		CREATE TABLE IF NOT EXISTS stories (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			media_url TEXT NOT NULL,
			media_type VARCHAR(20) NOT NULL,
			views_count INTEGER DEFAULT 0,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
	},
	{
		Name: "story_views",
		SQL: `
		CREATE TABLE IF NOT EXISTS story_views (
			id SERIAL PRIMARY KEY,
			story_id INTEGER REFERENCES stories(id) ON DELETE CASCADE,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			viewed_at TIMESTAMP DEFAULT NOW(),
			CONSTRAINT unique_story_view UNIQUE(story_id, user_id)
		)`,
	},
	{
		Name: "conversations",
		SQL: `
		CREATE TABLE IF NOT EXISTS conversations (
			id SERIAL PRIMARY KEY,
			participant_ids INTEGER[] NOT NULL,
			last_message_id INTEGER,
			updated_at TIMESTAMP DEFAULT NOW(),
			created_at TIMESTAMP DEFAULT NOW()
		)`,
	},
	{
		Name: "messages",
		SQL: `
		CREATE TABLE IF NOT EXISTS messages (
			id SERIAL PRIMARY KEY,
			conversation_id INTEGER REFERENCES conversations(id) ON DELETE CASCADE,
			sender_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			content TEXT,
			media_url TEXT,
			media_type VARCHAR(20),
			is_read BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,
	},
	{
		Name: "notifications",
		SQL: `
		CREATE TABLE IF NOT EXISTS notifications (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			actor_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			type VARCHAR(50) NOT NULL,
			post_id INTEGER REFERENCES posts(id) ON DELETE CASCADE,
			comment_id INTEGER REFERENCES comments(id) ON DELETE CASCADE,
			message TEXT,
			is_read BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
	},
	{
		Name: "hashtags",
		SQL: `
		CREATE TABLE IF NOT EXISTS hashtags (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL,
			posts_count INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
	},
	{
		Name: "post_hashtags",
		SQL: `
		CREATE TABLE IF NOT EXISTS post_hashtags (
			id SERIAL PRIMARY KEY,
			post_id INTEGER REFERENCES posts(id) ON DELETE CASCADE,
			hashtag_id INTEGER REFERENCES hashtags(id) ON DELETE CASCADE,
			CONSTRAINT unique_post_hashtag UNIQUE(post_id, hashtag_id)
		)`,
	},
}

// indexes accelerate the lookup patterns of the resource routes: by owning
// user, reverse-chronological listing, by parent post/story/conversation,
// and by hashtag name.
var indexes = []Migration{
	{Name: "idx_posts_user_id", SQL: `CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id)`},
	{Name: "idx_posts_created_at", SQL: `CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC)`},
	{Name: "idx_comments_post_id", SQL: `CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id)`},
	{Name: "idx_likes_post_id", SQL: `CREATE INDEX IF NOT EXISTS idx_likes_post_id ON likes(post_id)`},
	{Name: "idx_likes_user_id", SQL: `CREATE INDEX IF NOT EXISTS idx_likes_user_id ON likes(user_id)`},
	{Name: "idx_follows_follower_id", SQL: `CREATE INDEX IF NOT EXISTS idx_follows_follower_id ON follows(follower_id)`},
	{Name: "idx_follows_following_id", SQL: `CREATE INDEX IF NOT EXISTS idx_follows_following_id ON follows(following_id)`},
	{Name: "idx_stories_user_id", SQL: `CREATE INDEX IF NOT EXISTS idx_stories_user_id ON stories(user_id)`},
	{Name: "idx_stories_expires_at", SQL: `CREATE INDEX IF NOT EXISTS idx_stories_expires_at ON stories(expires_at)`},
	{Name: "idx_messages_conversation_id", SQL: `CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages(conversation_id)`},
	{Name: "idx_notifications_user_id", SQL: `CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`},
	{Name: "idx_hashtags_name", SQL: `CREATE INDEX IF NOT EXISTS idx_hashtags_name ON hashtags(name)`},
}

// Run brings the schema to its known-good state. It acquires a single
// connection from the pool, applies all table DDL in dependency order, then
// all indexes, and releases the connection on every exit path. The first
// failing statement aborts the run; nothing is rolled back, since every
// statement is independently idempotent.
func Run(ctx context.Context, db *sqlx.DB) error {
	conn, err := db.Connx(ctx)
	if err != nil {
		logger.Log.Errorw("failed to acquire connection for migration", "error", err)
		return err
	}
	defer conn.Close()

	logger.Log.Infow("starting database migration")

	for _, m := range tables {
		if _, err := conn.ExecContext(ctx, m.SQL); err != nil {
			logger.Log.Errorw("migration failed", "table", m.Name, "error", err)
			return err
		}
		logger.Log.Infow("table created", "table", m.Name)
	}

	for _, m := range indexes {
		if _, err := conn.ExecContext(ctx, m.SQL); err != nil {
			logger.Log.Errorw("migration failed", "index", m.Name, "error", err)
			return err
		}
		logger.Log.Infow("index created", "index", m.Name)
	}

	logger.Log.Infow("database migration completed")
	return nil
}
