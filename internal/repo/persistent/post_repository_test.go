package persistent

import (
	"context"
	"testing"
	"time"

	"magazine/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(`INSERT INTO "posts"`).WillReturnResult(sqlmock.NewResult(0, 1))

	post := &entity.Post{AuthorID: "user-1", Title: "Hello", Content: "World"}
	err := repo.Create(context.Background(), post)

	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"."deleted_at" IS NULL ORDER BY posts.created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "title"}))

	posts, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.MatchExpectationsInOrder(false)
	repo := NewPostRepository(db)

	now := time.Now()
	mock.ExpectQuery(`FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "title", "content", "image", "created_at", "updated_at", "deleted_at"}).
			AddRow("post-1", "user-1", "Hello", "World", "", now, now, nil))
	mock.ExpectQuery(`FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password"}).
			AddRow("user-1", "alice", "alice@example.com", "hash"))
	mock.ExpectQuery(`FROM "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "author_id", "body"}))
	mock.ExpectQuery(`SELECT post_id, COUNT\(\*\) AS count FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "count"}).AddRow("post-1", 2))

	post, err := repo.GetByID(context.Background(), "post-1")

	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "alice", post.Author.Username)
	assert.Empty(t, post.Comments)
	assert.Equal(t, int64(2), post.LikesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	post, err := repo.GetByID(context.Background(), "missing")

	assert.Nil(t, post)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPostRepository_DeleteIsSoft(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(`UPDATE "posts" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "posts" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "post-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "post-1"), entity.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateNeverTouchesAuthor(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(`UPDATE "posts" SET "content"=\$1,"image"=\$2,"title"=\$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &entity.Post{ID: "post-1", AuthorID: "someone-else", Title: "T", Content: "C"})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
