package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/repositories/repotest"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

type socialFixture struct {
	notifications NotificationService
	posts         PostService
	users         *repotest.UserRepository
	notifRepo     *repotest.NotificationRepository
	postRepo      *repotest.PostRepository
	now           time.Time
}

func newSocialFixture() *socialFixture {
	f := &socialFixture{
		users:     repotest.NewUserRepository(),
		notifRepo: repotest.NewNotificationRepository(),
		postRepo:  repotest.NewPostRepository(),
		now:       baseTime,
	}
	notifications := NewNotificationService(f.notifRepo, f.users, zerolog.Nop())
	notifications.(*notificationServiceImpl).now = fixedClock(&f.now)
	f.notifications = notifications
	f.posts = NewPostService(f.postRepo, f.users, notifications, zerolog.Nop())
	return f
}

func (f *socialFixture) createPost(t *testing.T, author uuid.UUID, title string) *models.Post {
	t.Helper()
	post, err := f.posts.CreatePost(context.Background(), author, &dto.CreatePostRequest{Title: title})
	require.NoError(t, err)
	return post
}

func TestPostService_JoinNotifiesAuthor(t *testing.T) {
	ctx := context.Background()

	t.Run("joining another's post produces one notice", func(t *testing.T) {
		f := newSocialFixture()
		author := f.users.Put(newStudent("ada"))
		joiner := f.users.Put(newStudent("Grace Hopper"))
		post := f.createPost(t, author.ID, "Solar Bikes")

		resp, err := f.posts.Join(ctx, post.ID, joiner.ID)
		require.NoError(t, err)
		assert.True(t, resp.Joined)

		all := f.notifRepo.All()
		require.Len(t, all, 1)
		assert.Equal(t, author.ID, all[0].RecipientID)
		assert.Equal(t, joiner.ID, all[0].ActorID)
		assert.Equal(t, models.NotificationTypeLetsBuild, all[0].Type)
		assert.Contains(t, all[0].Message, "Grace Hopper")
		assert.Contains(t, all[0].Message, "Solar Bikes")
		assert.Nil(t, all[0].ReadAt)

		stored, err := f.users.GetByID(ctx, joiner.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.ProjectsJoined)
	})

	t.Run("joining twice is a no-op", func(t *testing.T) {
		f := newSocialFixture()
		author := f.users.Put(newStudent("ada"))
		joiner := f.users.Put(newStudent("bob"))
		post := f.createPost(t, author.ID, "Solar Bikes")

		_, err := f.posts.Join(ctx, post.ID, joiner.ID)
		require.NoError(t, err)
		resp, err := f.posts.Join(ctx, post.ID, joiner.ID)
		require.NoError(t, err)
		assert.False(t, resp.Joined)
		assert.Len(t, f.notifRepo.All(), 1)
	})

	t.Run("author joining own post is silent", func(t *testing.T) {
		f := newSocialFixture()
		author := f.users.Put(newStudent("ada"))
		post := f.createPost(t, author.ID, "Solar Bikes")

		resp, err := f.posts.Join(ctx, post.ID, author.ID)
		require.NoError(t, err)
		assert.True(t, resp.Joined)
		assert.Empty(t, f.notifRepo.All())
	})

	t.Run("unresolvable actor is anonymous", func(t *testing.T) {
		f := newSocialFixture()
		author := f.users.Put(newStudent("ada"))
		nameless := newStudent("x")
		nameless.FullName = "  "
		f.users.Put(nameless)
		post := f.createPost(t, author.ID, "Solar Bikes")

		_, err := f.posts.Join(ctx, post.ID, nameless.ID)
		require.NoError(t, err)

		all := f.notifRepo.All()
		require.Len(t, all, 1)
		assert.Equal(t, CollaborationMessage("Someone", "Solar Bikes"), all[0].Message)
	})

	t.Run("failed notice undoes the membership", func(t *testing.T) {
		f := newSocialFixture()
		author := f.users.Put(newStudent("ada"))
		joiner := f.users.Put(newStudent("bob"))
		post := f.createPost(t, author.ID, "Solar Bikes")
		f.notifRepo.FailCreate = true

		_, err := f.posts.Join(ctx, post.ID, joiner.ID)
		require.ErrorIs(t, err, repotest.ErrInjected)
		assert.False(t, f.postRepo.IsMember(post.ID, joiner.ID))

		stored, err := f.users.GetByID(ctx, joiner.ID)
		require.NoError(t, err)
		assert.Zero(t, stored.ProjectsJoined)
	})

	t.Run("counter failure does not fail the join", func(t *testing.T) {
		f := newSocialFixture()
		author := f.users.Put(newStudent("ada"))
		joiner := f.users.Put(newStudent("bob"))
		post := f.createPost(t, author.ID, "Solar Bikes")
		f.users.FailIncrement = true

		resp, err := f.posts.Join(ctx, post.ID, joiner.ID)
		require.NoError(t, err)
		assert.True(t, resp.Joined)
		assert.True(t, f.postRepo.IsMember(post.ID, joiner.ID))
	})

	t.Run("unknown post", func(t *testing.T) {
		f := newSocialFixture()
		_, err := f.posts.Join(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	})

	t.Run("title is required", func(t *testing.T) {
		f := newSocialFixture()
		_, err := f.posts.CreatePost(ctx, uuid.New(), &dto.CreatePostRequest{Title: " "})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestNotificationService_Read(t *testing.T) {
	ctx := context.Background()
	f := newSocialFixture()
	owner := f.users.Put(newStudent("ada"))
	actor := f.users.Put(newStudent("bob"))

	first, err := f.notifications.NotifyCollaborationRequest(ctx, owner.ID, actor.ID, uuid.New(), "One")
	require.NoError(t, err)
	_, err = f.notifications.NotifyCollaborationRequest(ctx, owner.ID, actor.ID, uuid.New(), "Two")
	require.NoError(t, err)

	count, err := f.notifications.UnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	t.Run("someone else's notice is forbidden", func(t *testing.T) {
		_, err := f.notifications.MarkRead(ctx, first.ID, actor.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown notice", func(t *testing.T) {
		_, err := f.notifications.MarkRead(ctx, uuid.New(), owner.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
	})

	t.Run("mark read keeps the first timestamp", func(t *testing.T) {
		read, err := f.notifications.MarkRead(ctx, first.ID, owner.ID)
		require.NoError(t, err)
		require.NotNil(t, read.ReadAt)
		assert.Equal(t, baseTime, *read.ReadAt)

		f.now = baseTime.Add(time.Hour)
		again, err := f.notifications.MarkRead(ctx, first.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, baseTime, *again.ReadAt)

		unread, err := f.notifications.ListMine(ctx, owner.ID, true)
		require.NoError(t, err)
		require.Len(t, unread, 1)
		assert.NotEqual(t, first.ID, unread[0].ID)
	})

	t.Run("mark all read", func(t *testing.T) {
		n, err := f.notifications.MarkAllRead(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		count, err := f.notifications.UnreadCount(ctx, owner.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		all, err := f.notifications.ListMine(ctx, owner.ID, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}
