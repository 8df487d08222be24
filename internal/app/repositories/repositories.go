package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/db"
)

// psql is the statement builder shared by every repository
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// IUserRepository defines the user-related store operations
type IUserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EnsureUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update models.ProfileUpdate) (*models.User, error)
	UpdateAdminFields(ctx context.Context, id uuid.UUID, adminAbout *string, adminSkills []string) (*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error
	IncrementProjectsJoined(ctx context.Context, id uuid.UUID) error
}

// IStartupRepository defines the startup application store operations
type IStartupRepository interface {
	Create(ctx context.Context, startup *models.Startup) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Startup, error)
	GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*models.Startup, error)
	List(ctx context.Context, status *models.StartupStatus) ([]*models.Startup, error)
	UpdateReview(ctx context.Context, startup *models.Startup) error
	DeleteLatestByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
}

// IJobRepository defines the job store operations
type IJobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, companyID *uuid.UUID) ([]*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// IApplicationRepository defines the job application store operations
type IApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// TrustScoreFunc derives a score from received ratings and the projects-joined counter
type TrustScoreFunc func(ratings []float64, projectsJoined int) float64

// IEndorsementRepository defines the endorsement store operations
type IEndorsementRepository interface {
	Create(ctx context.Context, endorsement *models.Endorsement) error
	ListByRecipient(ctx context.Context, userID uuid.UUID) ([]*models.Endorsement, error)
	RecomputeTrustScore(ctx context.Context, userID uuid.UUID, compute TrustScoreFunc) (float64, error)
}

// INotificationRepository defines the notification store operations
type INotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]*models.Notification, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int64, error)
}

// IPostRepository defines the collaboration post store operations
type IPostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	AddMember(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	RemoveMember(ctx context.Context, postID, userID uuid.UUID) error
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StartupRepository      *StartupRepository
	JobRepository          *JobRepository
	ApplicationRepository  *ApplicationRepository
	EndorsementRepository  *EndorsementRepository
	NotificationRepository *NotificationRepository
	PostRepository         *PostRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(database.Pool),
		StartupRepository:      NewStartupRepository(database.Pool),
		JobRepository:          NewJobRepository(database.Pool),
		ApplicationRepository:  NewApplicationRepository(database.Pool),
		EndorsementRepository:  NewEndorsementRepository(database),
		NotificationRepository: NewNotificationRepository(database.Pool),
		PostRepository:         NewPostRepository(database.Pool),
	}
}

// timestampOrNow keeps caller-supplied timestamps and fills zero ones
func timestampOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

// idOrNew keeps caller-supplied ids and fills nil ones
func idOrNew(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
