package video

import (
	"time"

	"go-formacao/internal/permission"

	"github.com/google/uuid"
)

const (
	TypeUpload   = "upload"
	TypeExternal = "external"
)

// Release types control when a video unlocks for a viewer.
const (
	ReleaseFree       = "free"
	ReleaseSequential = "sequential"
	ReleaseCompletion = "completion"
	ReleaseEvaluation = "evaluation"
)

type Video struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID      uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	Title         string     `gorm:"column:title;type:varchar(255);not null"`
	Description   string     `gorm:"column:description;type:text"`
	SubcategoryID *uuid.UUID `gorm:"column:subcategory_id;type:uuid;index"`

	// upload videos carry a stored file, external ones just a URL
	VideoType string `gorm:"column:video_type;type:varchar(20);default:upload"`
	URL       string `gorm:"column:url;type:text"`
	FilePath  string `gorm:"column:file_path;type:text"`
	FileName  string `gorm:"column:file_name;type:varchar(255)"`
	FileSize  int64  `gorm:"column:file_size"`
	MimeType  string `gorm:"column:mime_type;type:varchar(100)"`

	Duration int  `gorm:"column:duration"`
	Order    int  `gorm:"column:order;default:0"`
	IsPublic bool `gorm:"column:is_public;default:false"`

	AllowComments   bool `gorm:"column:allow_comments;default:true"`
	AllowEvaluation bool `gorm:"column:allow_evaluation;default:false"`

	ReleaseType        string     `gorm:"column:release_type;type:varchar(20);default:free"`
	PrerequisiteID     *uuid.UUID `gorm:"column:prerequisite_video_id;type:uuid"`
	MinEvaluationScore int        `gorm:"column:min_evaluation_score;default:1"`

	Views     int64     `gorm:"column:views;default:0"`
	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	permission.Set `gorm:"embedded"`
}

func (Video) TableName() string {
	return "videos"
}

// Progress is one row per viewer per video, upserted as they watch.
type Progress struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID       uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	VideoID        uuid.UUID  `gorm:"column:video_id;type:uuid;not null;uniqueIndex:idx_progress_user_video"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_progress_user_video"`
	WatchedSeconds int        `gorm:"column:watched_seconds;default:0"`
	Completed      bool       `gorm:"column:completed;default:false"`
	CompletedAt    *time.Time `gorm:"column:completed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Progress) TableName() string {
	return "video_progress"
}

type Comment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	VideoID   uuid.UUID `gorm:"column:video_id;type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	UserName  string    `gorm:"column:user_name;type:varchar(255)"`
	Text      string    `gorm:"column:text;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Comment) TableName() string {
	return "video_comments"
}

// Evaluation is one score per viewer per video, resubmitting replaces it.
type Evaluation struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	VideoID   uuid.UUID `gorm:"column:video_id;type:uuid;not null;uniqueIndex:idx_evaluation_user_video"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_evaluation_user_video"`
	Score     int       `gorm:"column:score;not null"`
	Comment   string    `gorm:"column:comment;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Evaluation) TableName() string {
	return "video_evaluations"
}

type Attachment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	VideoID   uuid.UUID `gorm:"column:video_id;type:uuid;not null;index"`
	Title     string    `gorm:"column:title;type:varchar(255)"`
	FilePath  string    `gorm:"column:file_path;type:text;not null"`
	FileName  string    `gorm:"column:file_name;type:varchar(255)"`
	FileSize  int64     `gorm:"column:file_size"`
	MimeType  string    `gorm:"column:mime_type;type:varchar(100)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Attachment) TableName() string {
	return "video_attachments"
}
