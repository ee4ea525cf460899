package video

import "go-formacao/internal/permission"

type CreateVideoRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	SubcategoryID string `json:"subcategory_id" binding:"omitempty,uuid"`

	VideoType string `json:"video_type" binding:"omitempty,oneof=upload external"`
	URL       string `json:"url"`
	Duration  int    `json:"duration" binding:"omitempty,min=0"`
	Order     int    `json:"order" binding:"omitempty,min=0"`
	IsPublic  bool   `json:"is_public"`

	AllowComments   *bool `json:"allow_comments"`
	AllowEvaluation bool  `json:"allow_evaluation"`

	ReleaseType        string `json:"release_type" binding:"omitempty,oneof=free sequential completion evaluation"`
	PrerequisiteID     string `json:"prerequisite_video_id" binding:"omitempty,uuid"`
	MinEvaluationScore int    `json:"min_evaluation_score" binding:"omitempty,min=1,max=5"`

	AllowedUsers  []string `json:"allowed_user_ids"`
	AllowedLocs   []string `json:"allowed_location_ids"`
	AllowedFuncs  []string `json:"allowed_function_ids"`
	AllowedStages []string `json:"allowed_stage_ids"`
}

type UpdateVideoRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	SubcategoryID *string `json:"subcategory_id" binding:"omitempty,uuid"`

	URL      *string `json:"url"`
	Duration *int    `json:"duration" binding:"omitempty,min=0"`
	Order    *int    `json:"order" binding:"omitempty,min=0"`
	IsPublic *bool   `json:"is_public"`

	AllowComments   *bool `json:"allow_comments"`
	AllowEvaluation *bool `json:"allow_evaluation"`

	ReleaseType        *string `json:"release_type" binding:"omitempty,oneof=free sequential completion evaluation"`
	PrerequisiteID     *string `json:"prerequisite_video_id" binding:"omitempty,uuid"`
	MinEvaluationScore *int    `json:"min_evaluation_score" binding:"omitempty,min=1,max=5"`

	AllowedUsers  *[]string `json:"allowed_user_ids"`
	AllowedLocs   *[]string `json:"allowed_location_ids"`
	AllowedFuncs  *[]string `json:"allowed_function_ids"`
	AllowedStages *[]string `json:"allowed_stage_ids"`
}

type ProgressRequest struct {
	WatchedSeconds int  `json:"watched_seconds" binding:"omitempty,min=0"`
	Completed      bool `json:"completed"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type EvaluationRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ListFilter struct {
	SubcategoryID string
	Search        string
}

type FileMeta struct {
	Path     string
	Name     string
	Size     int64
	MimeType string
}

type VideoResponse struct {
	ID            string `json:"id"`
	TenantID      string `json:"tenant_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	SubcategoryID string `json:"subcategory_id,omitempty"`

	VideoType string `json:"video_type"`
	URL       string `json:"url,omitempty"`
	FileName  string `json:"file_name,omitempty"`
	FileSize  int64  `json:"file_size"`
	MimeType  string `json:"mime_type,omitempty"`

	Duration int  `json:"duration"`
	Order    int  `json:"order"`
	IsPublic bool `json:"is_public"`

	AllowComments   bool `json:"allow_comments"`
	AllowEvaluation bool `json:"allow_evaluation"`

	ReleaseType        string `json:"release_type"`
	PrerequisiteID     string `json:"prerequisite_video_id,omitempty"`
	MinEvaluationScore int    `json:"min_evaluation_score"`

	Views         int64   `json:"views"`
	CommentCount  int64   `json:"comment_count"`
	AverageRating float64 `json:"average_rating"`

	Permissions permission.Set `json:"permissions"`
	CreatedAt   string         `json:"created_at"`
}

type ProgressResponse struct {
	VideoID        string `json:"video_id"`
	UserID         string `json:"user_id"`
	WatchedSeconds int    `json:"watched_seconds"`
	Completed      bool   `json:"completed"`
	CompletedAt    string `json:"completed_at,omitempty"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	VideoID   string `json:"video_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type EvaluationResponse struct {
	VideoID string `json:"video_id"`
	UserID  string `json:"user_id"`
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

type AttachmentResponse struct {
	ID        string `json:"id"`
	VideoID   string `json:"video_id"`
	Title     string `json:"title,omitempty"`
	FileName  string `json:"file_name"`
	FileSize  int64  `json:"file_size"`
	MimeType  string `json:"mime_type,omitempty"`
	FilePath  string `json:"file_path"`
	CreatedAt string `json:"created_at"`
}

// AccessStatusResponse explains whether the caller may watch a video and,
// when locked, what is missing.
type AccessStatusResponse struct {
	VideoID               string `json:"video_id"`
	Unlocked              bool   `json:"unlocked"`
	Reason                string `json:"reason,omitempty"`
	ReleaseType           string `json:"release_type"`
	PrerequisiteID        string `json:"prerequisite_id,omitempty"`
	PrerequisiteTitle     string `json:"prerequisite_title,omitempty"`
	PrerequisiteCompleted bool   `json:"prerequisite_completed"`
	RequiredScore         int    `json:"required_score,omitempty"`
	CurrentScore          *int   `json:"current_score,omitempty"`
}
