package video

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=video_repo.go -destination=mock/video_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, v *Video) error
	FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Video, error)
	FindByID(ctx context.Context, tenantID, id string) (*Video, error)
	Update(ctx context.Context, v *Video) error
	Delete(ctx context.Context, tenantID, id string) error
	IncrementViews(ctx context.Context, id string) error

	FindProgress(ctx context.Context, userID, videoID string) (*Progress, error)
	SaveProgress(ctx context.Context, pr *Progress) error

	CreateComment(ctx context.Context, c *Comment) error
	FindComments(ctx context.Context, videoID string) ([]Comment, error)
	FindCommentByID(ctx context.Context, videoID, commentID string) (*Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
	CountComments(ctx context.Context, videoID string) (int64, error)

	FindEvaluation(ctx context.Context, userID, videoID string) (*Evaluation, error)
	SaveEvaluation(ctx context.Context, e *Evaluation) error
	AverageRating(ctx context.Context, videoID string) (float64, error)

	CreateAttachment(ctx context.Context, a *Attachment) error
	FindAttachments(ctx context.Context, videoID string) ([]Attachment, error)
	FindAttachmentByID(ctx context.Context, videoID, attachmentID string) (*Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Video, error) {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if f.SubcategoryID != "" {
		q = q.Where("subcategory_id = ?", f.SubcategoryID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	var videos []Video
	err := q.Order(`"order" ASC, created_at ASC`).Find(&videos).Error
	return videos, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*Video, error) {
	var v Video
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if err := q.First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) Update(ctx context.Context, v *Video) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	return q.Delete(&Video{}, "id = ?", id).Error
}

func (r *repository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *repository) FindProgress(ctx context.Context, userID, videoID string) (*Progress, error) {
	var pr Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("video_id = ?", videoID).
		First(&pr).Error
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *repository) SaveProgress(ctx context.Context, pr *Progress) error {
	return r.db.WithContext(ctx).Save(pr).Error
}

func (r *repository) CreateComment(ctx context.Context, c *Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindComments(ctx context.Context, videoID string) ([]Comment, error) {
	var comments []Comment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *repository) FindCommentByID(ctx context.Context, videoID, commentID string) (*Comment, error) {
	var c Comment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		First(&c, "id = ?", commentID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) DeleteComment(ctx context.Context, commentID string) error {
	return r.db.WithContext(ctx).Delete(&Comment{}, "id = ?", commentID).Error
}

func (r *repository) CountComments(ctx context.Context, videoID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Comment{}).
		Where("video_id = ?", videoID).
		Count(&count).Error
	return count, err
}

func (r *repository) FindEvaluation(ctx context.Context, userID, videoID string) (*Evaluation, error) {
	var e Evaluation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("video_id = ?", videoID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) SaveEvaluation(ctx context.Context, e *Evaluation) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) AverageRating(ctx context.Context, videoID string) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&Evaluation{}).
		Select("AVG(score)").
		Where("video_id = ?", videoID).
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *repository) CreateAttachment(ctx context.Context, a *Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAttachments(ctx context.Context, videoID string) ([]Attachment, error) {
	var attachments []Attachment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at ASC").
		Find(&attachments).Error
	return attachments, err
}

func (r *repository) FindAttachmentByID(ctx context.Context, videoID, attachmentID string) (*Attachment, error) {
	var a Attachment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		First(&a, "id = ?", attachmentID).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) DeleteAttachment(ctx context.Context, attachmentID string) error {
	return r.db.WithContext(ctx).Delete(&Attachment{}, "id = ?", attachmentID).Error
}
