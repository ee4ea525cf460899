package video

import (
	"context"
	"errors"
	"time"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	"go-formacao/internal/permission"
	"go-formacao/internal/shared/apperror"
	tenanterrors "go-formacao/internal/tenant/errors"
	videoerrors "go-formacao/internal/video/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=video_service.go -destination=mock/video_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]VideoResponse, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (VideoResponse, error)
	Create(ctx context.Context, p *identity.Principal, req CreateVideoRequest) (VideoResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateVideoRequest) (VideoResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) (removedFiles []string, err error)
	AttachFile(ctx context.Context, p *identity.Principal, id string, meta FileMeta) (VideoResponse, error)
	AccessStatus(ctx context.Context, p *identity.Principal, id string) (AccessStatusResponse, error)
	SaveProgress(ctx context.Context, p *identity.Principal, id string, req ProgressRequest) (ProgressResponse, error)
	GetComments(ctx context.Context, p *identity.Principal, id string) ([]CommentResponse, error)
	AddComment(ctx context.Context, p *identity.Principal, id string, req CommentRequest) (CommentResponse, error)
	DeleteComment(ctx context.Context, p *identity.Principal, id, commentID string) error
	Evaluate(ctx context.Context, p *identity.Principal, id string, req EvaluationRequest) (EvaluationResponse, error)
	GetAttachments(ctx context.Context, p *identity.Principal, id string) ([]AttachmentResponse, error)
	AddAttachment(ctx context.Context, p *identity.Principal, id, title string, meta FileMeta) (AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, p *identity.Principal, id, attachmentID string) (removedFile string, err error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("video.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("video.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func tenantFor(p *identity.Principal) string {
	if p.IsSuperadmin() {
		return ""
	}
	return p.TenantID
}

func (s *service) GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]VideoResponse, error) {
	videos, err := s.repo.FindAll(ctx, tenantFor(p), f)
	if err != nil {
		return nil, err
	}

	visible := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		if !s.canAccess(p, &v) {
			continue
		}
		resp, err := s.enrich(ctx, v)
		if err != nil {
			return nil, err
		}
		visible = append(visible, resp)
	}
	return visible, nil
}

// GetByID counts the read, every permitted fetch bumps the view counter.
func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (VideoResponse, error) {
	v, err := s.findAccessible(ctx, p, id)
	if err != nil {
		return VideoResponse{}, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return VideoResponse{}, err
	}
	v.Views++

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     v.TenantID.String(),
		Action:       audit.ActionView,
		ResourceType: "videos",
		ResourceID:   v.ID.String(),
		Details:      "Vídeo " + v.Title + " visualizado",
	}); err != nil {
		return VideoResponse{}, err
	}

	return s.enrich(ctx, *v)
}

func (s *service) Create(ctx context.Context, p *identity.Principal, req CreateVideoRequest) (VideoResponse, error) {
	if p.TenantID == "" {
		return VideoResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return VideoResponse{}, tenanterrors.ErrInvalidTenantID
	}
	creatorID, err := uuid.Parse(p.ID)
	if err != nil {
		return VideoResponse{}, videoerrors.ErrInvalidVideoID
	}

	v := &Video{
		ID:                 uuid.New(),
		TenantID:           tid,
		Title:              req.Title,
		Description:        req.Description,
		VideoType:          req.VideoType,
		URL:                req.URL,
		Duration:           req.Duration,
		Order:              req.Order,
		IsPublic:           req.IsPublic,
		AllowComments:      true,
		AllowEvaluation:    req.AllowEvaluation,
		ReleaseType:        req.ReleaseType,
		MinEvaluationScore: req.MinEvaluationScore,
		CreatedBy:          creatorID,
		Set: permission.Set{
			AllowedUserIDs:     req.AllowedUsers,
			AllowedLocationIDs: req.AllowedLocs,
			AllowedFunctionIDs: req.AllowedFuncs,
			AllowedStageIDs:    req.AllowedStages,
		},
	}
	if v.VideoType == "" {
		v.VideoType = TypeUpload
	}
	if v.ReleaseType == "" {
		v.ReleaseType = ReleaseFree
	}
	if v.MinEvaluationScore == 0 {
		v.MinEvaluationScore = 1
	}
	if req.AllowComments != nil {
		v.AllowComments = *req.AllowComments
	}
	if req.SubcategoryID != "" {
		scID, err := uuid.Parse(req.SubcategoryID)
		if err != nil {
			return VideoResponse{}, apperror.InvalidField("subcategory_id")
		}
		v.SubcategoryID = &scID
	}
	if req.PrerequisiteID != "" {
		preID, err := uuid.Parse(req.PrerequisiteID)
		if err != nil {
			return VideoResponse{}, apperror.InvalidField("prerequisite_video_id")
		}
		v.PrerequisiteID = &preID
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return VideoResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionCreate,
		ResourceType: "videos",
		ResourceID:   v.ID.String(),
		Details:      "Vídeo " + v.Title + " criado",
	}); err != nil {
		return VideoResponse{}, err
	}

	return mapToResponse(*v, 0, 0), nil
}

func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateVideoRequest) (VideoResponse, error) {
	v, err := s.findVisible(ctx, p, id)
	if err != nil {
		return VideoResponse{}, err
	}

	if req.Title != nil {
		v.Title = *req.Title
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.SubcategoryID != nil {
		if *req.SubcategoryID == "" {
			v.SubcategoryID = nil
		} else {
			scID, err := uuid.Parse(*req.SubcategoryID)
			if err != nil {
				return VideoResponse{}, apperror.InvalidField("subcategory_id")
			}
			v.SubcategoryID = &scID
		}
	}
	if req.URL != nil {
		v.URL = *req.URL
	}
	if req.Duration != nil {
		v.Duration = *req.Duration
	}
	if req.Order != nil {
		v.Order = *req.Order
	}
	if req.IsPublic != nil {
		v.IsPublic = *req.IsPublic
	}
	if req.AllowComments != nil {
		v.AllowComments = *req.AllowComments
	}
	if req.AllowEvaluation != nil {
		v.AllowEvaluation = *req.AllowEvaluation
	}
	if req.ReleaseType != nil {
		v.ReleaseType = *req.ReleaseType
	}
	if req.PrerequisiteID != nil {
		if *req.PrerequisiteID == "" {
			v.PrerequisiteID = nil
		} else {
			preID, err := uuid.Parse(*req.PrerequisiteID)
			if err != nil {
				return VideoResponse{}, apperror.InvalidField("prerequisite_video_id")
			}
			v.PrerequisiteID = &preID
		}
	}
	if req.MinEvaluationScore != nil {
		v.MinEvaluationScore = *req.MinEvaluationScore
	}
	if req.AllowedUsers != nil {
		v.AllowedUserIDs = *req.AllowedUsers
	}
	if req.AllowedLocs != nil {
		v.AllowedLocationIDs = *req.AllowedLocs
	}
	if req.AllowedFuncs != nil {
		v.AllowedFunctionIDs = *req.AllowedFuncs
	}
	if req.AllowedStages != nil {
		v.AllowedStageIDs = *req.AllowedStages
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return VideoResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     v.TenantID.String(),
		Action:       audit.ActionUpdate,
		ResourceType: "videos",
		ResourceID:   v.ID.String(),
		Details:      "Vídeo " + v.Title + " atualizado",
	}); err != nil {
		return VideoResponse{}, err
	}

	return s.enrich(ctx, *v)
}

// Delete returns every stored file path tied to the video, the uploaded
// media and its attachments, so the handler can clean the blobs up.
func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) ([]string, error) {
	v, err := s.findVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}

	var paths []string
	if v.FilePath != "" {
		paths = append(paths, v.FilePath)
	}
	attachments, err := s.repo.FindAttachments(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, a := range attachments {
		paths = append(paths, a.FilePath)
	}

	if err := s.repo.Delete(ctx, tenantFor(p), id); err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     v.TenantID.String(),
		Action:       audit.ActionDelete,
		ResourceType: "videos",
		ResourceID:   id,
		Details:      "Vídeo " + v.Title + " removido",
	}); err != nil {
		return nil, err
	}

	return paths, nil
}

func (s *service) AttachFile(ctx context.Context, p *identity.Principal, id string, meta FileMeta) (VideoResponse, error) {
	v, err := s.findVisible(ctx, p, id)
	if err != nil {
		return VideoResponse{}, err
	}

	v.VideoType = TypeUpload
	v.FilePath = meta.Path
	v.FileName = meta.Name
	v.FileSize = meta.Size
	v.MimeType = meta.MimeType

	if err := s.repo.Update(ctx, v); err != nil {
		return VideoResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     v.TenantID.String(),
		Action:       audit.ActionUpload,
		ResourceType: "videos",
		ResourceID:   v.ID.String(),
		Details:      "Arquivo " + meta.Name + " enviado",
	}); err != nil {
		return VideoResponse{}, err
	}

	return s.enrich(ctx, *v)
}

func (s *service) AccessStatus(ctx context.Context, p *identity.Principal, id string) (AccessStatusResponse, error) {
	v, err := s.findAccessible(ctx, p, id)
	if err != nil {
		return AccessStatusResponse{}, err
	}
	return s.releaseFor(ctx, p, v)
}

// SaveProgress upserts the caller's watch row. Completion is sticky, a
// later partial update never un-completes a video.
func (s *service) SaveProgress(ctx context.Context, p *identity.Principal, id string, req ProgressRequest) (ProgressResponse, error) {
	v, err := s.findUnlocked(ctx, p, id)
	if err != nil {
		return ProgressResponse{}, err
	}

	userID, err := uuid.Parse(p.ID)
	if err != nil {
		return ProgressResponse{}, videoerrors.ErrInvalidVideoID
	}

	pr, err := s.repo.FindProgress(ctx, p.ID, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ProgressResponse{}, err
		}
		pr = &Progress{
			ID:       uuid.New(),
			TenantID: v.TenantID,
			VideoID:  v.ID,
			UserID:   userID,
		}
	}

	if req.WatchedSeconds > pr.WatchedSeconds {
		pr.WatchedSeconds = req.WatchedSeconds
	}
	if req.Completed && !pr.Completed {
		pr.Completed = true
		now := time.Now().UTC()
		pr.CompletedAt = &now
	}

	if err := s.repo.SaveProgress(ctx, pr); err != nil {
		return ProgressResponse{}, err
	}
	return mapProgress(*pr), nil
}

func (s *service) GetComments(ctx context.Context, p *identity.Principal, id string) ([]CommentResponse, error) {
	if _, err := s.findAccessible(ctx, p, id); err != nil {
		return nil, err
	}
	comments, err := s.repo.FindComments(ctx, id)
	if err != nil {
		return nil, err
	}

	res := make([]CommentResponse, len(comments))
	for i, c := range comments {
		res[i] = mapComment(c)
	}
	return res, nil
}

func (s *service) AddComment(ctx context.Context, p *identity.Principal, id string, req CommentRequest) (CommentResponse, error) {
	v, err := s.findAccessible(ctx, p, id)
	if err != nil {
		return CommentResponse{}, err
	}
	if !v.AllowComments {
		return CommentResponse{}, videoerrors.ErrCommentsDisabled
	}

	userID, err := uuid.Parse(p.ID)
	if err != nil {
		return CommentResponse{}, videoerrors.ErrInvalidVideoID
	}

	c := &Comment{
		ID:       uuid.New(),
		TenantID: v.TenantID,
		VideoID:  v.ID,
		UserID:   userID,
		UserName: p.Name,
		Text:     req.Text,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return CommentResponse{}, err
	}
	return mapComment(*c), nil
}

func (s *service) DeleteComment(ctx context.Context, p *identity.Principal, id, commentID string) error {
	if _, err := s.findVisible(ctx, p, id); err != nil {
		return err
	}
	if _, err := uuid.Parse(commentID); err != nil {
		return videoerrors.ErrCommentNotFound
	}

	c, err := s.repo.FindCommentByID(ctx, id, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return videoerrors.ErrCommentNotFound
		}
		return err
	}
	if c.UserID.String() != p.ID && !p.IsAdmin() {
		return videoerrors.ErrNotCommentAuthor
	}

	return s.repo.DeleteComment(ctx, commentID)
}

// Evaluate stores one score per viewer, submitting again replaces the
// previous one.
func (s *service) Evaluate(ctx context.Context, p *identity.Principal, id string, req EvaluationRequest) (EvaluationResponse, error) {
	v, err := s.findAccessible(ctx, p, id)
	if err != nil {
		return EvaluationResponse{}, err
	}
	if !v.AllowEvaluation {
		return EvaluationResponse{}, videoerrors.ErrEvaluationDisabled
	}

	userID, err := uuid.Parse(p.ID)
	if err != nil {
		return EvaluationResponse{}, videoerrors.ErrInvalidVideoID
	}

	e, err := s.repo.FindEvaluation(ctx, p.ID, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return EvaluationResponse{}, err
		}
		e = &Evaluation{
			ID:       uuid.New(),
			TenantID: v.TenantID,
			VideoID:  v.ID,
			UserID:   userID,
		}
	}
	e.Score = req.Score
	e.Comment = req.Comment

	if err := s.repo.SaveEvaluation(ctx, e); err != nil {
		return EvaluationResponse{}, err
	}
	return EvaluationResponse{
		VideoID: e.VideoID.String(),
		UserID:  e.UserID.String(),
		Score:   e.Score,
		Comment: e.Comment,
	}, nil
}

func (s *service) GetAttachments(ctx context.Context, p *identity.Principal, id string) ([]AttachmentResponse, error) {
	if _, err := s.findAccessible(ctx, p, id); err != nil {
		return nil, err
	}
	attachments, err := s.repo.FindAttachments(ctx, id)
	if err != nil {
		return nil, err
	}

	res := make([]AttachmentResponse, len(attachments))
	for i, a := range attachments {
		res[i] = mapAttachment(a)
	}
	return res, nil
}

func (s *service) AddAttachment(ctx context.Context, p *identity.Principal, id, title string, meta FileMeta) (AttachmentResponse, error) {
	v, err := s.findVisible(ctx, p, id)
	if err != nil {
		return AttachmentResponse{}, err
	}

	a := &Attachment{
		ID:       uuid.New(),
		TenantID: v.TenantID,
		VideoID:  v.ID,
		Title:    title,
		FilePath: meta.Path,
		FileName: meta.Name,
		FileSize: meta.Size,
		MimeType: meta.MimeType,
	}
	if err := s.repo.CreateAttachment(ctx, a); err != nil {
		return AttachmentResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     v.TenantID.String(),
		Action:       audit.ActionUpload,
		ResourceType: "videos",
		ResourceID:   v.ID.String(),
		Details:      "Anexo " + meta.Name + " enviado",
	}); err != nil {
		return AttachmentResponse{}, err
	}

	return mapAttachment(*a), nil
}

func (s *service) DeleteAttachment(ctx context.Context, p *identity.Principal, id, attachmentID string) (string, error) {
	if _, err := s.findVisible(ctx, p, id); err != nil {
		return "", err
	}
	if _, err := uuid.Parse(attachmentID); err != nil {
		return "", videoerrors.ErrAttachmentNotFound
	}

	a, err := s.repo.FindAttachmentByID(ctx, id, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", videoerrors.ErrAttachmentNotFound
		}
		return "", err
	}

	if err := s.repo.DeleteAttachment(ctx, attachmentID); err != nil {
		return "", err
	}
	return a.FilePath, nil
}

func (s *service) canAccess(p *identity.Principal, v *Video) bool {
	if v.IsPublic {
		return true
	}
	return permission.Check(p, &v.Set)
}

// releaseFor resolves the prerequisite chain for one viewer and video.
// Admins bypass release gates, they need to see locked content to manage it.
func (s *service) releaseFor(ctx context.Context, p *identity.Principal, v *Video) (AccessStatusResponse, error) {
	if p.IsAdmin() {
		return AccessStatusResponse{VideoID: v.ID.String(), ReleaseType: v.ReleaseType, Unlocked: true}, nil
	}

	// a dangling prerequisite id behaves like no prerequisite at all
	var prereq *Video
	if v.PrerequisiteID != nil {
		found, err := s.repo.FindByID(ctx, v.TenantID.String(), v.PrerequisiteID.String())
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return AccessStatusResponse{}, err
		}
		prereq = found
	}

	var progress *Progress
	var eval *Evaluation
	if prereq != nil {
		pr, err := s.repo.FindProgress(ctx, p.ID, prereq.ID.String())
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return AccessStatusResponse{}, err
		}
		progress = pr
		if v.ReleaseType == ReleaseEvaluation {
			ev, err := s.repo.FindEvaluation(ctx, p.ID, prereq.ID.String())
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return AccessStatusResponse{}, err
			}
			eval = ev
		}
	}

	return evaluateRelease(v, prereq, progress, eval), nil
}

func (s *service) findVisible(ctx context.Context, p *identity.Principal, id string) (*Video, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, videoerrors.ErrInvalidVideoID
	}
	v, err := s.repo.FindByID(ctx, tenantFor(p), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, videoerrors.ErrVideoNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *service) findAccessible(ctx context.Context, p *identity.Principal, id string) (*Video, error) {
	v, err := s.findVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(p, v) {
		return nil, videoerrors.ErrContentRestricted
	}
	return v, nil
}

func (s *service) findUnlocked(ctx context.Context, p *identity.Principal, id string) (*Video, error) {
	v, err := s.findAccessible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	status, err := s.releaseFor(ctx, p, v)
	if err != nil {
		return nil, err
	}
	if !status.Unlocked {
		return nil, videoerrors.ErrVideoLocked
	}
	return v, nil
}

func (s *service) enrich(ctx context.Context, v Video) (VideoResponse, error) {
	count, err := s.repo.CountComments(ctx, v.ID.String())
	if err != nil {
		return VideoResponse{}, err
	}
	avg, err := s.repo.AverageRating(ctx, v.ID.String())
	if err != nil {
		return VideoResponse{}, err
	}
	return mapToResponse(v, count, avg), nil
}

func mapToResponse(v Video, commentCount int64, averageRating float64) VideoResponse {
	resp := VideoResponse{
		ID:                 v.ID.String(),
		TenantID:           v.TenantID.String(),
		Title:              v.Title,
		Description:        v.Description,
		VideoType:          v.VideoType,
		URL:                v.URL,
		FileName:           v.FileName,
		FileSize:           v.FileSize,
		MimeType:           v.MimeType,
		Duration:           v.Duration,
		Order:              v.Order,
		IsPublic:           v.IsPublic,
		AllowComments:      v.AllowComments,
		AllowEvaluation:    v.AllowEvaluation,
		ReleaseType:        v.ReleaseType,
		MinEvaluationScore: v.MinEvaluationScore,
		Views:              v.Views,
		CommentCount:       commentCount,
		AverageRating:      averageRating,
		Permissions:        v.Set,
		CreatedAt:          v.CreatedAt.Format(time.RFC3339),
	}
	if v.SubcategoryID != nil {
		resp.SubcategoryID = v.SubcategoryID.String()
	}
	if v.PrerequisiteID != nil {
		resp.PrerequisiteID = v.PrerequisiteID.String()
	}
	return resp
}

func mapProgress(pr Progress) ProgressResponse {
	resp := ProgressResponse{
		VideoID:        pr.VideoID.String(),
		UserID:         pr.UserID.String(),
		WatchedSeconds: pr.WatchedSeconds,
		Completed:      pr.Completed,
	}
	if pr.CompletedAt != nil {
		resp.CompletedAt = pr.CompletedAt.Format(time.RFC3339)
	}
	return resp
}

func mapComment(c Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		VideoID:   c.VideoID.String(),
		UserID:    c.UserID.String(),
		UserName:  c.UserName,
		Text:      c.Text,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func mapAttachment(a Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:        a.ID.String(),
		VideoID:   a.VideoID.String(),
		Title:     a.Title,
		FileName:  a.FileName,
		FileSize:  a.FileSize,
		MimeType:  a.MimeType,
		FilePath:  a.FilePath,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
