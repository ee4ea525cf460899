package assessment

type ScoreInput struct {
	IndicatorID   string  `json:"indicator_id" binding:"omitempty,uuid"`
	IndicatorName string  `json:"indicator_name" binding:"required"`
	Score         float64 `json:"score"`
	MaxScore      float64 `json:"max_score" binding:"required,gt=0"`
	Comment       string  `json:"comment"`
}

type CreateAssessmentRequest struct {
	UserID         string       `json:"user_id" binding:"required,uuid"`
	Type           string       `json:"type" binding:"required,oneof=annual stage_evaluation follow_up"`
	Status         string       `json:"status" binding:"omitempty,oneof=draft in_progress completed reviewed"`
	AssessmentDate string       `json:"assessment_date" binding:"required"`
	Notes          string       `json:"notes"`
	Scores         []ScoreInput `json:"scores" binding:"omitempty,dive"`
}

type UpdateAssessmentRequest struct {
	Type           *string      `json:"type" binding:"omitempty,oneof=annual stage_evaluation follow_up"`
	Status         *string      `json:"status" binding:"omitempty,oneof=draft in_progress completed reviewed"`
	AssessmentDate *string      `json:"assessment_date"`
	Notes          *string      `json:"notes"`
	Scores         []ScoreInput `json:"scores" binding:"omitempty,dive"`
}

type ListFilter struct {
	UserID      string
	EvaluatorID string
	Type        string
	Status      string
	Year        int
}

type ScoreResponse struct {
	ID            string  `json:"id"`
	IndicatorID   string  `json:"indicator_id,omitempty"`
	IndicatorName string  `json:"indicator_name"`
	Score         float64 `json:"score"`
	MaxScore      float64 `json:"max_score"`
	Percent       float64 `json:"percent"`
	Comment       string  `json:"comment,omitempty"`
}

type AssessmentResponse struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenant_id"`
	UserID         string          `json:"user_id"`
	EvaluatorID    string          `json:"evaluator_id"`
	EvaluatorName  string          `json:"evaluator_name"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	AssessmentDate string          `json:"assessment_date"`
	Notes          string          `json:"notes,omitempty"`
	OverallScore   float64         `json:"overall_score"`
	Scores         []ScoreResponse `json:"scores,omitempty"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

type CreateIndicatorRequest struct {
	StageID     string  `json:"stage_id" binding:"required,uuid"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	MaxScore    float64 `json:"max_score" binding:"omitempty,gt=0"`
}

type UpdateIndicatorRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	MaxScore    *float64 `json:"max_score" binding:"omitempty,gt=0"`
}

type IndicatorResponse struct {
	ID          string  `json:"id"`
	StageID     string  `json:"stage_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	MaxScore    float64 `json:"max_score"`
}

// ReadinessRow summarizes how close a user at a stage is to moving on,
// based on their latest completed or reviewed assessment.
type ReadinessRow struct {
	UserID         string   `json:"user_id"`
	UserName       string   `json:"user_name"`
	OverallScore   *float64 `json:"overall_score,omitempty"`
	AssessmentDate string   `json:"assessment_date,omitempty"`
	Ready          bool     `json:"ready"`
}
