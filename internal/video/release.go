package video

// evaluateRelease decides whether a viewer may watch v given the video
// right before it in the sequence, the viewer's progress on that
// prerequisite and the viewer's evaluation of it. Recomputed on every
// request, nothing here is cached.
//
// A missing prerequisite or an unknown release type unlocks the video,
// misconfiguration must never lock content for everyone.
func evaluateRelease(v, prereq *Video, progress *Progress, eval *Evaluation) AccessStatusResponse {
	status := AccessStatusResponse{
		VideoID:     v.ID.String(),
		ReleaseType: v.ReleaseType,
		Unlocked:    true,
	}

	if v.ReleaseType == "" || v.ReleaseType == ReleaseFree || prereq == nil {
		return status
	}

	status.PrerequisiteID = prereq.ID.String()
	status.PrerequisiteTitle = prereq.Title
	status.PrerequisiteCompleted = progress != nil && progress.Completed

	switch v.ReleaseType {
	case ReleaseSequential:
		if !status.PrerequisiteCompleted {
			status.Unlocked = false
			status.Reason = "Assista ao vídeo anterior para desbloquear este conteúdo"
		}
	case ReleaseCompletion:
		if !status.PrerequisiteCompleted {
			status.Unlocked = false
			status.Reason = "Conclua o vídeo anterior para desbloquear este conteúdo"
		}
	case ReleaseEvaluation:
		required := v.MinEvaluationScore
		if required < 1 {
			required = 1
		}
		status.RequiredScore = required
		if eval != nil {
			score := eval.Score
			status.CurrentScore = &score
		}
		if eval == nil || eval.Score < required {
			status.Unlocked = false
			status.Reason = "Avalie o vídeo anterior para desbloquear este conteúdo"
		}
	}
	return status
}
