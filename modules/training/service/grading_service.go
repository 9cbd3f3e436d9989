package service

import (
	"context"
	"fmt"
	"trainhub-api/core/authz"
	"trainhub-api/core/constants"
	"trainhub-api/core/errors"
	"trainhub-api/core/logger"
	"trainhub-api/core/params"
	"trainhub-api/modules/training/dto"
	"trainhub-api/modules/training/entity"
	"trainhub-api/modules/training/mapper"

	"github.com/google/uuid"
)

// authorizeStudent lets students reach their own work and staff reach the
// work of students in their center or association.
func (s *TrainingService) authorizeStudent(ctx context.Context, id authz.Identity, studentID uuid.UUID) *errors.AppError {
	switch {
	case id.Is(authz.RoleAdmin):
		return nil
	case id.Is(authz.RoleStudent):
		if id.UserID != studentID {
			return forbidden("not allowed to access another student's work")
		}
		return nil
	}
	student, appErr := s.loadUser(ctx, studentID, authz.RoleStudent)
	if appErr != nil {
		return appErr
	}
	if id.Is(authz.RoleAssociationStaff) {
		if id.AssociationID == nil || student.AssociationID == nil || *id.AssociationID != *student.AssociationID {
			return forbidden("student belongs to another association")
		}
		return nil
	}
	if student.CenterID == nil || !id.InCenter(*student.CenterID) {
		return forbidden("student belongs to another center")
	}
	return nil
}

func (s *TrainingService) authorizeGrader(ctx context.Context, id authz.Identity, studentID uuid.UUID) *errors.AppError {
	if !id.Is(authz.RoleAdmin, authz.RoleTeacher) {
		return forbidden("only teachers grade work")
	}
	return s.authorizeStudent(ctx, id, studentID)
}

// Submit stores the acting student's answer to an exercise.
func (s *TrainingService) Submit(ctx context.Context, id authz.Identity, req *dto.SubmissionRequest) (*dto.SubmissionResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if !id.Is(authz.RoleStudent) {
		return nil, invalid("only students submit exercises")
	}
	if _, appErr := s.getExercise(ctx, req.ExerciseID); appErr != nil {
		return nil, appErr
	}

	submission := &entity.Submission{
		ExerciseID: req.ExerciseID,
		StudentID:  id.UserID,
		Content:    req.Content,
		Status:     entity.SubmissionSubmitted,
	}
	if err := s.repo.UpsertSubmission(ctx, submission); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "submit exercise failed", err)
	}
	result := mapper.ToSubmissionResponse(submission)
	return &result, nil
}

func (s *TrainingService) ReviewSubmission(ctx context.Context, id authz.Identity, submissionID uuid.UUID, req *dto.ReviewRequest) (*dto.SubmissionResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	submission, appErr := s.getSubmission(ctx, submissionID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.authorizeGrader(ctx, id, submission.StudentID); appErr != nil {
		return nil, appErr
	}

	now := s.now()
	submission.Status = entity.SubmissionStatus(req.Status)
	submission.Feedback = req.Feedback
	submission.ReviewedBy = &id.UserID
	submission.ReviewedAt = &now
	if err := s.repo.ReviewSubmission(ctx, submission); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "review submission failed", err)
	}
	result := mapper.ToSubmissionResponse(submission)
	return &result, nil
}

func (s *TrainingService) GetSubmission(ctx context.Context, id authz.Identity, submissionID uuid.UUID) (*dto.SubmissionResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	submission, appErr := s.getSubmission(ctx, submissionID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.authorizeStudent(ctx, id, submission.StudentID); appErr != nil {
		return nil, appErr
	}
	result := mapper.ToSubmissionResponse(submission)
	return &result, nil
}

func (s *TrainingService) getSubmission(ctx context.Context, submissionID uuid.UUID) (*entity.Submission, *errors.AppError) {
	submission, err := s.repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get submission failed", err)
	}
	if submission == nil {
		return nil, notFound("submission")
	}
	return submission, nil
}

func (s *TrainingService) ListSubmissions(ctx context.Context, id authz.Identity, filter entity.Filter, p params.QueryParams) (*dto.PaginatedSubmissionResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := narrow(id, &filter, false); appErr != nil {
		return nil, appErr
	}
	submissions, err := s.repo.ListSubmissions(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get submissions failed", err)
	}
	return mapper.ToPage(submissions, mapper.ToSubmissionResponse), nil
}

// GradeExercise records a mark, bounded by the exercise's max points.
func (s *TrainingService) GradeExercise(ctx context.Context, id authz.Identity, req *dto.MarkRequest) (*dto.MarkResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	exercise, appErr := s.getExercise(ctx, req.ExerciseID)
	if appErr != nil {
		return nil, appErr
	}
	if req.Value < 0 || req.Value > exercise.MaxPoints {
		msg := fmt.Sprintf("mark must be between 0 and %g", exercise.MaxPoints)
		return nil, invalid(msg).WithDetails([]errors.Violation{{Field: "value", Code: errors.ErrInvalidInput, Message: msg}})
	}
	if appErr := s.authorizeGrader(ctx, id, req.StudentID); appErr != nil {
		return nil, appErr
	}
	if id.Is(authz.RoleAdmin) {
		if _, appErr := s.loadUser(ctx, req.StudentID, authz.RoleStudent); appErr != nil {
			return nil, appErr
		}
	}

	mark := &entity.Mark{
		ExerciseID: req.ExerciseID,
		StudentID:  req.StudentID,
		Value:      req.Value,
		Feedback:   req.Feedback,
		GradedBy:   &id.UserID,
	}
	if err := s.repo.UpsertMark(ctx, mark); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "grade exercise failed", err)
	}
	logger.Info("TrainingService:GradeExercise", "exercise_id", mark.ExerciseID, "student_id", mark.StudentID, "graded_by", id.UserID)
	result := mapper.ToMarkResponse(mark)
	return &result, nil
}

func (s *TrainingService) DeleteMark(ctx context.Context, id authz.Identity, markID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	mark, err := s.repo.GetMark(ctx, markID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get mark failed", err)
	}
	if mark == nil {
		return notFound("mark")
	}
	if appErr := s.authorizeGrader(ctx, id, mark.StudentID); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteMark(ctx, markID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete mark failed", err)
	}
	return nil
}

func (s *TrainingService) ListMarks(ctx context.Context, id authz.Identity, filter entity.Filter, p params.QueryParams) (*dto.PaginatedMarkResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := narrow(id, &filter, false); appErr != nil {
		return nil, appErr
	}
	marks, err := s.repo.ListMarks(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get marks failed", err)
	}
	return mapper.ToPage(marks, mapper.ToMarkResponse), nil
}

// LogProgress records what the acting teacher covered in a session.
func (s *TrainingService) LogProgress(ctx context.Context, id authz.Identity, req *dto.ProgressLogRequest) (*dto.ProgressLogResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if !id.Is(authz.RoleTeacher) {
		return nil, invalid("only teachers log progress")
	}
	l, err := mapper.ToProgressLogEntity(req, id.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := s.checkGroup(ctx, l.GroupID, l.TrainingID); appErr != nil {
		return nil, appErr
	}
	if appErr := s.checkDistribution(ctx, l.DistributionID, l.TrainingID); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.CreateProgressLog(ctx, l); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "log progress failed", err)
	}
	result := mapper.ToProgressLogResponse(l)
	return &result, nil
}

func (s *TrainingService) DeleteProgressLog(ctx context.Context, id authz.Identity, logID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	l, err := s.repo.GetProgressLog(ctx, logID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get progress log failed", err)
	}
	if l == nil {
		return notFound("progress log")
	}
	if !ownsOrAdmin(id, &l.TeacherID) {
		return forbidden("not allowed to delete this progress log")
	}
	if err := s.repo.DeleteProgressLog(ctx, logID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete progress log failed", err)
	}
	return nil
}

func (s *TrainingService) ListProgressLogs(ctx context.Context, id authz.Identity, filter entity.Filter, p params.QueryParams) (*dto.PaginatedProgressLogResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := narrowToGroup(id, &filter); appErr != nil {
		return nil, appErr
	}
	logs, err := s.repo.ListProgressLogs(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get progress logs failed", err)
	}
	return mapper.ToPage(logs, mapper.ToProgressLogResponse), nil
}
