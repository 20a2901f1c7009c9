package mapper

import (
	"dronedesk/internal/api/handler/request"
	"dronedesk/internal/api/handler/response"
	"dronedesk/internal/api/models"
)

func ToJobModel(req request.CreateJob) models.Job {
	job := models.Job{
		Title:         req.Title,
		Description:   req.Description,
		Type:          req.Type,
		ClientID:      req.ClientID,
		Priority:      req.Priority,
		Location:      req.Location,
		ScheduledDate: req.ScheduledDate,
		ClientPrice:   req.ClientPrice,
		PilotPayout:   req.PilotPayout,
	}
	if req.CommissionRate != nil {
		job.CommissionRate = *req.CommissionRate
	}
	return job
}

func ToJobResponse(job models.Job) response.Job {
	return response.Job{
		ID:            job.ID,
		Title:         job.Title,
		Description:   job.Description,
		Type:          job.Type,
		Status:        job.Status,
		Priority:      job.Priority,
		ClientID:      job.ClientID,
		Location:      job.Location,
		ScheduledDate: job.ScheduledDate,
		CompletedDate: job.CompletedDate,
		ClientPrice:   job.ClientPrice,
		PilotPayout:   job.PilotPayout,
		Commission:    job.Commission(),
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
}

func ToJobResponses(jobs []models.Job) []response.Job {
	out := make([]response.Job, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, ToJobResponse(job))
	}
	return out
}

func ToJobWithAssignments(job models.Job) response.JobWithAssignments {
	return response.JobWithAssignments{
		Job:         ToJobResponse(job),
		Assignments: ToAssignmentResponses(job.Assignments),
	}
}

func ToAssignmentResponse(a models.JobAssignment) response.Assignment {
	out := response.Assignment{
		ID:         a.ID,
		JobID:      a.JobID,
		PilotID:    a.PilotID,
		AssignedAt: a.AssignedAt,
		AcceptedAt: a.AcceptedAt,
		Superseded: a.Superseded,
		Notes:      a.Notes,
	}
	if a.Payment != nil {
		payment := ToPaymentResponse(*a.Payment)
		out.Payment = &payment
	}
	return out
}

func ToAssignmentResponses(assignments []models.JobAssignment) []response.Assignment {
	out := make([]response.Assignment, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, ToAssignmentResponse(a))
	}
	return out
}
