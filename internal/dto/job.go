package dto

import "time"

// CreateJobRequest is the JSON body for POST /jobs. Status is optional
// and defaults to "pending".
type CreateJobRequest struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Status   string `json:"status"`
}

// UpdateJobRequest is the JSON body for PATCH /jobs/:id. Nil fields are
// left unchanged.
type UpdateJobRequest struct {
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Status   *string `json:"status"`
}

// JobResponse is a single job record.
type JobResponse struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobEnvelope wraps a single job, matching the {"job": ...} contract.
type JobEnvelope struct {
	Job JobResponse `json:"job"`
}

// ListJobsResponse is the body for GET /jobs.
type ListJobsResponse struct {
	Count int           `json:"count"`
	Jobs  []JobResponse `json:"jobs"`
}
