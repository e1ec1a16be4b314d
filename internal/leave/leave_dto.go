package leave

type CreateLeaveRequest struct {
	Category  string `json:"category" binding:"required,oneof=sick casual vacation"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type ResolveLeaveRequest struct {
	Comment string `json:"comment"`
}

type LeaveResponse struct {
	ID                string  `json:"id"`
	RequesterID       string  `json:"requester_id"`
	RequesterName     string  `json:"requester_name,omitempty"`
	RequesterEmail    string  `json:"requester_email,omitempty"`
	Category          string  `json:"category"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	TotalDays         int     `json:"total_days"`
	Reason            string  `json:"reason"`
	Status            string  `json:"status"`
	ResolutionComment string  `json:"resolution_comment,omitempty"`
	ResolvedBy        *string `json:"resolved_by,omitempty"`
	ResolvedAt        *string `json:"resolved_at,omitempty"`
	CreatedAt         string  `json:"created_at"`
}
