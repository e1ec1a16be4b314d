package dashboard

import "go-leavedesk/internal/ledger"

type EmployeeStatsResponse struct {
	TotalRequests    int64                 `json:"total_requests"`
	PendingRequests  int64                 `json:"pending_requests"`
	ApprovedRequests int64                 `json:"approved_requests"`
	RejectedRequests int64                 `json:"rejected_requests"`
	LeaveBalance     ledger.BalanceSummary `json:"leave_balance"`
}

type ManagerStatsResponse struct {
	TotalEmployees   int64 `json:"total_employees"`
	TotalRequests    int64 `json:"total_requests"`
	PendingRequests  int64 `json:"pending_requests"`
	ApprovedRequests int64 `json:"approved_requests"`
	RejectedRequests int64 `json:"rejected_requests"`
}
