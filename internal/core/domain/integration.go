package domain

import "time"

// IntegrationStatus classifies the outcome recorded in an integration log entry.
type IntegrationStatus string

const (
	IntegrationSuccess IntegrationStatus = "SUCCESS"
	IntegrationFailed  IntegrationStatus = "FAILED"
)

// IntegrationLogEntry is one append-only record of integration activity,
// keyed by the source transaction that triggered it.
type IntegrationLogEntry struct {
	LogID               string            `json:"logID"` // Primary Key (UUID)
	SourceTransactionID string            `json:"sourceTransactionID"`
	SourceSystem        string            `json:"sourceSystem"` // e.g. "sales", "inventory"
	Action              string            `json:"action"`
	Status              IntegrationStatus `json:"status"`
	Detail              string            `json:"detail"` // Nullable free text, usually the error message
	CreatedAt           time.Time         `json:"createdAt"`
}

// NotificationType classifies an outbound notification.
type NotificationType string

const (
	NotificationSyncError NotificationType = "SYNC_ERROR"
	NotificationSyncInfo  NotificationType = "SYNC_INFO"
)

// Notification is the payload handed to the outbound notification collaborator.
// Delivery is best-effort; failures are swallowed by the caller.
type Notification struct {
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Source    string           `json:"source"`
	Error     string           `json:"error,omitempty"`
	Recipient string           `json:"recipient,omitempty"`
}
