package amqp

import (
	"encoding/json"
	"time"
)

// ReportSyncMessage asks the sync worker to refresh the exported series
// after a period submission. It carries only the period key; the worker
// reloads the full series from storage so the export is always current.
type ReportSyncMessage struct {
	Period    string    `json:"period"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReportSyncMessage(period string) *ReportSyncMessage {
	return &ReportSyncMessage{
		Period:    period,
		Timestamp: time.Now(),
	}
}

func (m *ReportSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportSyncMessageFromJSON(data []byte) (*ReportSyncMessage, error) {
	var msg ReportSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
