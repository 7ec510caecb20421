package audit

import (
	"fmt"
	"strconv"
)

// DeleteEvent records the deletion of an entity together with its cascade
type DeleteEvent struct {
	Collection   string
	Key          string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e DeleteEvent) MessageID() string {
	return "delete"
}

func (e DeleteEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("deleted %s %s", e.Collection, e.Key)
	}
	msg := fmt.Sprintf("failed to delete %s %s", e.Collection, e.Key)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e DeleteEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e DeleteEvent) Facility() int {
	return FacilityAuthPriv
}

func (e DeleteEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDSubject: {"collection": e.Collection, "key": e.Key},
		SDIDClient:  {"ip": e.ClientIP},
		SDIDAction:  {"operation": "delete", "result": result},
	}
}

// ReapEvent records a removal of expired batches
type ReapEvent struct {
	ClientIP string
	Deleted  int64
}

func (e ReapEvent) MessageID() string {
	return "reap"
}

func (e ReapEvent) Message() string {
	return fmt.Sprintf("reaped %d expired batch(es)", e.Deleted)
}

func (e ReapEvent) Severity() Severity {
	return SeverityInfo
}

func (e ReapEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ReapEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {"collection": "batches", "deleted": strconv.FormatInt(e.Deleted, 10)},
		SDIDClient:  {"ip": e.ClientIP},
		SDIDAction:  {"operation": "reap", "result": "success"},
	}
}
