package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord 输入记录结构不合法 (派生时跳过, 不中断整批)
var ErrInvalidRecord = errors.New("invalid record")

// InvalidRecordError 描述一条被跳过的记录
type InvalidRecordError struct {
	Kind     string // shipment / expense
	RecordID string
	Field    string
	Reason   string
}

func (e *InvalidRecordError) Error() string {
	id := e.RecordID
	if id == "" {
		id = "<missing id>"
	}
	return fmt.Sprintf("%s %s: %s %s", e.Kind, id, e.Field, e.Reason)
}

func (e *InvalidRecordError) Unwrap() error {
	return ErrInvalidRecord
}

// NewInvalidRecordError 创建 InvalidRecordError
func NewInvalidRecordError(kind, recordID, field, reason string) *InvalidRecordError {
	return &InvalidRecordError{
		Kind:     kind,
		RecordID: recordID,
		Field:    field,
		Reason:   reason,
	}
}
