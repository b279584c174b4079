// Package services holds ticket workflow steps shared by several use cases.
package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/metrics"
)

// MaxAttachmentSlots is the number of files accepted per secondary entity.
const MaxAttachmentSlots = 2

// SlotKey addresses one upload: entity index in request order and slot number.
type SlotKey struct {
	Entity int
	Slot   int
}

// String renders the multipart field name of the slot.
func (k SlotKey) String() string {
	return fmt.Sprintf("entity_%d_attachment_%d", k.Entity, k.Slot)
}

// ParseSlotKey accepts entity_{i}_attachment_{j} and the legacy
// guest_{i}_attachment_{j}. Slots outside [0, MaxAttachmentSlots) are rejected.
func ParseSlotKey(name string) (SlotKey, bool) {
	var rest string
	switch {
	case strings.HasPrefix(name, "entity_"):
		rest = strings.TrimPrefix(name, "entity_")
	case strings.HasPrefix(name, "guest_"):
		rest = strings.TrimPrefix(name, "guest_")
	default:
		return SlotKey{}, false
	}

	idx, slot, ok := strings.Cut(rest, "_attachment_")
	if !ok {
		return SlotKey{}, false
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 {
		return SlotKey{}, false
	}
	j, err := strconv.Atoi(slot)
	if err != nil || j < 0 || j >= MaxAttachmentSlots {
		return SlotKey{}, false
	}
	return SlotKey{Entity: i, Slot: j}, true
}

// FileSet holds the uploaded files of one creation request.
type FileSet map[SlotKey]record.File

// CreatedRef pairs a created secondary record with the index of the entity it was built from.
type CreatedRef struct {
	RecordID string
	Index    int
}

type UploadFailure struct {
	Key      string `json:"key"`
	RecordID string `json:"record_id"`
	Error    string `json:"error"`
}

// UploadReport lists the slot keys that were uploaded and those that failed.
type UploadReport struct {
	Uploaded []string        `json:"uploaded"`
	Failed   []UploadFailure `json:"failed,omitempty"`
}

func (r UploadReport) HasFailures() bool {
	return len(r.Failed) > 0
}

// AttachmentUploader sends request files to the attachment field of the
// secondary records they belong to.
type AttachmentUploader struct {
	store   record.Store
	logger  logger.Interface
	metrics *metrics.Metrics
}

func NewAttachmentUploader(store record.Store, logger logger.Interface, m *metrics.Metrics) *AttachmentUploader {
	return &AttachmentUploader{store: store, logger: logger, metrics: m}
}

// Upload attempts every file independently. A failed upload is logged and
// reported; the remaining uploads still run.
func (u *AttachmentUploader) Upload(ctx context.Context, collection *schema.Collection, created []CreatedRef, files FileSet) UploadReport {
	report := UploadReport{Uploaded: []string{}}
	if len(files) == 0 {
		return report
	}

	for _, ref := range created {
		for slot := 0; slot < MaxAttachmentSlots; slot++ {
			key := SlotKey{Entity: ref.Index, Slot: slot}
			file, ok := files[key]
			if !ok {
				continue
			}

			if _, err := u.store.UploadFile(ctx, collection.TableID, ref.RecordID, collection.AttachmentFieldID, file); err != nil {
				u.logger.Warnw("attachment upload failed",
					"error", err,
					"key", key.String(),
					"collection", collection.TableID,
					"record_id", ref.RecordID,
					"file_name", file.Name,
				)
				u.metrics.IncPartialFailure("attachment")
				report.Failed = append(report.Failed, UploadFailure{
					Key:      key.String(),
					RecordID: ref.RecordID,
					Error:    record.ErrorDetail(err),
				})
				continue
			}

			u.logger.Debugw("attachment uploaded",
				"key", key.String(),
				"record_id", ref.RecordID,
				"file_name", file.Name,
			)
			report.Uploaded = append(report.Uploaded, key.String())
		}
	}
	return report
}

// Keys returns the slot keys of a file set in entity then slot order.
func (fs FileSet) Keys() []SlotKey {
	keys := make([]SlotKey, 0, len(fs))
	for k := range fs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Entity != keys[j].Entity {
			return keys[i].Entity < keys[j].Entity
		}
		return keys[i].Slot < keys[j].Slot
	})
	return keys
}
