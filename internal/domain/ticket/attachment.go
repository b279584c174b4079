package ticket

// Attachment is a file stored on a secondary record. Raw keeps every key the
// store returned so the list can be written back unchanged.
type Attachment struct {
	ID       string
	Name     string
	MimeType string
	URL      string
	FieldID  string
	Raw      map[string]any
}

// AttachmentFromStore reads one element of a store attachment list. The
// retrieval URL is the signed presignedUrl, which expires.
func AttachmentFromStore(raw map[string]any, fieldID string) Attachment {
	return Attachment{
		ID:       stringValue(raw["id"]),
		Name:     stringValue(raw["name"]),
		MimeType: stringValue(raw["mimetype"]),
		URL:      stringValue(raw["presignedUrl"]),
		FieldID:  fieldID,
		Raw:      raw,
	}
}

// View returns the original attachment map with the unified url and type keys
// laid over it.
func (a Attachment) View() map[string]any {
	out := make(map[string]any, len(a.Raw)+4)
	for k, v := range a.Raw {
		out[k] = v
	}
	out["id"] = a.ID
	out["name"] = a.Name
	out["url"] = a.URL
	out["type"] = a.MimeType
	return out
}

// AttachmentsFromStore decodes an attachment column value. Anything other
// than a list of objects yields an empty slice.
func AttachmentsFromStore(v any, fieldID string) []Attachment {
	items, ok := v.([]any)
	if !ok {
		return []Attachment{}
	}
	out := make([]Attachment, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, AttachmentFromStore(raw, fieldID))
	}
	return out
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
