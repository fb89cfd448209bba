package util

import "mime"

// AttachmentHeader builds a Content-Disposition value that makes browsers
// save the response as name.
func AttachmentHeader(name string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
}
