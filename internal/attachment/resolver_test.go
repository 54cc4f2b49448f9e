package attachment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_NeverFails(t *testing.T) {
	r := NewResolver("https://plms.example.gov/uploads")

	inputs := []json.RawMessage{
		nil,
		json.RawMessage(``),
		json.RawMessage(`null`),
		json.RawMessage(`""`),
		json.RawMessage(`not json at all`),
		json.RawMessage(`[1, 2, 3]`),
		json.RawMessage(`42`),
		json.RawMessage(`{}`),
		json.RawMessage(`{"doc1": 42, "doc2": null, "doc3": {"size": 10}}`),
	}
	for _, raw := range inputs {
		assert.Empty(t, r.Resolve(raw), "input=%s", raw)
	}
}

func TestResolve_MixedShapes(t *testing.T) {
	r := NewResolver("https://plms.example.gov/uploads/")

	out := r.Resolve(json.RawMessage(`{"doc1": "uploads/scan.pdf", "doc2": {"name": "photo.png"}}`))

	require.Len(t, out, 2)
	assert.Equal(t, "doc1", out[0].ID)
	assert.Equal(t, "scan.pdf", out[0].Name)
	assert.Equal(t, "application/pdf", out[0].MimeType)
	assert.Equal(t, "https://plms.example.gov/uploads/scan.pdf", out[0].URL)

	assert.Equal(t, "doc2", out[1].ID)
	assert.Equal(t, "photo.png", out[1].Name)
	assert.Equal(t, "image/png", out[1].MimeType)
}

func TestResolve_FilenameFieldAndBackslashPaths(t *testing.T) {
	r := NewResolver("https://plms.example.gov/uploads")

	out := r.Resolve(json.RawMessage(`{
		"a": {"filename": "clearance.docx"},
		"b": "C:\\scans\\barangay\\form.jpeg"
	}`))

	require.Len(t, out, 2)
	assert.Equal(t, "clearance.docx", out[0].Name)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		out[0].MimeType)
	assert.Equal(t, "form.jpeg", out[1].Name)
	assert.Equal(t, "image/jpeg", out[1].MimeType)
}

func TestResolve_DoubleEncodedRecord(t *testing.T) {
	r := NewResolver("https://plms.example.gov/uploads")

	// Some rows store the record as a JSON string containing JSON.
	out := r.Resolve(json.RawMessage(`"{\"doc1\": \"scan.pdf\"}"`))

	require.Len(t, out, 1)
	assert.Equal(t, "scan.pdf", out[0].Name)
}

func TestResolve_SkipsEntriesMissingNames(t *testing.T) {
	r := NewResolver("https://plms.example.gov/uploads")

	out := r.Resolve(json.RawMessage(`{
		"bad1": {"size": 12},
		"bad2": "",
		"good": "receipt.zip"
	}`))

	require.Len(t, out, 1)
	assert.Equal(t, "receipt.zip", out[0].Name)
	assert.Equal(t, "application/zip", out[0].MimeType)
}

func TestMimeType(t *testing.T) {
	cases := map[string]string{
		"a.JPG":      "image/jpeg",
		"b.webp":     "image/webp",
		"c.pdf":      "application/pdf",
		"d.xls":      "application/vnd.ms-excel",
		"e.csv":      "text/csv",
		"f.rar":      "application/vnd.rar",
		"noext":      "application/octet-stream",
		"weird.xyz":  "application/octet-stream",
		"notes.txt":  "text/plain",
		"photo.GIF":  "image/gif",
		"layout.bmp": "image/bmp",
	}
	for name, want := range cases {
		assert.Equal(t, want, MimeType(name), "name=%s", name)
	}
}

func TestResolve_EscapesURLPath(t *testing.T) {
	r := NewResolver("https://plms.example.gov/uploads")

	out := r.Resolve(json.RawMessage(`{"doc": "folder/my scan.pdf"}`))

	require.Len(t, out, 1)
	assert.Equal(t, "https://plms.example.gov/uploads/my%20scan.pdf", out[0].URL)
}
