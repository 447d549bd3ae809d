package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/xraph/formwizard/form"
)

func TestParseRequestGet(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/checkout/a?utm=mail", nil)
	r.SetPathValue("step", "a")

	req, err := ParseRequest(r, nil)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Method != http.MethodGet || req.Step != "a" {
		t.Fatalf("req = %+v", req)
	}
	if req.Query.Get("utm") != "mail" {
		t.Fatalf("query = %v", req.Query)
	}
	if req.Form != nil || req.Files != nil {
		t.Fatalf("GET carries form data: %+v", req)
	}
}

func TestParseRequestURLEncoded(t *testing.T) {
	body := url.Values{"wizard-a-name": {"alice"}}
	r := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := ParseRequest(r, nil)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Form.Get("wizard-a-name") != "alice" {
		t.Fatalf("form = %v", req.Form)
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestParseRequestMultipart(t *testing.T) {
	fs, err := form.NewDirStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStorage: %v", err)
	}

	body, ct := multipartBody(t,
		map[string]string{"wizard-a-title": "hello"},
		"wizard-a-doc", "report.txt", "file contents")
	r := httptest.NewRequest(http.MethodPost, "/checkout", body)
	r.Header.Set("Content-Type", ct)

	req, err := ParseRequest(r, fs)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Form.Get("wizard-a-title") != "hello" {
		t.Fatalf("form = %v", req.Form)
	}

	ref, ok := req.Files["wizard-a-doc"]
	if !ok {
		t.Fatalf("file not extracted: %v", req.Files)
	}
	if ref.Name != "report.txt" || ref.Size != int64(len("file contents")) {
		t.Fatalf("ref = %+v", ref)
	}

	rc, err := fs.Open(context.Background(), ref)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	saved, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(saved) != "file contents" {
		t.Fatalf("saved = %q", saved)
	}
}

func TestParseRequestMultipartWithoutStorage(t *testing.T) {
	body, ct := multipartBody(t, nil, "wizard-a-doc", "x.txt", "x")
	r := httptest.NewRequest(http.MethodPost, "/checkout", body)
	r.Header.Set("Content-Type", ct)

	if _, err := ParseRequest(r, nil); !errors.Is(err, ErrNoFileStorage) {
		t.Fatalf("err = %v, want ErrNoFileStorage", err)
	}
}
