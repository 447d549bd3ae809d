// Package web binds wizard controllers to net/http. It extracts the
// narrow wizard Request from an *http.Request (persisting multipart
// uploads into a form.FileStorage on the way), renders steps through
// html/template, and adapts the controller's opaque responses back to
// the ResponseWriter.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	wizard "github.com/xraph/formwizard"
	"github.com/xraph/formwizard/form"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxUploadMemory = 32 << 20

// uploadConcurrency bounds parallel FileStorage.Save calls for a
// single multipart request.
const uploadConcurrency = 4

// ErrNoFileStorage is returned when a multipart request carries files
// but no FileStorage was provided to persist them.
var ErrNoFileStorage = errors.New("web: multipart upload received without a file storage")

// ParseRequest extracts the wizard request from r. The step address is
// taken from the "step" path value when the route declares one.
//
// For multipart POSTs every uploaded file is persisted into fs before
// the controller runs, so the controller only ever sees durable
// references. Uploads are saved concurrently; the first failure aborts
// the rest.
func ParseRequest(r *http.Request, fs form.FileStorage) (*wizard.Request, error) {
	req := &wizard.Request{
		Method: r.Method,
		Step:   r.PathValue("step"),
		Query:  r.URL.Query(),
	}
	if r.Method != http.MethodPost {
		return req, nil
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, fmt.Errorf("web: parse multipart form: %w", err)
		}
		req.Form = form.Values(r.PostForm)

		if len(r.MultipartForm.File) > 0 {
			files, err := saveUploads(r, fs)
			if err != nil {
				return nil, err
			}
			req.Files = files
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("web: parse form: %w", err)
	}
	req.Form = form.Values(r.PostForm)
	return req, nil
}

func saveUploads(r *http.Request, fs form.FileStorage) (form.Files, error) {
	if fs == nil {
		return nil, ErrNoFileStorage
	}

	var mu sync.Mutex
	files := make(form.Files, len(r.MultipartForm.File))

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(uploadConcurrency)
	for field, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		hdr := headers[0]
		g.Go(func() error {
			src, err := hdr.Open()
			if err != nil {
				return fmt.Errorf("web: open upload %q: %w", field, err)
			}
			defer src.Close()

			ref, err := fs.Save(ctx, hdr.Filename, hdr.Header.Get("Content-Type"), src)
			if err != nil {
				return fmt.Errorf("web: persist upload %q: %w", field, err)
			}
			mu.Lock()
			files[field] = ref
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
