package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/AnshRaj112/laporan-backend/internal/middleware"
	"github.com/AnshRaj112/laporan-backend/internal/services"
)

// multipartOverhead is the slack allowed on top of the file limit for
// the other form parts and boundaries.
const multipartOverhead = 1 << 20

var (
	errNoFile   = errors.New("no file in form")
	errTooLarge = errors.New("request body too large")
)

// readUpload parses a multipart body and returns the named file part.
// It reports errNoFile when the part is missing and errTooLarge or a
// *http.MaxBytesError when the body is over the limit.
func readUpload(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (*services.Upload, error) {
	if r.ContentLength > maxBytes+multipartOverhead {
		return nil, errTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, err
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, errNoFile
		}
		return nil, err
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errNoFile
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}
	return &services.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// uploadProblem writes the 400 for a readUpload error.
func uploadProblem(w http.ResponseWriter, err error, maxBytes int64) {
	var tooBig *http.MaxBytesError
	if errors.Is(err, errTooLarge) || errors.As(err, &tooBig) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Ukuran file maksimal %dMB", maxBytes>>20))
		return
	}
	if errors.Is(err, errNoFile) {
		writeError(w, http.StatusBadRequest, "File tidak ditemukan")
		return
	}
	writeError(w, http.StatusBadRequest, "Data tidak valid")
}

// UploadAttachment stores the multipart "file" part on the entry.
func (h *Handler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := entryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Laporan tidak ditemukan")
		return
	}
	maxBytes := h.Attachments.MaxBytes()
	up, err := readUpload(w, r, "file", maxBytes)
	if err != nil {
		uploadProblem(w, err, maxBytes)
		return
	}

	e, err := h.Attachments.Attach(ctx, middleware.OwnerFromContext(ctx), id, *up)
	if err != nil {
		h.writeServiceError(ctx, w, err, "Gagal mengupload file")
		return
	}
	writeJSON(w, http.StatusOK, EntryResponse{Success: true, Message: "File berhasil diupload", Entry: e})
}

func (h *Handler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := entryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Laporan tidak ditemukan")
		return
	}
	if err := h.Attachments.Detach(ctx, middleware.OwnerFromContext(ctx), id); err != nil {
		h.writeServiceError(ctx, w, err, "Gagal menghapus file")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "File berhasil dihapus"})
}
