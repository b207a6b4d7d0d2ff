package api

import (
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/justicejet/defensepack/internal/extract"
	"github.com/justicejet/defensepack/internal/model"
)

const (
	// multipartMemory is how much of a form is buffered before spilling to
	// temp files.
	multipartMemory = 32 << 20

	internalError     = "Internal Server Error"
	legalSearchFailed = "Legal search failed"
)

type legalSearchRequest struct {
	Query        string `json:"query"`
	Jurisdiction string `json:"jurisdiction"`
	CaseType     string `json:"caseType"`
}

type analysisResponse struct {
	Content string `json:"content"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleGenerateLearning(deps handlerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := zap.L().With(zap.String("request_id", middleware.GetReqID(r.Context())))

		text, err := uploadText(w, r, deps)
		if err != nil {
			log.Error("api: upload failed", zap.Error(err))
			http.Error(w, internalError, http.StatusInternalServerError)
			return
		}

		if err := deps.packs.Acquire(r.Context(), 1); err != nil {
			log.Warn("api: gave up waiting for a pack slot", zap.Error(err))
			http.Error(w, internalError, http.StatusInternalServerError)
			return
		}
		defer deps.packs.Release(1)

		req := model.NewCaseRequest(text, r.FormValue("jurisdiction"), r.FormValue("caseType"))
		pack, err := deps.Service.Run(r.Context(), req)
		if err != nil {
			log.Error("api: defense pack failed", zap.Error(err))
			http.Error(w, internalError, http.StatusInternalServerError)
			return
		}

		w.Header().Set("X-Pack-Id", pack.ID)
		writeJSON(w, http.StatusOK, pack)
	}
}

func handleGenerate(deps handlerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := zap.L().With(zap.String("request_id", middleware.GetReqID(r.Context())))

		text, err := uploadText(w, r, deps)
		if err != nil {
			log.Error("api: upload failed", zap.Error(err))
			http.Error(w, internalError, http.StatusInternalServerError)
			return
		}

		if err := deps.packs.Acquire(r.Context(), 1); err != nil {
			log.Warn("api: gave up waiting for a pack slot", zap.Error(err))
			http.Error(w, internalError, http.StatusInternalServerError)
			return
		}
		defer deps.packs.Release(1)

		pageLimit := r.FormValue("pageLimit")
		if pageLimit == "" {
			pageLimit = model.DefaultPageLimit
		}

		content, err := deps.Service.Analyze(r.Context(), text, model.DepthForPageLimit(pageLimit))
		if err != nil {
			log.Error("api: analysis failed", zap.Error(err))
			http.Error(w, internalError, http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, analysisResponse{Content: content})
	}
}

func handleLegalSearch(deps handlerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		defer r.Body.Close()

		var req legalSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			zap.L().Error("api: invalid legal search body",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Error(err),
			)
			http.Error(w, legalSearchFailed, http.StatusInternalServerError)
			return
		}

		resp := deps.Service.Search(r.Context(), req.Query,
			model.ParseJurisdiction(req.Jurisdiction), model.ParseCaseType(req.CaseType))
		writeJSON(w, http.StatusOK, resp)
	}
}

// uploadText extracts and joins the text of every uploaded file.
func uploadText(w http.ResponseWriter, r *http.Request, deps handlerDeps) (string, error) {
	docs, err := readDocuments(w, r, deps.maxUpload)
	if err != nil {
		return "", err
	}
	return extract.Combine(r.Context(), deps.Extractor, docs)
}

// readDocuments parses the form and loads every "files" part. A
// url-encoded form carries fields only and yields no documents.
func readDocuments(w http.ResponseWriter, r *http.Request, limit int64) ([]model.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, eris.Wrap(err, "api: parse multipart form")
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, eris.Wrap(err, "api: parse form")
		}
		return nil, nil
	default:
		return nil, eris.Errorf("api: unsupported content type %q", mediaType)
	}

	headers := r.MultipartForm.File["files"]
	docs := make([]model.Document, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			return nil, eris.Wrapf(err, "api: read %s", fh.Filename)
		}
		docs = append(docs, model.Document{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return docs, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck
	return io.ReadAll(f)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response failed", zap.Error(err))
	}
}
