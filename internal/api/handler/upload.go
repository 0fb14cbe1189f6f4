package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/internal/session"
	"github.com/vfg2006/sales-dashboard/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard/pkg/log"
	"github.com/vfg2006/sales-dashboard/pkg/middleware"
)

const uploadField = "file"

var (
	errMissingFile      = errors.New("no CSV file uploaded in field \"file\"")
	errFileTooLarge     = errors.New("uploaded file exceeds the size limit")
	errInvalidMultipart = errors.New("invalid multipart upload")
)

// Uploader recebe o arquivo enviado, carrega a tabela e a associa à sessão do navegador
type Uploader struct {
	Loader   loading.Loader
	Store    session.Store
	Cookies  middleware.SessionCookies
	MaxBytes int64
}

// Receive processa o upload. Um novo upload substitui a tabela da sessão atual e limpa os filtros.
func (u Uploader) Receive(w http.ResponseWriter, r *http.Request) (session.Session, error) {
	table, err := u.readTable(w, r)
	if err != nil {
		return session.Session{}, err
	}

	if sessionID, ok := middleware.SessionIDFromContext(r.Context()); ok {
		if sess, replaced := u.Store.Replace(sessionID, table); replaced {
			if err := u.Cookies.Set(w, r, sess.ID); err != nil {
				return session.Session{}, errors.Wrap(err, "upload: failed to issue session cookie")
			}
			return sess, nil
		}
	}

	sess, err := u.Store.Create(table)
	if err != nil {
		return session.Session{}, err
	}

	if err := u.Cookies.Set(w, r, sess.ID); err != nil {
		u.Store.Delete(sess.ID)
		return session.Session{}, errors.Wrap(err, "upload: failed to issue session cookie")
	}

	return sess, nil
}

func (u Uploader) readTable(w http.ResponseWriter, r *http.Request) (*domain.Table, error) {
	if r.ContentLength > u.MaxBytes {
		return nil, errFileTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, u.MaxBytes)

	if err := r.ParseMultipartForm(u.MaxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errFileTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, errMissingFile
		}
		return nil, fmt.Errorf("%w: %v", errInvalidMultipart, err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, errMissingFile
	}
	defer file.Close()

	return u.Loader.Load(file, header.Filename)
}

// UploadPage trata o formulário de upload do dashboard
func UploadPage(uploader Uploader, renderer Renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		sess, err := uploader.Receive(w, r)
		if err != nil {
			code, _, details := classifyUploadError(err)
			logger.WithError(err).WithField("code", code).Warn("upload: arquivo rejeitado")

			view := pageView{Error: err.Error(), ErrorDetail: describeDetails(details)}
			if current, ok := middleware.LookupSession(r, uploader.Store); ok {
				view = newPageView(reporting.BuildDashboard(current.Table, current.Filter))
				view.Error, view.ErrorDetail = err.Error(), describeDetails(details)
			}
			renderPage(w, r, renderer, apiErrors.StatusFor(code), view)
			return
		}

		logger.WithFields(log.Fields{
			"session_id": sess.ID,
			"table_id":   sess.Table.ID,
			"rows":       sess.Table.Len(),
		}).Info("upload: relatório associado à sessão")

		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
}

// UploadAPI é a versão JSON do upload, retornando o resumo da tabela carregada
func UploadAPI(uploader Uploader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		sess, err := uploader.Receive(w, r)
		if err != nil {
			code, message, details := classifyUploadError(err)
			logger.WithError(err).WithField("code", code).Warn("upload: arquivo rejeitado")
			apiErrors.WriteError(w, code, message, details)
			return
		}

		logger.WithFields(log.Fields{
			"session_id": sess.ID,
			"table_id":   sess.Table.ID,
			"rows":       sess.Table.Len(),
		}).Info("upload: relatório associado à sessão")

		writeJSON(w, r, http.StatusCreated, reporting.Summarize(sess.Table))
	})
}

// classifyUploadError traduz os erros do carregamento para os códigos da API
func classifyUploadError(err error) (code string, message string, details map[string]any) {
	var (
		missingColumn *loading.MissingColumnError
		malformedDate *loading.MalformedDateError
		malformedNum  *loading.MalformedNumberError
		parseErr      *csv.ParseError
	)

	switch {
	case errors.As(err, &missingColumn):
		return apiErrors.ErrMissingColumn, "Coluna obrigatória ausente no arquivo", map[string]any{
			"column": missingColumn.Column,
		}
	case errors.As(err, &malformedDate):
		return apiErrors.ErrMalformedDate, "Data inválida no arquivo", map[string]any{
			"row":    malformedDate.Row,
			"column": malformedDate.Column,
			"value":  malformedDate.Value,
		}
	case errors.As(err, &malformedNum):
		return apiErrors.ErrMalformedNumber, "Valor numérico inválido no arquivo", map[string]any{
			"row":    malformedNum.Row,
			"column": malformedNum.Column,
			"value":  malformedNum.Value,
		}
	case errors.Is(err, errFileTooLarge):
		return apiErrors.ErrFileTooLarge, "Arquivo acima do limite de upload", nil
	case errors.Is(err, errInvalidMultipart):
		return apiErrors.ErrInvalidRequest, "Requisição de upload inválida", map[string]any{
			"error": err.Error(),
		}
	case errors.Is(err, errMissingFile):
		return apiErrors.ErrMissingRequiredData, "Arquivo CSV não enviado", nil
	case errors.Is(err, loading.ErrInvalidInput), errors.As(err, &parseErr):
		return apiErrors.ErrInvalidFormat, "Arquivo CSV inválido", map[string]any{
			"error": err.Error(),
		}
	default:
		return apiErrors.ErrInternalServer, "Erro ao processar o arquivo", nil
	}
}
