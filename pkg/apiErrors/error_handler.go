package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrMissingColumn       = "VAL_004" // Coluna obrigatória ausente no arquivo
	ErrMalformedDate       = "VAL_005" // Data inválida no arquivo
	ErrMalformedNumber     = "VAL_006" // Valor numérico inválido no arquivo
	ErrFileTooLarge        = "VAL_007" // Arquivo acima do limite de upload

	// Erros de sessão
	ErrSessionNotFound = "SES_001" // Nenhum relatório carregado nesta sessão

	// Erros de recurso
	ErrResourceNotFound = "RES_001" // Rota ou recurso inexistente

	// Erros do servidor
	ErrInternalServer = "SRV_001" // Erro interno do servidor
)

var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrMissingColumn:       http.StatusUnprocessableEntity,
	ErrMalformedDate:       http.StatusUnprocessableEntity,
	ErrMalformedNumber:     http.StatusUnprocessableEntity,
	ErrFileTooLarge:        http.StatusRequestEntityTooLarge,
	ErrSessionNotFound:     http.StatusNotFound,
	ErrResourceNotFound:    http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
