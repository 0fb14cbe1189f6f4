package loading

import (
	"fmt"

	"github.com/pkg/errors"
)

// Erros específicos para o carregamento do relatório
var (
	// ErrInvalidInput é a raiz de todos os erros de validação do arquivo
	ErrInvalidInput = errors.New("invalid sales report")
	ErrEmptyInput   = fmt.Errorf("%w: file is empty", ErrInvalidInput)
)

// MissingColumnError indica que uma coluna obrigatória não está no cabeçalho
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrInvalidInput
}

// MalformedDateError indica uma data que não pôde ser interpretada.
// Row é a linha de dados (1 = primeira linha após o cabeçalho).
type MalformedDateError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("row %d: column %q: malformed date %q", e.Row, e.Column, e.Value)
}

func (e *MalformedDateError) Unwrap() error {
	return ErrInvalidInput
}

// MalformedNumberError indica um valor de ganhos que não é um número decimal
type MalformedNumberError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("row %d: column %q: malformed number %q", e.Row, e.Column, e.Value)
}

func (e *MalformedNumberError) Unwrap() error {
	return ErrInvalidInput
}
