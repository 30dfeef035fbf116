package domain

import "fmt"

// ConfigurationError indica credencial ou configuração obrigatória ausente.
// Falha a integração imediatamente, mas nunca o lote inteiro.
type ConfigurationError struct {
	Provider Provider
	Field    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuração ausente para o provedor %s: %s", e.Provider, e.Field)
}

// AuthError indica token expirado sem meio de renovação automática. Sinaliza
// necessidade de reautenticação humana, distinto de falhas transitórias.
type AuthError struct {
	IntegrationID string
	Reason        string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("reautenticação necessária para a integração %s: %s", e.IntegrationID, e.Reason)
}

// StorageError envolve falhas de leitura/escrita na camada de persistência
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("erro de armazenamento em %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
