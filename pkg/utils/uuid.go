package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID produz um identificador curto alfanumérico para as linhas
// persistidas (integrações, métricas e entradas de log)
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, 6)
}
