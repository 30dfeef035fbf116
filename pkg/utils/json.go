package utils

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/sirupsen/logrus"
)

// PrettyJson serializa o valor com indentação, para amostras de payload de
// provedor nos logs de depuração
func PrettyJson(in any) string {
	var buffer []byte
	var err error

	if reflect.TypeOf(in) != reflect.TypeOf([]byte{}) {
		buffer, err = json.Marshal(in)
		if err != nil {
			logrus.WithError(err).Debug("Erro ao serializar valor para log")
			return ""
		}
	} else {
		buffer = in.([]byte)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buffer, "", "\t"); err != nil {
		return string(buffer)
	}

	return out.String()
}
