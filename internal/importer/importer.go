package importer

import (
	"io"

	"github.com/oizumi98/kaimono-api/internal/purchase"
)

type Source string

const (
	SourceKakeibo Source = "kakeibo"
)

type Importer interface {
	Parse(r io.Reader) ([]purchase.CreateParams, error)
}
