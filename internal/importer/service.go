package importer

import (
	"fmt"
	"io"

	"github.com/oizumi98/kaimono-api/internal/importer/kakeibo"
	"github.com/oizumi98/kaimono-api/internal/purchase"
)

type Service struct {
	kakeiboImporter Importer
}

func NewService() *Service {
	return &Service{
		kakeiboImporter: kakeibo.New(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]purchase.CreateParams, error) {
	var importer Importer

	switch source {
	case SourceKakeibo:
		importer = s.kakeiboImporter
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}

	return importer.Parse(r)
}
