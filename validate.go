package restmux

import (
	"context"
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
)

// Validate assembles the document and checks that it is a loadable Swagger
// 2.0 spec: it must parse into an openapi2 document, convert to v3 and pass
// v3 validation. Meant for tests and startup checks.
func (s *Swagger) Validate(ctx context.Context) error {
	specs, err := s.AsDict()
	if err != nil {
		return err
	}
	bs, err := json.Marshal(specs)
	if err != nil {
		return err
	}

	var doc openapi2.T
	if err := json.Unmarshal(bs, &doc); err != nil {
		return err
	}
	v3, err := openapi2conv.ToV3(&doc)
	if err != nil {
		return err
	}
	return v3.Validate(ctx, openapi3.DisableExamplesValidation())
}
