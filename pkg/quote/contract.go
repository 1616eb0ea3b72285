package quote

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var contractDocument []byte

var (
	defaultContractOnce sync.Once
	defaultContract     *Contract
	defaultContractErr  error
)

// Contract validates backend payloads against the response schema of the
// random quote operation.
type Contract struct {
	schema *openapi3.Schema
}

// DefaultContract returns the contract built from the embedded OpenAPI
// document.
func DefaultContract() (*Contract, error) {
	defaultContractOnce.Do(func() {
		defaultContract, defaultContractErr = LoadContract(contractDocument)
	})
	return defaultContract, defaultContractErr
}

// ContractDocument exposes the embedded OpenAPI document so surfaces can
// publish the backend contract.
func ContractDocument() []byte {
	out := make([]byte, len(contractDocument))
	copy(out, contractDocument)
	return out
}

// LoadContract parses an OpenAPI document and extracts the 200 response
// schema of GET /api/quotes/random.
func LoadContract(data []byte) (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("quote: load contract: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("quote: validate contract: %w", err)
	}
	if doc.Paths == nil {
		return nil, errors.New("quote: contract has no paths")
	}
	item := doc.Paths.Find(randomEndpoint)
	if item == nil || item.Get == nil {
		return nil, fmt.Errorf("quote: contract is missing GET %s", randomEndpoint)
	}
	if item.Get.Responses == nil {
		return nil, errors.New("quote: contract declares no responses")
	}
	resp := item.Get.Responses.Status(http.StatusOK)
	if resp == nil || resp.Value == nil {
		return nil, errors.New("quote: contract is missing the 200 response")
	}
	media := resp.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("quote: contract is missing the JSON response schema")
	}
	return &Contract{schema: media.Schema.Value}, nil
}

// Decode validates raw against the response schema and decodes it.
func (c *Contract) Decode(raw []byte) (Quote, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrMalformedQuote, err)
	}
	if c != nil && c.schema != nil {
		if err := c.schema.VisitJSON(generic); err != nil {
			return Quote{}, fmt.Errorf("%w: %v", ErrMalformedQuote, err)
		}
	}
	var out Quote
	if err := json.Unmarshal(raw, &out); err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrMalformedQuote, err)
	}
	return out, nil
}
