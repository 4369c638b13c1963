package cliapp

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oxhq/actiontree/internal/model"
)

// LoadEditRequest reads path (or stdin, for "-") and decodes it as an
// EditRequest.
func LoadEditRequest(path string) (*model.EditRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("cliapp: reading edit request: %w", err)
	}

	var req model.EditRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("cliapp: parsing edit request: %w", err)
	}
	if len(req.Edits) == 0 {
		return nil, model.ErrNoEdits
	}
	return &req, nil
}
