package render

import (
	"encoding/json"

	"github.com/matzehuels/kallax/pkg/core/pack"
)

// JSON writes res as indented JSON in its wire shape.
func JSON(res *pack.Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
