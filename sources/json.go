// Package sources loads rows from plain data for the engines.
package sources

import (
	"encoding/json"
	"io"

	"github.com/Velocidex/ordereddict"
	errors "github.com/pkg/errors"
	"www.velocidex.com/golang/vgrid/types"
)

// FromJSON reads a JSON array of objects. Every object becomes an
// *ordereddict.Dict row which keeps the key order of the input.
func FromJSON(reader io.Reader) ([]types.Row, error) {
	items, err := DecodeDicts(reader)
	if err != nil {
		return nil, err
	}

	result := make([]types.Row, 0, len(items))
	for _, item := range items {
		result = append(result, item)
	}
	return result, nil
}

// DecodeDicts decodes a JSON array of objects. Decoding is done by
// ordereddict so nested objects are dicts too, whole numbers are
// uint64 (int64 when negative) and RFC3339 strings become times.
func DecodeDicts(reader io.Reader) ([]*ordereddict.Dict, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "DecodeDicts")
	}

	var items []*ordereddict.Dict
	err = json.Unmarshal(data, &items)
	if err != nil {
		return nil, errors.Wrap(err, "DecodeDicts")
	}

	if items == nil {
		return nil, errors.New("DecodeDicts: expected a JSON array of objects")
	}

	for idx, item := range items {
		if item == nil {
			return nil, errors.Errorf("DecodeDicts: item %d is not an object", idx)
		}
	}
	return items, nil
}

// DecodeDict decodes a single JSON object.
func DecodeDict(reader io.Reader) (*ordereddict.Dict, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "DecodeDict")
	}

	result := ordereddict.NewDict()
	err = json.Unmarshal(data, result)
	if err != nil {
		return nil, errors.Wrap(err, "DecodeDict")
	}
	return result, nil
}
