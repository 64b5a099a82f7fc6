package vgrid

import (
	"context"
	"encoding/json"

	"github.com/Velocidex/ordereddict"
	"www.velocidex.com/golang/vgrid/fields"
	"www.velocidex.com/golang/vgrid/types"
)

// A page of results serialized to JSON.
type VGridJsonResult struct {
	Part    int
	Columns []string
	Payload []byte
	Total   int
}

// Project a row onto the column catalog. Each column's value is set
// under its id, missing values are left out.
func (self *Grid) Project(row types.Row, columns []types.Column) *ordereddict.Dict {
	resolver := fields.NewResolver(self.Scope)
	result := ordereddict.NewDict()
	for i := range columns {
		column := &columns[i]
		value := resolver.Resolve(row, column)
		if types.IsNil(value) {
			continue
		}

		switch t := value.(type) {
		case []byte:
			value = string(t)
		}
		result.Set(column.Id, value)
	}
	return result
}

func columnIds(columns []types.Column) []string {
	result := make([]string, 0, len(columns))
	for _, column := range columns {
		result = append(result, column.Id)
	}
	return result
}

// Returns a channel over which multi part results are sent. Each
// part holds at most maxrows rows projected onto the columns.
func (self *Grid) GetResponseChannel(ctx context.Context,
	rows []types.Row, columns []types.Column,
	maxrows int) <-chan *VGridJsonResult {
	result_chan := make(chan *VGridJsonResult)
	if maxrows <= 0 {
		maxrows = len(rows)
	}

	go func() {
		defer close(result_chan)

		ids := columnIds(columns)
		part := 0
		page := []*ordereddict.Dict{}

		ship_payload := func() bool {
			s, err := json.MarshalIndent(page, "", " ")
			if err != nil {
				self.Log("Unable to serialize: %v", err.Error())
				return false
			}

			select {
			case <-ctx.Done():
				return false
			case result_chan <- &VGridJsonResult{
				Part:    part,
				Columns: ids,
				Payload: s,
				Total:   len(rows),
			}:
			}

			page = []*ordereddict.Dict{}
			part += 1
			return true
		}

		for _, row := range rows {
			if len(page) >= maxrows {
				if !ship_payload() {
					return
				}
			}
			page = append(page, self.Project(row, columns))
		}

		if len(page) > 0 || part == 0 {
			ship_payload()
		}
	}()

	return result_chan
}

// A convenience function to generate JSON output for a set of rows.
func (self *Grid) OutputJSON(
	rows []types.Row, columns []types.Column) ([]byte, error) {
	result := make([]*ordereddict.Dict, 0, len(rows))
	for _, row := range rows {
		result = append(result, self.Project(row, columns))
	}

	return json.MarshalIndent(result, "", " ")
}
