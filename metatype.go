package graphio

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/graphio/graphio-go/errors"
)

// MetaType groups the meta-type APIs of the ontology service
type MetaType struct {
	// Data lists the stored rows of a meta type
	Data *DataAPI
}

// DataAPI reads meta-type data rows
type DataAPI struct {
	client *Client
}

// List returns every stored data row of the given meta type, unmodified
func (d *DataAPI) List(ctx context.Context, metaTypeID string) ([]map[string]any, error) {
	if metaTypeID == "" {
		return nil, errors.NewInvalidRequestError("meta type id is empty")
	}

	params := url.Values{}
	params.Set("meta_type_id", metaTypeID)

	data, err := d.client.getData(ctx, "/all-data", params, "list meta type data")
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, errors.Wrap(err, "list meta type data: decode data")
		}
	}
	return rows, nil
}
